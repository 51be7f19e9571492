package canvas

import (
	"errors"
	"image"
)

var (
	// ErrBackendUnavailable is returned when no backend can be selected.
	ErrBackendUnavailable = errors.New("no image backend available")

	// ErrLoad marks failures to open or decode a source image.
	ErrLoad = errors.New("failed to load image")

	// ErrInvalidArgument marks malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapabilityGap marks operations the selected backend cannot perform.
	ErrCapabilityGap = errors.New("operation not supported by backend")

	// ErrNotLoaded is returned by image operations that need pixel data.
	ErrNotLoaded = errors.New("image not loaded")
)

// Canvas is an opaque in-memory image owned by the Backend that created it.
//
// A Canvas must only be passed back to the Backend that returned it. It is
// released with Backend.Destroy and must not be used afterwards.
type Canvas interface {
	// Width is the canvas width in pixels.
	Width() int

	// Height is the canvas height in pixels.
	Height() int

	// Format is the upper-case format tag of the decoded source ("PNG",
	// "JPEG", "SVG", ...). Canvases created in memory report "PNG".
	Format() string
}

// Capability names an optional backend feature.
type Capability int

const (
	// CapOverlay means Composite accepts operators other than OVER.
	CapOverlay Capability = iota + 1

	// CapVector means the backend decodes vector formats and can
	// re-rasterize them at a requested resolution.
	CapVector
)

// String returns the capability name used in diagnostics.
func (c Capability) String() string {
	switch c {
	case CapOverlay:
		return "overlay"
	case CapVector:
		return "vector"
	default:
		return "unknown"
	}
}

// RGBA is a pixel value. A is in the owning backend's alpha unit
// (0 = transparent, Backend.AlphaMax() = opaque).
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Point is a sub-pixel position used by the shape fill primitives.
type Point struct {
	X float64
	Y float64
}

// Backend is the primitive raster capability set the core is built on.
//
// Implementations are not required to be safe for concurrent use on the same
// Canvas. Every method that returns a Canvas returns a new, independent one;
// the argument canvases are left untouched unless documented otherwise.
type Backend interface {
	// Name identifies the backend ("basic", "full").
	Name() string

	// Formats lists the upper-case format tags the backend can decode.
	Formats() []string

	// AlphaMax is the alpha value meaning fully opaque.
	AlphaMax() uint8

	// Supports reports whether an optional capability is available.
	Supports(c Capability) bool

	// Load decodes the file at path. Failures wrap ErrLoad.
	Load(path string) (Canvas, error)

	// LoadAtResolution decodes a vector source rasterized at the given
	// horizontal and vertical resolution in dots per inch. Backends without
	// CapVector return ErrCapabilityGap.
	LoadAtResolution(path string, xRes, yRes float64) (Canvas, error)

	// Resolution reports the canvas resolution in dots per inch.
	Resolution(c Canvas) (xRes, yRes float64)

	// Save encodes c to path in the given format. Quality applies to
	// lossy formats only.
	Save(c Canvas, path, format string, quality int) error

	// CreateCanvas allocates a w×h canvas filled with fill, or fully
	// transparent when fill is nil.
	CreateCanvas(w, h int, fill *RGBColor) (Canvas, error)

	// GetPixel reads the pixel at (x, y). Out-of-range reads return a
	// transparent pixel.
	GetPixel(c Canvas, x, y int) RGBA

	// SetPixel writes the pixel at (x, y) without blending. Out-of-range
	// writes are ignored.
	SetPixel(c Canvas, x, y int, px RGBA)

	// ResampleCopy scales srcRect of src into dstRect of dst, replacing
	// the destination pixels.
	ResampleCopy(dst, src Canvas, srcRect, dstRect image.Rectangle)

	// DirectCopy copies srcRect of src into dst at dstOffset without
	// scaling or blending. Empty or out-of-range rectangles are no-ops.
	DirectCopy(dst, src Canvas, srcRect image.Rectangle, dstOffset image.Point)

	// Composite draws src onto dst at (x, y) in place using op.
	Composite(dst, src Canvas, op Operator, x, y int) error

	// Rotate returns c rotated clockwise by angle degrees, grown to the
	// rotated bounding box. Uncovered area is filled with bg, or left
	// transparent when bg is nil.
	Rotate(c Canvas, angle float64, bg *RGBColor) (Canvas, error)

	// Filter returns a filtered copy of c.
	Filter(c Canvas, f Filter) (Canvas, error)

	// FillEllipse paints an antialiased filled ellipse centred on (cx, cy)
	// with the given full width and height.
	FillEllipse(c Canvas, cx, cy, w, h float64, px RGBA)

	// FillPolygon paints an antialiased filled polygon.
	FillPolygon(c Canvas, pts []Point, px RGBA)

	// Destroy releases c. Destroying nil is a no-op.
	Destroy(c Canvas)
}
