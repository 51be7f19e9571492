// Package full is the full-featured image backend.
//
// Raster work goes through github.com/anthonynsimon/bild (decode, encode,
// resample, rotate, blur, color adjustment and blend modes). SVG and SVGZ
// sources are rasterized with github.com/srwiley/oksvg at whatever
// resolution a resize asks for, so scaling a vector image never resamples
// pixels. Alpha is reported on the full 0-255 scale.
package full

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/backend/pixbuf"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// Name is the backend name used in configuration.
const Name = "full"

// AlphaMax is the opaque alpha value of this backend.
const AlphaMax uint8 = 255

var formats = []string{"PNG", "JPEG", "GIF", "BMP", "TIFF", "WEBP", "SVG", "SVGZ"}

// Backend implements canvas.Backend on top of bild and oksvg.
type Backend struct{}

// New returns the full backend.
func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return Name }

func (*Backend) Formats() []string { return append([]string(nil), formats...) }

func (*Backend) AlphaMax() uint8 { return AlphaMax }

// Supports reports true for overlay compositing and vector decoding.
func (*Backend) Supports(c canvas.Capability) bool {
	return c == canvas.CapOverlay || c == canvas.CapVector
}

// Load decodes path. Vector sources are rendered at their nominal size,
// one user unit per pixel at 72 dpi.
func (b *Backend) Load(path string) (canvas.Canvas, error) {
	return b.LoadAtResolution(path, pixbuf.DefaultResolution, pixbuf.DefaultResolution)
}

// LoadAtResolution decodes path, rasterizing vector sources at xRes × yRes
// dots per inch. Raster sources ignore the resolution.
func (*Backend) LoadAtResolution(path string, xRes, yRes float64) (canvas.Canvas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", canvas.ErrLoad, err)
	}
	tag, err := pixbuf.Sniff(path, data)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "SVG", "SVGZ":
		img, err := rasterizeSVG(data, tag == "SVGZ", xRes, yRes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", canvas.ErrLoad, path, err)
		}
		c := pixbuf.New(img, tag)
		c.SetResolution(xRes, yRes)
		return c, nil
	case "PNG", "JPEG", "GIF", "BMP", "TIFF", "WEBP":
		img, err := imgio.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", canvas.ErrLoad, path, err)
		}
		return pixbuf.FromImage(img, tag), nil
	default:
		return nil, fmt.Errorf("%w: %s: format %s is not supported by the %s backend", canvas.ErrLoad, path, tag, Name)
	}
}

// Resolution returns the density c was decoded at, in dots per inch.
func (*Backend) Resolution(c canvas.Canvas) (float64, float64) {
	return pixbuf.Unwrap(c).Resolution()
}

// Save encodes c with bild's encoders, falling back to imaging for GIF and
// TIFF. Unknown formats are written as PNG.
func (*Backend) Save(c canvas.Canvas, path, format string, quality int) error {
	var enc imgio.Encoder
	switch canvas.NormalizeFormat(format) {
	case "jpeg":
		enc = imgio.JPEGEncoder(quality)
	case "bmp":
		enc = imgio.BMPEncoder()
	case "gif":
		enc = imagingEncoder(imaging.GIF)
	case "tiff":
		enc = imagingEncoder(imaging.TIFF)
	default:
		enc = imgio.PNGEncoder()
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	if err := imgio.Save(path, pixbuf.Unwrap(c).Img, enc); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func imagingEncoder(f imaging.Format) imgio.Encoder {
	return func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, f)
	}
}

// CreateCanvas allocates a w×h canvas filled with fill, or transparent
// when fill is nil.
func (*Backend) CreateCanvas(w, h int, fill *canvas.RGBColor) (canvas.Canvas, error) {
	return pixbuf.Blank(w, h, fill)
}

func (*Backend) GetPixel(c canvas.Canvas, x, y int) canvas.RGBA {
	return pixbuf.Get(pixbuf.Unwrap(c), x, y, AlphaMax)
}

func (*Backend) SetPixel(c canvas.Canvas, x, y int, px canvas.RGBA) {
	pixbuf.Set(pixbuf.Unwrap(c), x, y, px, AlphaMax)
}

// ResampleCopy scales with a Lanczos kernel.
func (*Backend) ResampleCopy(dst, src canvas.Canvas, srcRect, dstRect image.Rectangle) {
	s := pixbuf.Unwrap(src)
	sr := srcRect.Intersect(s.Img.Rect)
	if sr.Empty() || dstRect.Empty() {
		return
	}
	scaled := pixbuf.FromImage(transform.Resize(imaging.Crop(s.Img, sr), dstRect.Dx(), dstRect.Dy(), transform.Lanczos), s.Format())
	pixbuf.DirectCopy(pixbuf.Unwrap(dst), scaled, scaled.Img.Rect, dstRect.Min)
}

func (*Backend) DirectCopy(dst, src canvas.Canvas, srcRect image.Rectangle, dstOffset image.Point) {
	pixbuf.DirectCopy(pixbuf.Unwrap(dst), pixbuf.Unwrap(src), srcRect, dstOffset)
}

// Rotate turns c clockwise by angle degrees, growing the canvas to the
// rotated bounding box.
func (*Backend) Rotate(c canvas.Canvas, angle float64, bg *canvas.RGBColor) (canvas.Canvas, error) {
	pc := pixbuf.Unwrap(c)
	if out, ok := pixbuf.RightAngle(pc.Img, angle); ok {
		return pc.Derive(out), nil
	}

	opts := &transform.RotationOptions{ResizeBounds: true}
	out := imaging.Clone(transform.Rotate(pc.Img, angle, opts))
	if bg != nil {
		coverage := imaging.New(pc.Width(), pc.Height(), color.White)
		pixbuf.FillUncovered(out, imaging.Clone(transform.Rotate(coverage, angle, opts)), *bg)
	}
	return pc.Derive(out), nil
}

func (*Backend) FillEllipse(c canvas.Canvas, cx, cy, w, h float64, px canvas.RGBA) {
	pixbuf.FillEllipse(pixbuf.Unwrap(c), cx, cy, w, h, pixbuf.NRGBA(px, AlphaMax))
}

func (*Backend) FillPolygon(c canvas.Canvas, pts []canvas.Point, px canvas.RGBA) {
	pixbuf.FillPolygon(pixbuf.Unwrap(c), pts, pixbuf.NRGBA(px, AlphaMax))
}

func (*Backend) Destroy(c canvas.Canvas) {
	if pc, ok := c.(*pixbuf.Canvas); ok && pc != nil {
		pc.Img = nil
	}
}
