// Package basic is the raster-only image backend.
//
// It decodes and encodes through github.com/disintegration/imaging and the
// golang.org/x/image codecs, reports alpha on a 0-127 scale and has neither
// vector decoding nor compositing operators beyond OVER.
package basic

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/backend/pixbuf"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// Name is the backend name used in configuration.
const Name = "basic"

// AlphaMax is the opaque alpha value of this backend.
const AlphaMax uint8 = 127

var formats = []string{"PNG", "JPEG", "GIF", "BMP", "TIFF", "WEBP"}

var encodeFormats = map[string]imaging.Format{
	"png":  imaging.PNG,
	"jpeg": imaging.JPEG,
	"gif":  imaging.GIF,
	"bmp":  imaging.BMP,
	"tiff": imaging.TIFF,
}

// Backend implements canvas.Backend on top of imaging.
type Backend struct{}

// New returns the raster-only backend.
func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return Name }

func (*Backend) Formats() []string { return append([]string(nil), formats...) }

func (*Backend) AlphaMax() uint8 { return AlphaMax }

// Supports reports false for every optional capability.
func (*Backend) Supports(canvas.Capability) bool { return false }

// Load decodes a raster file, applying EXIF orientation.
func (b *Backend) Load(path string) (canvas.Canvas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", canvas.ErrLoad, err)
	}
	tag, err := pixbuf.Sniff(path, data)
	if err != nil {
		return nil, err
	}
	if !decodes(tag) {
		return nil, fmt.Errorf("%w: %s: format %s is not supported by the %s backend", canvas.ErrLoad, path, tag, Name)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", canvas.ErrLoad, path, err)
	}
	return pixbuf.FromImage(img, tag), nil
}

func decodes(tag string) bool {
	for _, f := range formats {
		if f == tag {
			return true
		}
	}
	return false
}

// LoadAtResolution always fails: there is no vector support.
func (*Backend) LoadAtResolution(path string, _, _ float64) (canvas.Canvas, error) {
	return nil, fmt.Errorf("%w: %s cannot rasterize %s at a resolution", canvas.ErrCapabilityGap, Name, path)
}

// Resolution returns the density c was decoded at, in dots per inch.
func (*Backend) Resolution(c canvas.Canvas) (float64, float64) {
	return pixbuf.Unwrap(c).Resolution()
}

// Save encodes c. Unknown formats are written as PNG; quality is used for
// JPEG only.
func (*Backend) Save(c canvas.Canvas, path, format string, quality int) error {
	f, ok := encodeFormats[canvas.NormalizeFormat(format)]
	if !ok {
		f = imaging.PNG
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := imaging.Encode(out, pixbuf.Unwrap(c).Img, f, imaging.JPEGQuality(quality)); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return out.Close()
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

// ResampleCopy scales with a linear filter, the closest match to bilinear
// resampling in classic raster libraries.
func (*Backend) ResampleCopy(dst, src canvas.Canvas, srcRect, dstRect image.Rectangle) {
	s := pixbuf.Unwrap(src)
	d := pixbuf.Unwrap(dst)
	sr := srcRect.Intersect(s.Img.Rect)
	if sr.Empty() || dstRect.Empty() {
		return
	}
	scaled := imaging.Resize(imaging.Crop(s.Img, sr), dstRect.Dx(), dstRect.Dy(), imaging.Linear)
	pixbuf.DirectCopy(d, pixbuf.New(scaled, s.Format()), scaled.Rect, dstRect.Min)
}

func (*Backend) DirectCopy(dst, src canvas.Canvas, srcRect image.Rectangle, dstOffset image.Point) {
	pixbuf.DirectCopy(pixbuf.Unwrap(dst), pixbuf.Unwrap(src), srcRect, dstOffset)
}

// Composite supports the normal operator only; anything else is a
// capability gap.
func (*Backend) Composite(dst, src canvas.Canvas, op canvas.Operator, x, y int) error {
	if !op.IsNormal() {
		return &pixbuf.OperatorError{Op: op}
	}
	pixbuf.Over(pixbuf.Unwrap(dst), pixbuf.Unwrap(src), x, y)
	return nil
}

// Rotate turns c clockwise by angle degrees.
func (*Backend) Rotate(c canvas.Canvas, angle float64, bg *canvas.RGBColor) (canvas.Canvas, error) {
	pc := pixbuf.Unwrap(c)
	if out, ok := pixbuf.RightAngle(pc.Img, angle); ok {
		return pc.Derive(out), nil
	}
	var fill color.Color = color.Transparent
	if bg != nil {
		fill = bg.NRGBA()
	}
	return pc.Derive(imaging.Rotate(pc.Img, -angle, fill)), nil
}

func (*Backend) FillEllipse(c canvas.Canvas, cx, cy, w, h float64, px canvas.RGBA) {
	pixbuf.FillEllipse(pixbuf.Unwrap(c), cx, cy, w, h, pixbuf.NRGBA(px, AlphaMax))
}

func (*Backend) FillPolygon(c canvas.Canvas, pts []canvas.Point, px canvas.RGBA) {
	pixbuf.FillPolygon(pixbuf.Unwrap(c), pts, pixbuf.NRGBA(px, AlphaMax))
}

// Destroy drops the pixel buffer so a stale reference fails loudly.
func (*Backend) Destroy(c canvas.Canvas) {
	if pc, ok := c.(*pixbuf.Canvas); ok && pc != nil {
		pc.Img = nil
	}
}
