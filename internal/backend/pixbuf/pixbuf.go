package pixbuf

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// DefaultResolution is the resolution, in dots per inch, reported for
// canvases whose source carries no usable density information.
const DefaultResolution = 72.0

// Canvas is a canvas.Canvas backed by an *image.NRGBA whose bounds always
// start at the origin.
type Canvas struct {
	// Img holds the pixels. Backends replace it rather than resizing it.
	Img *image.NRGBA

	format     string
	xRes, yRes float64
}

// New wraps img, re-basing it to the origin when needed.
func New(img *image.NRGBA, format string) *Canvas {
	if img.Bounds().Min != (image.Point{}) {
		img = imaging.Clone(img)
	}
	if format == "" {
		format = "PNG"
	}
	return &Canvas{Img: img, format: format, xRes: DefaultResolution, yRes: DefaultResolution}
}

// FromImage converts any decoded image to a Canvas.
func FromImage(img image.Image, format string) *Canvas {
	if n, ok := img.(*image.NRGBA); ok {
		return New(n, format)
	}
	return New(imaging.Clone(img), format)
}

// Blank allocates a w×h canvas filled with fill, or transparent when fill
// is nil.
func Blank(w, h int, fill *canvas.RGBColor) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d must be positive", canvas.ErrInvalidArgument, w, h)
	}
	var c color.Color = color.Transparent
	if fill != nil {
		c = fill.NRGBA()
	}
	return New(imaging.New(w, h, c), "PNG"), nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.Img.Bounds().Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.Img.Bounds().Dy() }

// Format returns the upper-case source format tag.
func (c *Canvas) Format() string { return c.format }

// Resolution returns the canvas resolution in dots per inch.
func (c *Canvas) Resolution() (float64, float64) { return c.xRes, c.yRes }

// SetResolution records the resolution the canvas was rendered at.
func (c *Canvas) SetResolution(xRes, yRes float64) {
	c.xRes, c.yRes = xRes, yRes
}

// Derive wraps a new buffer produced from c, keeping its format tag and
// resolution.
func (c *Canvas) Derive(img *image.NRGBA) *Canvas {
	d := New(img, c.format)
	d.xRes, d.yRes = c.xRes, c.yRes
	return d
}

// Unwrap returns the *Canvas behind c. Passing a canvas created by another
// backend is a programming error and panics.
func Unwrap(c canvas.Canvas) *Canvas {
	pc, ok := c.(*Canvas)
	if !ok || pc == nil {
		panic(fmt.Sprintf("pixbuf: foreign canvas %T", c))
	}
	return pc
}

// ToUnit converts an 8-bit alpha to a backend alpha unit with the given
// maximum.
func ToUnit(a8, alphaMax uint8) uint8 {
	if alphaMax == 255 {
		return a8
	}
	return uint8(math.Round(float64(a8) * float64(alphaMax) / 255))
}

// FromUnit converts a backend alpha value back to 8 bits. Values above
// alphaMax are treated as opaque.
func FromUnit(a, alphaMax uint8) uint8 {
	if alphaMax == 255 {
		return a
	}
	if a >= alphaMax {
		return 255
	}
	return uint8(math.Round(float64(a) * 255 / float64(alphaMax)))
}

// Get reads a pixel with alpha expressed in the alphaMax unit.
// Out-of-range coordinates yield a transparent pixel.
func Get(c *Canvas, x, y int, alphaMax uint8) canvas.RGBA {
	if !(image.Point{X: x, Y: y}).In(c.Img.Rect) {
		return canvas.RGBA{}
	}
	px := c.Img.NRGBAAt(x, y)
	return canvas.RGBA{R: px.R, G: px.G, B: px.B, A: ToUnit(px.A, alphaMax)}
}

// Set writes a pixel whose alpha is expressed in the alphaMax unit.
// Out-of-range coordinates are ignored.
func Set(c *Canvas, x, y int, px canvas.RGBA, alphaMax uint8) {
	c.Img.SetNRGBA(x, y, color.NRGBA{R: px.R, G: px.G, B: px.B, A: FromUnit(px.A, alphaMax)})
}

// NRGBA converts a pixel in the alphaMax unit to color.NRGBA.
func NRGBA(px canvas.RGBA, alphaMax uint8) color.NRGBA {
	return color.NRGBA{R: px.R, G: px.G, B: px.B, A: FromUnit(px.A, alphaMax)}
}

// MultiplyAlpha scales every pixel's alpha by factor, clamped to [0, 1].
func MultiplyAlpha(img *image.NRGBA, factor float64) *image.NRGBA {
	factor = math.Min(math.Max(factor, 0), 1)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = uint8(math.Round(float64(c.A) * factor))
		return c
	})
}
