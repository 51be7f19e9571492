package pixbuf

import (
	"image"
	"image/color"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four curves approximate
// an ellipse quadrant to within 0.03%.
const kappa = 0.5522847498

// FillEllipse paints an antialiased filled ellipse centred on (cx, cy) with
// full width w and height h.
func FillEllipse(c *Canvas, cx, cy, w, h float64, col color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	rx, ry := float32(w/2), float32(h/2)
	x, y := float32(cx), float32(cy)
	kx, ky := rx*kappa, ry*kappa

	z := newRasterizer(c)
	z.MoveTo(x+rx, y)
	z.CubeTo(x+rx, y+ky, x+kx, y+ry, x, y+ry)
	z.CubeTo(x-kx, y+ry, x-rx, y+ky, x-rx, y)
	z.CubeTo(x-rx, y-ky, x-kx, y-ry, x, y-ry)
	z.CubeTo(x+kx, y-ry, x+rx, y-ky, x+rx, y)
	z.ClosePath()
	fill(c, z, col)
}

// FillPolygon paints an antialiased filled polygon. Fewer than three points
// paint nothing.
func FillPolygon(c *Canvas, pts []canvas.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	z := newRasterizer(c)
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	fill(c, z, col)
}

func newRasterizer(c *Canvas) *vector.Rasterizer {
	return vector.NewRasterizer(c.Width(), c.Height())
}

// fill rasterizes the path to a coverage mask and blends col into c in
// straight-alpha space, weighting every channel by coverage.
func fill(c *Canvas, z *vector.Rasterizer, col color.NRGBA) {
	mask := image.NewAlpha(c.Img.Rect)
	z.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			m := mask.AlphaAt(x, y).A
			switch m {
			case 0:
				continue
			case 255:
				c.Img.SetNRGBA(x, y, col)
			default:
				c.Img.SetNRGBA(x, y, lerp(c.Img.NRGBAAt(x, y), col, m))
			}
		}
	}
}

func lerp(a, b color.NRGBA, m uint8) color.NRGBA {
	t := uint32(m)
	mix := func(p, q uint8) uint8 {
		return uint8((uint32(p)*(255-t) + uint32(q)*t + 127) / 255)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
