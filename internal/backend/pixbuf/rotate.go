package pixbuf

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// RightAngle rotates img clockwise when angle is a multiple of 90 degrees.
// It reports false for any other angle, leaving free rotation to the caller.
func RightAngle(img *image.NRGBA, angle float64) (*image.NRGBA, bool) {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	// imaging rotates counter-clockwise
	switch a {
	case 0:
		return imaging.Clone(img), true
	case 90:
		return imaging.Rotate270(img), true
	case 180:
		return imaging.Rotate180(img), true
	case 270:
		return imaging.Rotate90(img), true
	default:
		return nil, false
	}
}

// FillUncovered paints bg into the area of a freely rotated image that no
// source pixel covers.
//
// coverage is an opaque canvas of the original size rotated exactly like
// img, so its alpha is the fraction of each output pixel covered by the
// source. Transparent source pixels stay transparent; only the uncovered
// remainder receives bg.
func FillUncovered(img, coverage *image.NRGBA, bg canvas.RGBColor) {
	br, bgG, bb := float64(bg.R), float64(bg.G), float64(bg.B)
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			u := 1 - float64(coverage.NRGBAAt(x, y).A)/255
			if u <= 0 {
				continue
			}
			p := img.NRGBAAt(x, y)
			a := float64(p.A) / 255
			outA := math.Min(a+u, 1)
			mix := func(c, b float64) uint8 {
				return clamp8((c*a + b*u) / outA)
			}
			p.R, p.G, p.B = mix(float64(p.R), br), mix(float64(p.G), bgG), mix(float64(p.B), bb)
			p.A = clamp8(outA * 255)
			img.SetNRGBA(x, y, p)
		}
	}
}
