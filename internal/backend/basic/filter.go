package basic

import (
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/backend/pixbuf"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// Filter applies f with imaging's color adjustments.
func (*Backend) Filter(c canvas.Canvas, f canvas.Filter) (canvas.Canvas, error) {
	pc := pixbuf.Unwrap(c)
	switch f := f.(type) {
	case canvas.Grayscale:
		return pc.Derive(imaging.Grayscale(pc.Img)), nil

	case canvas.Sepia:
		img := imaging.Grayscale(pc.Img)
		img = imaging.AdjustBrightness(img, canvas.SepiaBrightness*100.0/255)
		img = imaging.AdjustContrast(img, canvas.SepiaContrast)
		tr, tg, tb := f.Tint()
		img = imaging.AdjustFunc(img, func(p color.NRGBA) color.NRGBA {
			p.R = clampAdd(p.R, tr)
			p.G = clampAdd(p.G, tg)
			p.B = clampAdd(p.B, tb)
			return p
		})
		return pc.Derive(img), nil

	case canvas.Unsharp:
		gain, radius, threshold := f.Normalize()
		if gain == 0 || radius == 0 {
			return pc.Derive(imaging.Clone(pc.Img)), nil
		}
		blurred := imaging.Blur(pc.Img, pixbuf.BlurSigma(radius))
		return pc.Derive(pixbuf.UnsharpCombine(pc.Img, blurred, gain, threshold)), nil

	case canvas.AlphaMultiply:
		return pc.Derive(pixbuf.MultiplyAlpha(pc.Img, f.Factor)), nil

	default:
		return nil, fmt.Errorf("%w: filter %s", canvas.ErrCapabilityGap, canvas.FilterName(f))
	}
}

func clampAdd(v uint8, d float64) uint8 {
	s := float64(v) + d
	switch {
	case s < 0:
		return 0
	case s > 255:
		return 255
	default:
		return uint8(s + 0.5)
	}
}
