package full

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/backend/pixbuf"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// Filter applies f with bild's adjust and blur packages.
//
// bild works on premultiplied RGBA. Sepia is not linear in the channels, so
// it runs on an opaque copy and the original alpha is put back afterwards.
func (*Backend) Filter(c canvas.Canvas, f canvas.Filter) (canvas.Canvas, error) {
	pc := pixbuf.Unwrap(c)
	switch f := f.(type) {
	case canvas.Grayscale:
		return pc.Derive(imaging.Clone(grayscale(pc.Img))), nil

	case canvas.Sepia:
		img := grayscale(opaque(pc.Img))
		img = adjust.Brightness(img, canvas.SepiaBrightness/255.0)
		img = adjust.Contrast(img, canvas.SepiaContrast/100.0)
		tr, tg, tb := f.Tint()
		img = adjust.Apply(img, func(p color.RGBA) color.RGBA {
			p.R = addClamped(p.R, tr)
			p.G = addClamped(p.G, tg)
			p.B = addClamped(p.B, tb)
			return p
		})
		return pc.Derive(withAlpha(img, pc.Img)), nil

	case canvas.Unsharp:
		gain, radius, threshold := f.Normalize()
		if gain == 0 || radius == 0 {
			return pc.Derive(imaging.Clone(pc.Img)), nil
		}
		blurred := imaging.Clone(blur.Gaussian(pc.Img, pixbuf.BlurSigma(radius)))
		return pc.Derive(pixbuf.UnsharpCombine(pc.Img, blurred, gain, threshold)), nil

	case canvas.AlphaMultiply:
		return pc.Derive(pixbuf.MultiplyAlpha(pc.Img, f.Factor)), nil

	default:
		return nil, fmt.Errorf("%w: filter %s", canvas.ErrCapabilityGap, canvas.FilterName(f))
	}
}

// grayscale replaces each pixel with its Rec. 601 luma, keeping alpha.
func grayscale(img image.Image) *image.RGBA {
	return adjust.Apply(img, func(p color.RGBA) color.RGBA {
		l := uint8(math.Round(0.299*float64(p.R) + 0.587*float64(p.G) + 0.114*float64(p.B)))
		return color.RGBA{R: l, G: l, B: l, A: p.A}
	})
}

func addClamped(v uint8, d float64) uint8 {
	return uint8(math.Min(math.Max(math.Round(float64(v)+d), 0), 255))
}

// opaque returns a copy of img with every pixel at full alpha, so its
// premultiplied and straight channels agree.
func opaque(img *image.NRGBA) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}

// withAlpha pairs the colors of the opaque img with the alpha of straight.
func withAlpha(img *image.RGBA, straight *image.NRGBA) *image.NRGBA {
	dst := imaging.Clone(img)
	for y := 0; y < dst.Rect.Dy(); y++ {
		si := y * straight.Stride
		di := y * dst.Stride
		for x := 0; x < dst.Rect.Dx(); x++ {
			dst.Pix[di+x*4+3] = straight.Pix[si+x*4+3]
		}
	}
	return dst
}
