package pixbuf

import (
	"image"
	"math"
)

// UnsharpCombine sharpens orig against its blurred copy.
//
// Each color channel whose difference from the blurred value reaches
// threshold is pushed away from it by gain times that difference. Alpha is
// taken from orig. Both images must have the same bounds.
func UnsharpCombine(orig, blurred *image.NRGBA, gain, threshold float64) *image.NRGBA {
	out := image.NewNRGBA(orig.Rect)
	copy(out.Pix, orig.Pix)
	if gain == 0 {
		return out
	}

	for y := 0; y < orig.Rect.Dy(); y++ {
		i := y * orig.Stride
		for x := 0; x < orig.Rect.Dx(); x, i = x+1, i+4 {
			for ch := 0; ch < 3; ch++ {
				o := float64(orig.Pix[i+ch])
				diff := o - float64(blurred.Pix[i+ch])
				if math.Abs(diff) < threshold {
					continue
				}
				out.Pix[i+ch] = clamp8(o + gain*diff)
			}
		}
	}
	return out
}

// BlurSigma converts an unsharp radius to a Gaussian sigma. Radii below one
// pixel are used as is; larger ones grow with the square root.
func BlurSigma(radius float64) float64 {
	if radius < 1 {
		return radius
	}
	return math.Sqrt(radius)
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}
