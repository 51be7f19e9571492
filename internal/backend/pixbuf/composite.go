package pixbuf

import (
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"github.com/lucasb-eyer/go-colorful"
)

// fpx is a straight-alpha pixel with channels in [0, 1].
type fpx struct {
	r, g, b, a float64
}

func toF(c color.NRGBA) fpx {
	return fpx{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255}
}

func (p fpx) nrgba() color.NRGBA {
	q := func(v float64) uint8 {
		return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
	}
	return color.NRGBA{R: q(p.r), G: q(p.g), B: q(p.b), A: q(p.a)}
}

// pixelOp combines a destination and a source pixel.
type pixelOp func(d, s fpx) fpx

// porterDuff builds an operator from the Porter-Duff fractions: the result
// is Fa·src + Fb·dst in premultiplied space.
func porterDuff(fa, fb func(as, ad float64) float64) pixelOp {
	return func(d, s fpx) fpx {
		wa, wb := fa(s.a, d.a), fb(s.a, d.a)
		a := s.a*wa + d.a*wb
		if a <= 0 {
			return fpx{}
		}
		return fpx{
			r: (s.r*s.a*wa + d.r*d.a*wb) / a,
			g: (s.g*s.a*wa + d.g*d.a*wb) / a,
			b: (s.b*s.a*wa + d.b*d.a*wb) / a,
			a: a,
		}
	}
}

func zero(_, _ float64) float64     { return 0 }
func one(_, _ float64) float64      { return 1 }
func srcA(as, _ float64) float64    { return as }
func dstA(_, ad float64) float64    { return ad }
func invSrcA(as, _ float64) float64 { return 1 - as }
func invDstA(_, ad float64) float64 { return 1 - ad }

// blendOp builds a separable or non-separable blend mode composited with
// source-over coverage:
//
//	co = as·(1-ad)·Cs + as·ad·B(Cd, Cs) + (1-as)·ad·Cd
func blendOp(mix func(d, s fpx) fpx) pixelOp {
	return func(d, s fpx) fpx {
		a := s.a + d.a*(1-s.a)
		if a <= 0 {
			return fpx{}
		}
		m := mix(d, s)
		ch := func(cs, cd, cm float64) float64 {
			return (s.a*(1-d.a)*cs + s.a*d.a*cm + (1-s.a)*d.a*cd) / a
		}
		return fpx{r: ch(s.r, d.r, m.r), g: ch(s.g, d.g, m.g), b: ch(s.b, d.b, m.b), a: a}
	}
}

func separable(f func(cd, cs float64) float64) pixelOp {
	return blendOp(func(d, s fpx) fpx {
		return fpx{r: f(d.r, s.r), g: f(d.g, s.g), b: f(d.b, s.b)}
	})
}

func hardLight(cd, cs float64) float64 {
	if cs <= 0.5 {
		return 2 * cd * cs
	}
	return 1 - 2*(1-cd)*(1-cs)
}

// hslOp recombines hue, saturation and lightness of the two pixels via
// go-colorful, taking the components selected by pick from the source.
func hslOp(pick func(dh, ds, dl, sh, ss, sl float64) (h, s, l float64)) pixelOp {
	return blendOp(func(d, s fpx) fpx {
		dh, ds, dl := colorful.Color{R: d.r, G: d.g, B: d.b}.Hsl()
		sh, ss, sl := colorful.Color{R: s.r, G: s.g, B: s.b}.Hsl()
		c := colorful.Hsl(pick(dh, ds, dl, sh, ss, sl)).Clamped()
		return fpx{r: c.R, g: c.G, b: c.B}
	})
}

func luminance(p fpx) float64 {
	return 0.299*p.r + 0.587*p.g + 0.114*p.b
}

var pixelOps = map[canvas.Operator]pixelOp{
	canvas.OpClear:   porterDuff(zero, zero),
	canvas.OpSrc:     porterDuff(one, zero),
	canvas.OpCopy:    porterDuff(one, zero),
	canvas.OpReplace: porterDuff(one, zero),
	canvas.OpDst:     porterDuff(zero, one),
	canvas.OpOver:    porterDuff(one, invSrcA),
	canvas.OpSrcOver: porterDuff(one, invSrcA),
	canvas.OpDstOver: porterDuff(invDstA, one),
	canvas.OpIn:      porterDuff(dstA, zero),
	canvas.OpSrcIn:   porterDuff(dstA, zero),
	canvas.OpDstIn:   porterDuff(zero, srcA),
	canvas.OpOut:     porterDuff(invDstA, zero),
	canvas.OpSrcOut:  porterDuff(invDstA, zero),
	canvas.OpDstOut:  porterDuff(zero, invSrcA),
	canvas.OpAtop:    porterDuff(dstA, invSrcA),
	canvas.OpSrcAtop: porterDuff(dstA, invSrcA),
	canvas.OpDstAtop: porterDuff(invDstA, srcA),
	canvas.OpXor:     porterDuff(invDstA, invSrcA),

	canvas.OpHardLight: separable(hardLight),

	canvas.OpHue: hslOp(func(_, ds, dl, sh, _, _ float64) (float64, float64, float64) {
		return sh, ds, dl
	}),
	canvas.OpSaturate: hslOp(func(dh, _, dl, _, ss, _ float64) (float64, float64, float64) {
		return dh, ss, dl
	}),
	canvas.OpColorize: hslOp(func(_, _, dl, sh, ss, _ float64) (float64, float64, float64) {
		return sh, ss, dl
	}),
	canvas.OpLuminize: hslOp(func(dh, ds, _, _, _, sl float64) (float64, float64, float64) {
		return dh, ds, sl
	}),

	canvas.OpCopyRed:     func(d, s fpx) fpx { d.r = s.r; return d },
	canvas.OpCopyCyan:    func(d, s fpx) fpx { d.r = s.r; return d },
	canvas.OpCopyGreen:   func(d, s fpx) fpx { d.g = s.g; return d },
	canvas.OpCopyMagenta: func(d, s fpx) fpx { d.g = s.g; return d },
	canvas.OpCopyBlue:    func(d, s fpx) fpx { d.b = s.b; return d },
	canvas.OpCopyYellow:  func(d, s fpx) fpx { d.b = s.b; return d },
	canvas.OpCopyOpacity: func(d, s fpx) fpx {
		if s.a < 1 {
			d.a = s.a
		} else {
			d.a = luminance(s)
		}
		return d
	},
	canvas.OpCopyBlack: func(d, s fpx) fpx {
		kd := 1 - math.Max(d.r, math.Max(d.g, d.b))
		ks := 1 - math.Max(s.r, math.Max(s.g, s.b))
		if kd >= 1 {
			d.r, d.g, d.b = 1-ks, 1-ks, 1-ks
			return d
		}
		f := (1 - ks) / (1 - kd)
		d.r, d.g, d.b = d.r*f, d.g*f, d.b*f
		return d
	},
}

// Composite applies op to the region of dst under src placed at (x, y).
// Destination pixels outside that region are untouched, matching the
// bounded compositing model of raster libraries. It returns
// canvas.ErrCapabilityGap for operators without a per-pixel definition.
func Composite(dst, src *Canvas, op canvas.Operator, x, y int) error {
	f, ok := pixelOps[op]
	if !ok {
		return capabilityGap(op)
	}
	off := image.Pt(x, y)
	r := src.Img.Rect.Add(off).Intersect(dst.Img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			d := toF(dst.Img.NRGBAAt(px, py))
			s := toF(src.Img.NRGBAAt(px-x, py-y))
			dst.Img.SetNRGBA(px, py, f(d, s).nrgba())
		}
	}
	return nil
}

func capabilityGap(op canvas.Operator) error {
	return &OperatorError{Op: op}
}

// OperatorError reports a compositing operator a backend cannot apply.
// It matches canvas.ErrCapabilityGap with errors.Is.
type OperatorError struct {
	Op canvas.Operator
}

func (e *OperatorError) Error() string {
	return "compositing operator " + e.Op.String() + " is not supported"
}

// Is makes errors.Is(err, canvas.ErrCapabilityGap) succeed.
func (e *OperatorError) Is(target error) bool {
	return target == canvas.ErrCapabilityGap
}
