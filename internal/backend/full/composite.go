package full

import (
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/backend/pixbuf"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	xdraw "golang.org/x/image/draw"
)

type blendFunc func(bg, fg image.Image) *image.RGBA

// blendOps are the operators bild implements directly.
var blendOps = map[canvas.Operator]blendFunc{
	canvas.OpMultiply:   blend.Multiply,
	canvas.OpScreen:     blend.Screen,
	canvas.OpDarken:     blend.Darken,
	canvas.OpLighten:    blend.Lighten,
	canvas.OpDifference: blend.Difference,
	canvas.OpAdd:        blend.Add,
	canvas.OpPlus:       blend.Add,
	canvas.OpMinus:      blend.Subtract,
	canvas.OpSubtract:   blend.Subtract,
	canvas.OpOverlay:    blend.Overlay,
	canvas.OpSoftLight:  blend.SoftLight,
	canvas.OpColorBurn:  blend.ColorBurn,
	canvas.OpColorDodge: blend.ColorDodge,
	canvas.OpExclusion:  blend.Exclusion,
	canvas.OpDissolve:   blend.Normal,
	canvas.OpBlend: func(bg, fg image.Image) *image.RGBA {
		return blend.Opacity(bg, fg, 0.5)
	},
}

// Composite draws src onto dst at (x, y) using op.
//
// OVER is a plain draw. Blend modes bild offers are applied to the region
// under src; Porter-Duff, channel-copy and HSL operators are computed per
// pixel. UNDEFINED and NO leave dst untouched. The remaining displacement
// style operators are a capability gap.
func (*Backend) Composite(dst, src canvas.Canvas, op canvas.Operator, x, y int) error {
	d, s := pixbuf.Unwrap(dst), pixbuf.Unwrap(src)

	switch {
	case op.IsNormal():
		pixbuf.Over(d, s, x, y)
		return nil
	case op == canvas.OpUndefined || op == canvas.OpNo:
		return nil
	}

	if fn, ok := blendOps[op]; ok {
		off := image.Pt(x, y)
		r := s.Img.Rect.Add(off).Intersect(d.Img.Rect)
		if r.Empty() {
			return nil
		}
		out := fn(imaging.Crop(d.Img, r), imaging.Crop(s.Img, r.Sub(off)))
		xdraw.Draw(d.Img, r, out, out.Bounds().Min, xdraw.Src)
		return nil
	}

	return pixbuf.Composite(d, s, op, x, y)
}
