package compositor

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

var (
	maskOutside = canvas.RGBColor{R: 255, G: 255, B: 255}
	maskInside  = canvas.RGBA{}
)

// RoundCorners returns a copy of c with elliptical corners of radii xr and
// yr cut out with antialiased edges.
//
// An auxiliary mask is drawn white, then the area to keep is painted black:
// one filled ellipse per corner, centred one radius in from both edges, and
// an octagon joining the flat edges. The three flat strips between the
// corners are copied as they are. Only the four radius-sized corner boxes
// are computed per pixel, their alpha being the source alpha scaled by
// MaskAlpha of the mask pixel.
//
// Radii are clamped to half the canvas size. A zero radius leaves the
// image unchanged.
func RoundCorners(b canvas.Backend, c canvas.Canvas, xr, yr int) (canvas.Canvas, error) {
	w, h := c.Width(), c.Height()
	xr = clampRadius(xr, w)
	yr = clampRadius(yr, h)

	out, err := b.CreateCanvas(w, h, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate canvas: %w", err)
	}
	if xr == 0 || yr == 0 {
		b.DirectCopy(out, c, image.Rect(0, 0, w, h), image.Point{})
		return out, nil
	}

	mask, err := cornerMask(b, w, h, xr, yr)
	if err != nil {
		b.Destroy(out)
		return nil, err
	}
	defer b.Destroy(mask)

	// flat strips: top, middle band, bottom
	b.DirectCopy(out, c, image.Rect(xr, 0, w-xr, yr), image.Pt(xr, 0))
	b.DirectCopy(out, c, image.Rect(0, yr, w, h-yr), image.Pt(0, yr))
	b.DirectCopy(out, c, image.Rect(xr, h-yr, w-xr, h), image.Pt(xr, h-yr))

	alphaMax := b.AlphaMax()
	for _, box := range []image.Rectangle{
		image.Rect(0, 0, xr, yr),
		image.Rect(w-xr, 0, w, yr),
		image.Rect(0, h-yr, xr, h),
		image.Rect(w-xr, h-yr, w, h),
	} {
		copyCornerWithMask(b, out, c, mask, box, alphaMax)
	}
	return out, nil
}

func cornerMask(b canvas.Backend, w, h, xr, yr int) (canvas.Canvas, error) {
	mask, err := b.CreateCanvas(w, h, &maskOutside)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate corner mask: %w", err)
	}
	ink := maskInside
	ink.A = b.AlphaMax()

	fw, fh := float64(w), float64(h)
	rx, ry := float64(xr), float64(yr)
	dx, dy := 2*rx, 2*ry
	for _, center := range []canvas.Point{
		{X: rx, Y: ry},
		{X: fw - rx, Y: ry},
		{X: rx, Y: fh - ry},
		{X: fw - rx, Y: fh - ry},
	} {
		b.FillEllipse(mask, center.X, center.Y, dx, dy, ink)
	}
	b.FillPolygon(mask, []canvas.Point{
		{X: rx, Y: 0}, {X: fw - rx, Y: 0},
		{X: fw, Y: ry}, {X: fw, Y: fh - ry},
		{X: fw - rx, Y: fh}, {X: rx, Y: fh},
		{X: 0, Y: fh - ry}, {X: 0, Y: ry},
	}, ink)
	return mask, nil
}

func copyCornerWithMask(b canvas.Backend, dst, src, mask canvas.Canvas, box image.Rectangle, alphaMax uint8) {
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			p := b.GetPixel(src, x, y)
			m := b.GetPixel(mask, x, y)
			a := MaskAlpha(m.R, m.G, m.B, alphaMax)
			p.A = uint8((uint32(p.A)*uint32(a) + uint32(alphaMax)/2) / uint32(alphaMax))
			b.SetPixel(dst, x, y, p)
		}
	}
}

func clampRadius(r, size int) int {
	switch {
	case r < 0:
		return 0
	case r > size/2:
		return size / 2
	default:
		return r
	}
}
