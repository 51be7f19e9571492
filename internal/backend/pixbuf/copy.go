package pixbuf

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// DirectCopy copies srcRect of src into dst at dstOffset, pixel for pixel.
// Parts falling outside either canvas are skipped.
func DirectCopy(dst, src *Canvas, srcRect image.Rectangle, dstOffset image.Point) {
	clipped := srcRect.Intersect(src.Img.Rect)
	if clipped.Empty() {
		return
	}
	dstOffset = dstOffset.Add(clipped.Min.Sub(srcRect.Min))
	xdraw.Copy(dst.Img, dstOffset, src.Img, clipped, xdraw.Src, nil)
}

// Over draws src onto dst with its top-left corner at (x, y) using
// source-over blending.
func Over(dst, src *Canvas, x, y int) {
	r := src.Img.Rect.Add(image.Pt(x, y))
	xdraw.Draw(dst.Img, r, src.Img, image.Point{}, xdraw.Over)
}
