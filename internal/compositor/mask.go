// Package compositor implements the pixel-level alpha algorithms that sit on
// top of the backend primitives: grayscale alpha masks and antialiased
// rounded corners.
//
// Both work through canvas.Backend only (GetPixel, SetPixel, copies and
// shape fills) so they behave the same on every backend. Alpha values are
// always expressed in the backend's own unit, 0 to Backend.AlphaMax().
package compositor

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// MaskAlpha maps a mask pixel to an alpha value.
//
// The whiter the mask pixel, the more transparent the result: pure white
// gives 0 and pure black gives alphaMax.
func MaskAlpha(r, g, b, alphaMax uint8) uint8 {
	white := (float64(r) + float64(g) + float64(b)) / 765
	return alphaMax - uint8(math.Round(float64(alphaMax)*white))
}

// ApplyMask returns a copy of base whose alpha channel is taken from the
// gray level of mask. A mask of a different size is first resampled to the
// size of base. base and mask are left untouched.
func ApplyMask(b canvas.Backend, base, mask canvas.Canvas) (canvas.Canvas, error) {
	w, h := base.Width(), base.Height()

	if mask.Width() != w || mask.Height() != h {
		scaled, err := b.CreateCanvas(w, h, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate mask: %w", err)
		}
		defer b.Destroy(scaled)
		b.ResampleCopy(scaled, mask, image.Rect(0, 0, mask.Width(), mask.Height()), image.Rect(0, 0, w, h))
		mask = scaled
	}

	out, err := b.CreateCanvas(w, h, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate masked canvas: %w", err)
	}
	alphaMax := b.AlphaMax()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := b.GetPixel(base, x, y)
			m := b.GetPixel(mask, x, y)
			p.A = MaskAlpha(m.R, m.G, m.B, alphaMax)
			b.SetPixel(out, x, y, p)
		}
	}
	return out, nil
}
