package transform

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"github.com/ironsheep/image-transform-mcp/internal/compositor"
)

// SetBackgroundColor flattens the image onto a solid background.
func (img *Image) SetBackgroundColor(hex string) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	c, err := canvas.ParseColor(hex)
	if err != nil {
		return err
	}
	dst, err := img.backend.CreateCanvas(img.width, img.height, &c)
	if err != nil {
		return fmt.Errorf("failed to create background: %w", err)
	}
	return img.flattenOnto(dst)
}

// SetBackgroundImage draws the image over the picture at path, stretched to
// the current size.
func (img *Image) SetBackgroundImage(path string) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	bg, err := img.loadAux("background", path)
	if err != nil {
		return err
	}
	defer img.backend.Destroy(bg)

	dst, err := img.backend.CreateCanvas(img.width, img.height, nil)
	if err != nil {
		return fmt.Errorf("failed to create background: %w", err)
	}
	if bg.Width() != img.width || bg.Height() != img.height {
		img.backend.ResampleCopy(dst, bg, bounds(bg), bounds(dst))
	} else {
		img.backend.DirectCopy(dst, bg, bounds(bg), image.Point{})
	}
	return img.flattenOnto(dst)
}

func (img *Image) flattenOnto(dst canvas.Canvas) error {
	if err := img.backend.Composite(dst, img.canvas, canvas.OpOver, 0, 0); err != nil {
		img.backend.Destroy(dst)
		return fmt.Errorf("failed to draw over background: %w", err)
	}
	return img.replace(dst)
}

// AddOverlay composites the image at path onto this one at (x, y).
//
// alpha is the overlay opacity in percent and is rounded to tenths before
// use. Backends that cannot composite overlays log a notice and leave the
// image unchanged, as do operators the backend does not implement.
func (img *Image) AddOverlay(path string, x, y, alpha int, op canvas.Operator) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	if !img.backend.Supports(canvas.CapOverlay) {
		img.logger.Info("overlay not supported, skipping",
			"backend", img.backend.Name(), "path", path)
		return nil
	}

	overlay, err := img.loadAux("overlay", path)
	if err != nil {
		return err
	}
	defer img.backend.Destroy(overlay)

	factor := math.Round(float64(min(max(alpha, 0), 100))/10) / 10
	if factor < 1 {
		faded, err := img.backend.Filter(overlay, canvas.AlphaMultiply{Factor: factor})
		if err != nil {
			return fmt.Errorf("failed to fade overlay: %w", err)
		}
		defer img.backend.Destroy(faded)
		overlay = faded
	}

	if err := img.backend.Composite(img.canvas, overlay, op, x, y); err != nil {
		if errors.Is(err, canvas.ErrCapabilityGap) {
			img.logger.Info("composite operator not supported, skipping",
				"backend", img.backend.Name(), "operator", op.String())
			return nil
		}
		return fmt.Errorf("failed to add overlay: %w", err)
	}
	return img.mutated()
}

// Grayscale desaturates the image.
func (img *Image) Grayscale() error {
	return img.filter(canvas.Grayscale{})
}

// Sepia tones the image; canvas.DefaultSepiaThreshold is a good start.
func (img *Image) Sepia(threshold float64) error {
	return img.filter(canvas.Sepia{Threshold: threshold})
}

// UnsharpMask sharpens the image. Amount is typically 50-200, radius
// 0.5-1 and threshold 0-5. It is slow on large images.
func (img *Image) UnsharpMask(amount, radius, threshold float64) error {
	return img.filter(canvas.Unsharp{Amount: amount, Radius: radius, Threshold: threshold})
}

func (img *Image) filter(f canvas.Filter) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	c, err := img.backend.Filter(img.canvas, f)
	if err != nil {
		return fmt.Errorf("failed to apply %s filter: %w", canvas.FilterName(f), err)
	}
	return img.replace(c)
}

// ApplyMask replaces the alpha channel with the gray levels of the image at
// path. White becomes transparent and black opaque.
func (img *Image) ApplyMask(path string) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	mask, err := img.loadAux("mask", path)
	if err != nil {
		return err
	}
	defer img.backend.Destroy(mask)

	c, err := compositor.ApplyMask(img.backend, img.canvas, mask)
	if err != nil {
		return err
	}
	return img.replace(c)
}

// RoundCorners makes the corners transparent along antialiased elliptic
// arcs with radii x and y.
func (img *Image) RoundCorners(x, y int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	c, err := compositor.RoundCorners(img.backend, img.canvas, x, y)
	if err != nil {
		return err
	}
	return img.replace(c)
}

// Rotate turns the image clockwise by angle degrees. The canvas grows to
// the rotated bounds; new area is filled with bg or left transparent.
func (img *Image) Rotate(angle float64, bg string) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	fill, err := canvas.ParseFill(bg)
	if err != nil {
		return err
	}
	c, err := img.backend.Rotate(img.canvas, angle, fill)
	if err != nil {
		return fmt.Errorf("failed to rotate: %w", err)
	}
	return img.replace(c)
}

// loadAux decodes a secondary image. Any failure is the caller's fault, so
// it wraps canvas.ErrInvalidArgument as well as the load error.
func (img *Image) loadAux(kind, path string) (canvas.Canvas, error) {
	c, err := img.backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s image %s: %w", canvas.ErrInvalidArgument, kind, path, err)
	}
	return c, nil
}
