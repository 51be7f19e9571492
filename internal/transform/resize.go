package transform

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"github.com/ironsheep/image-transform-mcp/internal/geometry"
)

// Resize scales the image to exactly w×h without keeping the aspect ratio.
//
// The first resize of a freshly loaded vector image renders the source
// again at the resolution that yields w×h instead of resampling pixels.
func (img *Image) Resize(w, h int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: resize to %dx%d", canvas.ErrInvalidArgument, w, h)
	}

	src := img.canvas
	if img.vectorPending {
		xRes, yRes := img.backend.Resolution(img.canvas)
		xRes = float64(w) * xRes / float64(img.width)
		yRes = float64(h) * yRes / float64(img.height)
		c, err := img.backend.LoadAtResolution(img.sourcePath, xRes, yRes)
		if err != nil {
			return fmt.Errorf("failed to render %s at %.2fx%.2f dpi: %w", img.sourcePath, xRes, yRes, err)
		}
		img.set(c)
		src = img.canvas
	}
	if src.Width() == w && src.Height() == h {
		return img.mutated()
	}

	dst, err := img.backend.CreateCanvas(w, h, nil)
	if err != nil {
		return fmt.Errorf("failed to resize: %w", err)
	}
	img.backend.ResampleCopy(dst, src, bounds(src), image.Rect(0, 0, w, h))
	return img.replace(dst)
}

// ResizeByWidth scales to width w, keeping the aspect ratio.
func (img *Image) ResizeByWidth(w int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	s := geometry.ResizeByWidth(w, img.width, img.height)
	return img.Resize(s.Width, s.Height)
}

// ResizeByHeight scales to height h, keeping the aspect ratio.
func (img *Image) ResizeByHeight(h int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	s := geometry.ResizeByHeight(h, img.width, img.height)
	return img.Resize(s.Width, s.Height)
}

// ResizeByPixelCount scales so the image covers about n pixels, keeping the
// aspect ratio.
func (img *Image) ResizeByPixelCount(n int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	s := geometry.ResizeByPixelCount(n, img.width, img.height)
	return img.Resize(s.Width, s.Height)
}

// Contain scales the image down to fit inside w×h. Raster images already
// inside the box are left alone; vector images are always rendered to fit.
func (img *Image) Contain(w, h int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: contain box %dx%d", canvas.ErrInvalidArgument, w, h)
	}
	d := geometry.Contain(img.width, img.height, w, h, img.IsVectorGraphic())
	if d == geometry.NoOp {
		return nil
	}
	s := d.Apply(img.width, img.height, w, h)
	return img.Resize(s.Width, s.Height)
}

// Cover scales the image to fill w×h and crops the overflow, keeping the
// part selected by o. An unknown orientation fails before anything changes.
func (img *Image) Cover(w, h int, o geometry.Orientation) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	if !o.Valid() {
		return fmt.Errorf("%w %d", geometry.ErrInvalidOrientation, int(o))
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: cover box %dx%d", canvas.ErrInvalidArgument, w, h)
	}

	s := geometry.Cover(img.width, img.height, w, h).Apply(img.width, img.height, w, h)
	if err := img.Resize(s.Width, s.Height); err != nil {
		return err
	}
	x, y, err := geometry.CoverOrigin(o, img.width, img.height, w, h)
	if err != nil {
		return err
	}
	return img.Crop(x, y, w, h)
}

// Crop keeps the w×h area at (x, y). The area is clamped to the image; an
// area with nothing left after clamping is an error.
func (img *Image) Crop(x, y, w, h int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	r := geometry.ClampCrop(img.width, img.height, x, y, w, h)
	if r.Empty() {
		return fmt.Errorf("%w: crop %dx%d at (%d,%d) is outside the %dx%d image",
			canvas.ErrInvalidArgument, w, h, x, y, img.width, img.height)
	}
	if r == bounds(img.canvas) {
		return img.mutated()
	}

	dst, err := img.backend.CreateCanvas(r.Dx(), r.Dy(), nil)
	if err != nil {
		return fmt.Errorf("failed to crop: %w", err)
	}
	img.backend.DirectCopy(dst, img.canvas, r, image.Point{})
	return img.replace(dst)
}

// CropPercent crops an area given in percent of the current size.
func (img *Image) CropPercent(xPct, yPct, wPct, hPct float64) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	x, y, w, h := geometry.CropPercent(img.width, img.height, xPct, yPct, wPct, hPct)
	return img.Crop(x, y, w, h)
}

// Frame contains the image in w×h and centers it on a transparent w×h
// canvas.
func (img *Image) Frame(w, h int) error {
	if err := img.Contain(w, h); err != nil {
		return err
	}
	dst, err := img.backend.CreateCanvas(w, h, nil)
	if err != nil {
		return fmt.Errorf("failed to frame: %w", err)
	}
	x, y := geometry.FrameOffset(w, h, img.width, img.height)
	img.backend.DirectCopy(dst, img.canvas, bounds(img.canvas), image.Pt(x, y))
	return img.replace(dst)
}

func bounds(c canvas.Canvas) image.Rectangle {
	return image.Rect(0, 0, c.Width(), c.Height())
}
