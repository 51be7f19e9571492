package transform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// Image is a stateful image handle bound to one backend.
//
// It owns exactly one backend canvas at a time plus any scratch files
// created for reload cycles. Every operation that produces a new canvas
// destroys the previous one and updates Width and Height. An Image is not
// safe for concurrent use; callers should defer Close right after New.
type Image struct {
	backend canvas.Backend
	logger  *slog.Logger
	reload  bool

	canvas        canvas.Canvas
	width, height int
	format        string

	// sourcePath is kept for vector sources only, so the first resize can
	// rasterize again at the target resolution.
	sourcePath    string
	vectorPending bool

	scratchFiles []string
}

// New returns an empty Image bound to b.
func New(b canvas.Backend, opts ...Option) *Image {
	img := &Image{backend: b, logger: slog.Default()}
	for _, opt := range opts {
		opt(img)
	}
	return img
}

// Backend returns the backend the image is bound to.
func (img *Image) Backend() canvas.Backend { return img.backend }

// Width returns the current width in pixels, or 0 before Load.
func (img *Image) Width() int { return img.width }

// Height returns the current height in pixels, or 0 before Load.
func (img *Image) Height() int { return img.height }

// Format returns the upper-case format tag of the loaded source.
func (img *Image) Format() string { return img.format }

// Loaded reports whether the image holds pixel data.
func (img *Image) Loaded() bool { return img.canvas != nil }

// IsVectorGraphic reports whether the source was a vector or document
// format. It is always false on backends without vector support.
func (img *Image) IsVectorGraphic() bool {
	return img.backend.Supports(canvas.CapVector) && canvas.IsVectorFormat(img.format)
}

// Load decodes path into the image, replacing any previous content.
// Failures wrap canvas.ErrLoad.
func (img *Image) Load(path string) error {
	c, err := img.backend.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	img.set(c)
	img.format = c.Format()
	img.sourcePath, img.vectorPending = "", false
	if img.IsVectorGraphic() {
		img.sourcePath, img.vectorPending = path, true
	}
	return nil
}

// CreateEmpty replaces the image with a w×h canvas filled with bg, which may
// be a hex color or "transparent".
func (img *Image) CreateEmpty(w, h int, bg string) error {
	fill, err := canvas.ParseFill(bg)
	if err != nil {
		return err
	}
	c, err := img.backend.CreateCanvas(w, h, fill)
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}
	img.set(c)
	img.format = c.Format()
	img.sourcePath, img.vectorPending = "", false
	return nil
}

// Save writes the image to path.
//
// An empty format means PNG. quality only applies to JPEG; values outside
// 1-100 mean full quality. An existing file at path is replaced.
func (img *Image) Save(path, format string, quality int) error {
	if err := img.ensureLoaded(); err != nil {
		return err
	}
	if format == "" {
		format = "png"
	}
	if quality <= 0 || quality > 100 {
		quality = 100
	}
	if err := img.backend.Save(img.canvas, path, format, quality); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// Close releases the canvas and removes scratch files. Removal failures are
// logged at debug level only. Close may be called more than once.
func (img *Image) Close() {
	if img.canvas != nil {
		img.backend.Destroy(img.canvas)
		img.canvas = nil
	}
	img.width, img.height = 0, 0
	for _, path := range img.scratchFiles {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			img.logger.Debug("failed to remove scratch file", "path", path, "error", err)
		}
	}
	img.scratchFiles = nil
}

func (img *Image) ensureLoaded() error {
	if !img.Loaded() {
		return canvas.ErrNotLoaded
	}
	return nil
}

// set installs c as the current canvas, destroying the previous one.
func (img *Image) set(c canvas.Canvas) {
	if img.canvas != nil && img.canvas != c {
		img.backend.Destroy(img.canvas)
	}
	img.canvas = c
	img.width, img.height = c.Width(), c.Height()
}

// replace installs the result of a mutating operation.
func (img *Image) replace(c canvas.Canvas) error {
	img.set(c)
	return img.mutated()
}

// mutated ends the vector-pending state and runs the reload cycle when
// enabled.
func (img *Image) mutated() error {
	img.vectorPending = false
	if !img.reload {
		return nil
	}

	path := filepath.Join(TempDir(), "image-"+uuid.NewString()+".png")
	img.scratchFiles = append(img.scratchFiles, path)
	if err := img.backend.Save(img.canvas, path, "png", 100); err != nil {
		return fmt.Errorf("failed to write scratch file: %w", err)
	}
	c, err := img.backend.Load(path)
	if err != nil {
		return fmt.Errorf("failed to reload scratch file: %w", err)
	}
	img.set(c)
	return nil
}
