package transform

import "log/slog"

// Option configures an Image.
type Option func(*Image)

// WithLogger sets the logger used for capability notices and cleanup
// diagnostics. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(img *Image) {
		if l != nil {
			img.logger = l
		}
	}
}

// WithReload makes every mutating operation persist the canvas to a scratch
// PNG under TempDir, release it and decode it again. It bounds how much
// derived backend state survives a long chain of operations at the cost of
// one encode and decode per step.
func WithReload(on bool) Option {
	return func(img *Image) {
		img.reload = on
	}
}
