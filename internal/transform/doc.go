// Package transform provides Image, a stateful handle that chains geometry
// and color operations over a canvas.Backend.
//
// A typical pipeline loads a file, applies a few operations and saves the
// result:
//
//	img := transform.New(b, transform.WithLogger(logger))
//	defer img.Close()
//
//	if err := img.Load("photo.jpg"); err != nil {
//		return err
//	}
//	if err := img.Cover(400, 300, geometry.MiddleCenter); err != nil {
//		return err
//	}
//	return img.Save("thumb.png", "png", 0)
//
// Every mutating operation replaces the backing canvas and refreshes Width
// and Height. Vector sources stay pending until the first mutation so that
// the first Resize renders them again at the target resolution instead of
// scaling pixels.
//
// Operations a backend cannot perform (overlays on the basic backend,
// unknown composite operators) are logged at info level and skipped rather
// than returned as errors.
package transform
