// Package pixbuf is the pixel buffer shared by the basic and full backends.
//
// Both backends keep decoded images as *image.NRGBA with straight 8-bit alpha
// and differ only in which library transforms them and in the alpha unit they
// expose through canvas.Backend. This package holds what they have in common:
//
//   - the Canvas type wrapping an NRGBA buffer with its format tag and
//     resolution
//   - pixel access converting between 8-bit alpha and a backend alpha unit
//   - direct copies (golang.org/x/image/draw)
//   - antialiased ellipse and polygon fills (golang.org/x/image/vector)
//   - the per-pixel compositing operators no blend library provides
//   - the unsharp-mask combine step
//   - right-angle rotation and uncovered-area fill after a free rotation
//   - format sniffing from magic bytes (github.com/h2non/filetype)
//
// Canvases from this package are not safe for concurrent mutation.
package pixbuf
