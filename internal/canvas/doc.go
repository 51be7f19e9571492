// Package canvas defines the raster backend capability set the transformation
// core is written against.
//
// A Backend owns the concrete pixel storage behind every Canvas it returns and
// exposes only primitive operations: create a canvas, read and write single
// pixels, copy and resample rectangles, composite, rotate, filter and fill
// simple shapes. Everything above that level (geometry, alpha masks, rounded
// corners, the image handle itself) lives in the core packages and talks to
// the backend exclusively through this interface.
//
// # Coordinate System
//
// All coordinates are 0-based with the origin at the top-left corner. X grows
// to the right, Y grows downward. Rectangles use image.Rectangle semantics:
// Min is inclusive, Max is exclusive.
//
// # Alpha Units
//
// Pixel alpha is expressed in the backend's own unit, from 0 (fully
// transparent) to Backend.AlphaMax() (fully opaque). The raster-only backend
// models a 7-bit alpha channel (AlphaMax 127), the full backend an 8-bit one
// (AlphaMax 255). Code that computes alpha values must scale to AlphaMax
// rather than assume 255.
//
// # Errors
//
// The package declares the error taxonomy shared by every layer:
//   - ErrBackendUnavailable: no usable backend at selection time
//   - ErrLoad: a source file is missing, unreadable or undecodable
//   - ErrInvalidArgument: a caller supplied a bad value or auxiliary file
//   - ErrCapabilityGap: the backend lacks the requested primitive
//   - ErrNotLoaded: an operation ran before an image was loaded
//
// Errors are wrapped with fmt.Errorf and matched with errors.Is.
package canvas
