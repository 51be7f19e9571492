// Package geometry holds the backend-independent math behind the resize and
// crop operations: aspect-preserving target sizes, contain/cover decisions,
// orientation-based crop origins and percentage crops.
//
// Every function is pure. Nothing here touches pixels, files or backends,
// so results can be checked with plain table tests.
//
// Sizes are in pixels. Aspect-preserving helpers round to the nearest pixel
// and never return a dimension smaller than 1.
package geometry
