package geometry

import "math"

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Decision is the outcome of a contain or cover computation.
type Decision int

const (
	// NoOp leaves the image as it is.
	NoOp Decision = iota
	// ByWidth resizes to the box width, keeping the aspect ratio.
	ByWidth
	// ByHeight resizes to the box height, keeping the aspect ratio.
	ByHeight
)

// String returns the decision name used in logs.
func (d Decision) String() string {
	switch d {
	case NoOp:
		return "no-op"
	case ByWidth:
		return "by-width"
	case ByHeight:
		return "by-height"
	default:
		return "unknown"
	}
}

// ResizeByWidth returns the size for scaling (curW, curH) to width w,
// keeping the aspect ratio. Both dimensions are at least 1.
func ResizeByWidth(w, curW, curH int) Size {
	h := math.Round(float64(w) / float64(curW) * float64(curH))
	return Size{Width: atLeastOne(float64(w)), Height: atLeastOne(h)}
}

// ResizeByHeight returns the size for scaling (curW, curH) to height h,
// keeping the aspect ratio. Both dimensions are at least 1.
func ResizeByHeight(h, curW, curH int) Size {
	w := math.Round(float64(h) / float64(curH) * float64(curW))
	return Size{Width: atLeastOne(w), Height: atLeastOne(float64(h))}
}

// ResizeByPixelCount returns the aspect-preserving size whose area is as
// close as possible to target pixels.
//
// Scaling by total area rather than by one edge makes images of very
// different proportions (logotypes in a list, say) occupy a comparable
// visual weight: the scale factor is sqrt(target) / sqrt(curW*curH).
func ResizeByPixelCount(target, curW, curH int) Size {
	scale := math.Sqrt(float64(target)) / math.Sqrt(float64(curW)*float64(curH))
	return Size{
		Width:  atLeastOne(math.Round(float64(curW) * scale)),
		Height: atLeastOne(math.Round(float64(curH) * scale)),
	}
}

// Contain decides how to fit (curW, curH) into a boxW×boxH box without
// cropping.
//
// A raster image already inside the box is never upscaled. Vector images
// are always resized because their canvas only exists at a nominal
// resolution. Otherwise the axis with the larger overflow ratio controls.
func Contain(curW, curH, boxW, boxH int, isVector bool) Decision {
	x := float64(curW) / float64(boxW)
	y := float64(curH) / float64(boxH)
	switch {
	case x <= 1 && y <= 1 && !isVector:
		return NoOp
	case x > y:
		return ByWidth
	default:
		return ByHeight
	}
}

// Cover decides which axis to resize so that (curW, curH) fills a
// boxW×boxH box, the other axis overflowing and being cropped afterwards.
// Equal aspect ratios resize by height.
func Cover(curW, curH, boxW, boxH int) Decision {
	ratio := float64(curW) / float64(curH)
	if float64(boxW)/float64(boxH) > ratio {
		return ByWidth
	}
	return ByHeight
}

// Apply computes the target size for a decision against a box.
// NoOp returns the current size.
func (d Decision) Apply(curW, curH, boxW, boxH int) Size {
	switch d {
	case ByWidth:
		return ResizeByWidth(boxW, curW, curH)
	case ByHeight:
		return ResizeByHeight(boxH, curW, curH)
	default:
		return Size{Width: curW, Height: curH}
	}
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
