package geometry

import "image"

// CropPercent converts a crop given in percent of the current size to pixels.
// Values are scaled linearly and truncated; no clamping happens here.
func CropPercent(curW, curH int, xPct, yPct, wPct, hPct float64) (x, y, w, h int) {
	x = int(float64(curW) * xPct / 100)
	y = int(float64(curH) * yPct / 100)
	w = int(float64(curW) * wPct / 100)
	h = int(float64(curH) * hPct / 100)
	return x, y, w, h
}

// ClampCrop clamps a crop request to a curW×curH canvas.
//
// The origin is clamped into [0, cur] and the size into [0, cur-origin], so
// the returned rectangle never extends outside the canvas. It may be empty.
func ClampCrop(curW, curH, x, y, w, h int) image.Rectangle {
	x = clamp(x, 0, curW)
	y = clamp(y, 0, curH)
	w = clamp(w, 0, curW-x)
	h = clamp(h, 0, curH-y)
	return image.Rect(x, y, x+w, y+h)
}

// FrameOffset returns the position that centers a curW×curH image inside a
// boxW×boxH frame. Odd remainders round toward the top-left.
func FrameOffset(boxW, boxH, curW, curH int) (x, y int) {
	return (boxW - curW) / 2, (boxH - curH) / 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
