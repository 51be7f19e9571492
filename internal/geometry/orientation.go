package geometry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// ErrInvalidOrientation is returned for orientation values outside the
// nine known positions. It wraps canvas.ErrInvalidArgument.
var ErrInvalidOrientation = fmt.Errorf("%w: unknown orientation", canvas.ErrInvalidArgument)

// Orientation selects which part of an overflowing image Cover keeps.
type Orientation int

// The numbering matches the historical integer constants (1-9).
const (
	TopLeft Orientation = iota + 1
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

var orientationNames = map[Orientation]string{
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	MiddleLeft:   "middle-left",
	MiddleCenter: "middle-center",
	MiddleRight:  "middle-right",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	BottomRight:  "bottom-right",
}

// String returns the kebab-case orientation name.
func (o Orientation) String() string {
	if name, ok := orientationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Valid reports whether o is one of the nine known positions.
func (o Orientation) Valid() bool {
	_, ok := orientationNames[o]
	return ok
}

// ParseOrientation resolves names like "top-left", "MIDDLE_CENTER",
// "bottom center" or the shorthand "center". An empty string yields
// MiddleCenter, the default Cover orientation.
func ParseOrientation(s string) (Orientation, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "", "center", "centre", "middle":
		return MiddleCenter, nil
	}
	for o, name := range orientationNames {
		if name == key {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidOrientation, s)
}

// CoverOrigin returns the crop origin that keeps the part of a W×H image
// selected by o when cutting it down to boxW×boxH.
//
// Centered axes split the overflow in half (rounding down); edge-aligned
// axes start at 0 or at the full overflow. An unknown orientation is a hard
// error: no default origin is assumed.
func CoverOrigin(o Orientation, w, h, boxW, boxH int) (x, y int, err error) {
	dx, dy := w-boxW, h-boxH
	switch o {
	case TopLeft:
		return 0, 0, nil
	case TopCenter:
		return dx / 2, 0, nil
	case TopRight:
		return dx, 0, nil
	case MiddleLeft:
		return 0, dy / 2, nil
	case MiddleCenter:
		return dx / 2, dy / 2, nil
	case MiddleRight:
		return dx, dy / 2, nil
	case BottomLeft:
		return 0, dy, nil
	case BottomCenter:
		return dx / 2, dy, nil
	case BottomRight:
		return dx, dy, nil
	default:
		return 0, 0, fmt.Errorf("%w %d: crop origin is undefined", ErrInvalidOrientation, int(o))
	}
}

// IsInvalidOrientation reports whether err came from an unknown orientation.
func IsInvalidOrientation(err error) bool {
	return errors.Is(err, ErrInvalidOrientation)
}
