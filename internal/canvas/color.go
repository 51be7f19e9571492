package canvas

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent is the color literal accepted wherever a background color
// parameter may be left empty.
const Transparent = "transparent"

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255. There is no alpha: transparency is
// expressed separately (a nil *RGBColor, or 0-100 percentage inputs).
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// NRGBA returns the color as an opaque color.NRGBA.
func (c RGBColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ParseColor parses a hex color string like "#FF8000" or "ff8000".
//
// Exactly six hex digits are required; the leading '#' is optional and
// surrounding whitespace is ignored. Errors wrap ErrInvalidArgument.
func ParseColor(hex string) (RGBColor, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGBColor{}, fmt.Errorf("%w: color %q must have 6 hex digits", ErrInvalidArgument, hex)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return RGBColor{}, fmt.Errorf("%w: color %q: %v", ErrInvalidArgument, hex, err)
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

// ParseFill parses a background color parameter.
//
// The literal "transparent" (any case) and the empty string yield nil, which
// every Backend method taking a fill treats as fully transparent.
func ParseFill(s string) (*RGBColor, error) {
	if s == "" || strings.EqualFold(strings.TrimSpace(s), Transparent) {
		return nil, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
