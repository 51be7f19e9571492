package canvas

import "math"

// Filter is a color or convolution transform applied by Backend.Filter.
//
// The concrete types below are the complete set; backends type-switch on
// them and return ErrCapabilityGap for anything else.
type Filter interface {
	filterName() string
}

// Grayscale desaturates the canvas, keeping alpha.
type Grayscale struct{}

// Sepia tones the canvas. Threshold is the toning strength, 80 being a good
// starting point; it scales the red and green tint weights linearly.
type Sepia struct {
	Threshold float64
}

// Unsharp is a Photoshop style unsharp mask.
//
// Typical ranges: Amount 50-200 (0-500), Radius 0.5-1 (0-50),
// Threshold 0-5 (0-255). Cost is O(width × height × radius²) for the blur.
type Unsharp struct {
	Amount    float64
	Radius    float64
	Threshold float64
}

// AlphaMultiply scales every pixel's alpha by Factor (0-1).
type AlphaMultiply struct {
	Factor float64
}

func (Grayscale) filterName() string     { return "grayscale" }
func (Sepia) filterName() string         { return "sepia" }
func (Unsharp) filterName() string       { return "unsharp" }
func (AlphaMultiply) filterName() string { return "alpha-multiply" }

// FilterName returns a short name for diagnostics.
func FilterName(f Filter) string {
	if f == nil {
		return "none"
	}
	return f.filterName()
}

// DefaultSepiaThreshold is the toning strength used when none is given.
const DefaultSepiaThreshold = 80

// Sepia pipeline constants. Every backend implements sepia as
// grayscale, then a brightness shift, then a contrast reduction, then an
// additive warm tint scaled by Threshold/100.
const (
	SepiaBrightness = -10 // channel offset out of 255
	SepiaContrast   = -20 // contrast change in percent
	SepiaTintRed    = 120 // red tint at threshold 100
	SepiaTintGreen  = 60  // green tint at threshold 100
	SepiaTintBlue   = 0   // blue tint at threshold 100
)

// Tint returns the additive red, green and blue offsets for the threshold.
func (s Sepia) Tint() (r, g, b float64) {
	ratio := s.Threshold / 100
	return SepiaTintRed * ratio, SepiaTintGreen * ratio, SepiaTintBlue * ratio
}

// Normalize clamps the parameters to their documented ranges and converts
// them to the working values of the unsharp combine step: a gain factor,
// a blur radius in pixels and a threshold in 8-bit channel units.
func (u Unsharp) Normalize() (gain, radius, threshold float64) {
	amount := math.Min(math.Max(u.Amount, 0), 500)
	radius = math.Min(math.Max(u.Radius, 0), 50)
	threshold = math.Min(math.Max(u.Threshold, 0), 255)
	return amount * 0.016, radius, threshold
}
