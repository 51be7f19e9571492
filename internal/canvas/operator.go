package canvas

import (
	"fmt"
	"strings"
)

// Operator is a compositing operator.
//
// The numbering follows the ImageMagick composite operator table so values
// read from existing configurations keep their meaning. Only OpNormal (and
// its aliases) is interpreted by the core; every other operator is handed to
// Backend.Composite unchanged.
type Operator int

const (
	OpUndefined   Operator = 0
	OpNo          Operator = 1
	OpAdd         Operator = 2
	OpAtop        Operator = 3
	OpBlend       Operator = 4
	OpBumpmap     Operator = 5
	OpClear       Operator = 7
	OpColorBurn   Operator = 8
	OpColorDodge  Operator = 9
	OpColorize    Operator = 10
	OpCopyBlack   Operator = 11
	OpCopyBlue    Operator = 12
	OpCopy        Operator = 13
	OpCopyCyan    Operator = 14
	OpCopyGreen   Operator = 15
	OpCopyMagenta Operator = 16
	OpCopyOpacity Operator = 17
	OpCopyRed     Operator = 18
	OpCopyYellow  Operator = 19
	OpDarken      Operator = 20
	OpDstAtop     Operator = 21
	OpDst         Operator = 22
	OpDstIn       Operator = 23
	OpDstOut      Operator = 24
	OpDstOver     Operator = 25
	OpDifference  Operator = 26
	OpDisplace    Operator = 27
	OpDissolve    Operator = 28
	OpExclusion   Operator = 29
	OpHardLight   Operator = 30
	OpHue         Operator = 31
	OpIn          Operator = 32
	OpLighten     Operator = 33
	OpLuminize    Operator = 35
	OpMinus       Operator = 36
	OpModulate    Operator = 37
	OpMultiply    Operator = 38
	OpOut         Operator = 39
	OpOver        Operator = 40
	OpOverlay     Operator = 41
	OpPlus        Operator = 42
	OpReplace     Operator = 43
	OpSaturate    Operator = 44
	OpScreen      Operator = 45
	OpSoftLight   Operator = 46
	OpSrcAtop     Operator = 47
	OpSrc         Operator = 48
	OpSrcIn       Operator = 49
	OpSrcOut      Operator = 50
	OpSrcOver     Operator = 51
	OpSubtract    Operator = 52
	OpThreshold   Operator = 53
	OpXor         Operator = 54

	// OpNormal draws the source over the destination.
	OpNormal = OpOver

	// OpDefault is the operator used when none is given.
	OpDefault = OpOver
)

var operatorNames = map[Operator]string{
	OpUndefined:   "UNDEFINED",
	OpNo:          "NO",
	OpAdd:         "ADD",
	OpAtop:        "ATOP",
	OpBlend:       "BLEND",
	OpBumpmap:     "BUMPMAP",
	OpClear:       "CLEAR",
	OpColorBurn:   "COLORBURN",
	OpColorDodge:  "COLORDODGE",
	OpColorize:    "COLORIZE",
	OpCopyBlack:   "COPYBLACK",
	OpCopyBlue:    "COPYBLUE",
	OpCopy:        "COPY",
	OpCopyCyan:    "COPYCYAN",
	OpCopyGreen:   "COPYGREEN",
	OpCopyMagenta: "COPYMAGENTA",
	OpCopyOpacity: "COPYOPACITY",
	OpCopyRed:     "COPYRED",
	OpCopyYellow:  "COPYYELLOW",
	OpDarken:      "DARKEN",
	OpDstAtop:     "DSTATOP",
	OpDst:         "DST",
	OpDstIn:       "DSTIN",
	OpDstOut:      "DSTOUT",
	OpDstOver:     "DSTOVER",
	OpDifference:  "DIFFERENCE",
	OpDisplace:    "DISPLACE",
	OpDissolve:    "DISSOLVE",
	OpExclusion:   "EXCLUSION",
	OpHardLight:   "HARDLIGHT",
	OpHue:         "HUE",
	OpIn:          "IN",
	OpLighten:     "LIGHTEN",
	OpLuminize:    "LUMINIZE",
	OpMinus:       "MINUS",
	OpModulate:    "MODULATE",
	OpMultiply:    "MULTIPLY",
	OpOut:         "OUT",
	OpOver:        "OVER",
	OpOverlay:     "OVERLAY",
	OpPlus:        "PLUS",
	OpReplace:     "REPLACE",
	OpSaturate:    "SATURATE",
	OpScreen:      "SCREEN",
	OpSoftLight:   "SOFTLIGHT",
	OpSrcAtop:     "SRCATOP",
	OpSrc:         "SRC",
	OpSrcIn:       "SRCIN",
	OpSrcOut:      "SRCOUT",
	OpSrcOver:     "SRCOVER",
	OpSubtract:    "SUBTRACT",
	OpThreshold:   "THRESHOLD",
	OpXor:         "XOR",
}

// aliases accepted by ParseOperator in addition to the canonical names.
var operatorAliases = map[string]Operator{
	"NORMAL":  OpNormal,
	"DEFAULT": OpDefault,
	"":        OpDefault,
}

// String returns the canonical upper-case operator name.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// IsNormal reports whether op draws the source over the destination.
func (op Operator) IsNormal() bool {
	return op == OpOver || op == OpSrcOver
}

// ParseOperator resolves an operator name such as "multiply", "SRC_OVER" or
// "normal". Matching ignores case, '-' and '_'.
func ParseOperator(name string) (Operator, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if op, ok := operatorAliases[key]; ok {
		return op, nil
	}
	for op, n := range operatorNames {
		if n == key {
			return op, nil
		}
	}
	return OpUndefined, fmt.Errorf("%w: unknown composite operator %q", ErrInvalidArgument, name)
}
