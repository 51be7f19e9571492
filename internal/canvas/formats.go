package canvas

import "strings"

// vectorFormats are the format tags treated as vector or document sources.
var vectorFormats = map[string]bool{
	"EPT": true, "EPDF": true, "EPI": true, "EPS": true, "EPS2": true,
	"EPS3": true, "EPSF": true, "EPSI": true, "PDF": true, "PFA": true,
	"PFB": true, "PFM": true, "PS": true, "PS2": true, "PS3": true,
	"PSB": true, "SVG": true, "SVGZ": true,
}

// IsVectorFormat reports whether the format tag names a vector format.
func IsVectorFormat(format string) bool {
	return vectorFormats[strings.ToUpper(format)]
}

// NormalizeFormat maps a user supplied output format to a canonical
// lower-case name. Unknown and empty formats become "png".
func NormalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimPrefix(format, ".")); f {
	case "jpg", "jpeg":
		return "jpeg"
	case "png", "gif", "bmp":
		return f
	case "tif", "tiff":
		return "tiff"
	default:
		return "png"
	}
}
