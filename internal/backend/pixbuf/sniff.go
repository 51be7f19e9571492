package pixbuf

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"

	// extra raster decoders for image.Decode
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// sniffLen is how much of a file is inspected for magic bytes and an <svg
// root element.
const sniffLen = 1024

// extTags maps filetype extensions to the format tags used throughout.
var extTags = map[string]string{
	"jpg": "JPEG",
	"tif": "TIFF",
}

// Sniff returns the upper-case format tag of an encoded image.
//
// Raster formats are identified from magic bytes. SVG has none, so a
// document whose leading bytes contain an <svg element is tagged SVG, and
// a gzip stream named *.svgz is tagged SVGZ. Unrecognised data is a
// canvas.ErrLoad failure.
func Sniff(path string, data []byte) (string, error) {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	if strings.EqualFold(filepath.Ext(path), ".svgz") && filetype.Is(head, "gz") {
		return "SVGZ", nil
	}
	if isSVG(head) {
		return "SVG", nil
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "", fmt.Errorf("%w: %s: unrecognised image format", canvas.ErrLoad, path)
	}
	if tag, ok := extTags[kind.Extension]; ok {
		return tag, nil
	}
	return strings.ToUpper(kind.Extension), nil
}

func isSVG(head []byte) bool {
	trimmed := bytes.TrimLeft(head, "\xef\xbb\xbf \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("<")) {
		return false
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}
