package full

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/backend/pixbuf"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterizeSVG renders an SVG document so that one user unit maps to
// res/72 pixels on each axis.
func rasterizeSVG(data []byte, gzipped bool, xRes, yRes float64) (*image.NRGBA, error) {
	var r io.Reader = bytes.NewReader(data)
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open svgz stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, errors.New("svg has no usable viewBox or size")
	}

	w := scaledSize(icon.ViewBox.W, xRes)
	h := scaledSize(icon.ViewBox.H, yRes)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return imaging.Clone(dst), nil
}

func scaledSize(units, res float64) int {
	n := int(math.Round(units * res / pixbuf.DefaultResolution))
	if n < 1 {
		return 1
	}
	return n
}
