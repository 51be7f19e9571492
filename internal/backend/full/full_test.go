package full

import (
	"bytes"
	"compress/gzip"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"github.com/ironsheep/image-transform-mcp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10">
  <rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func TestBackend_Profile(t *testing.T) {
	b := New()
	assert.Equal(t, "full", b.Name())
	assert.Equal(t, uint8(255), b.AlphaMax())
	assert.Contains(t, b.Formats(), "SVG")
	assert.True(t, b.Supports(canvas.CapOverlay))
	assert.True(t, b.Supports(canvas.CapVector))
}

func TestBackend_LoadRaster(t *testing.T) {
	b := New()
	c, err := b.Load(testutil.Solid(t, 12, 7, color.NRGBA{1, 2, 3, 255}))
	require.NoError(t, err)
	assert.Equal(t, 12, c.Width())
	assert.Equal(t, 7, c.Height())
	assert.Equal(t, "PNG", c.Format())
	assert.Equal(t, canvas.RGBA{R: 1, G: 2, B: 3, A: 255}, b.GetPixel(c, 0, 0))

	_, err = b.Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, canvas.ErrLoad)
}

func TestBackend_LoadSVG(t *testing.T) {
	b := New()
	path := testutil.WriteFile(t, "square.svg", []byte(redSquare))

	c, err := b.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "SVG", c.Format())
	assert.Equal(t, 10, c.Width())
	assert.Equal(t, 10, c.Height())
	x, y := b.Resolution(c)
	assert.Equal(t, 72.0, x)
	assert.Equal(t, 72.0, y)

	px := b.GetPixel(c, 5, 5)
	assert.InDelta(t, 255, int(px.R), 1)
	assert.InDelta(t, 255, int(px.A), 1)

	hi, err := b.LoadAtResolution(path, 144, 216)
	require.NoError(t, err)
	assert.Equal(t, 20, hi.Width())
	assert.Equal(t, 30, hi.Height())
	x, y = b.Resolution(hi)
	assert.Equal(t, 144.0, x)
	assert.Equal(t, 216.0, y)
}

func TestBackend_LoadSVGZ(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(redSquare))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	b := New()
	c, err := b.Load(testutil.WriteFile(t, "square.svgz", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "SVGZ", c.Format())
	assert.Equal(t, 10, c.Width())
}

func TestBackend_SaveRoundTrip(t *testing.T) {
	b := New()
	c, err := b.CreateCanvas(5, 5, nil)
	require.NoError(t, err)
	b.SetPixel(c, 1, 1, canvas.RGBA{R: 9, G: 8, B: 7, A: 100})

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, b.Save(c, path, "", 0))

	got, err := b.Load(path)
	require.NoError(t, err)
	assert.Equal(t, canvas.RGBA{R: 9, G: 8, B: 7, A: 100}, b.GetPixel(got, 1, 1))

	for _, format := range []string{"jpeg", "gif", "bmp", "tiff"} {
		out := filepath.Join(t.TempDir(), "out."+format)
		require.NoError(t, b.Save(c, out, format, 80), format)
		_, err := b.Load(out)
		require.NoError(t, err, format)
	}
}

func TestBackend_Composite(t *testing.T) {
	white := &canvas.RGBColor{R: 255, G: 255, B: 255}
	red := &canvas.RGBColor{R: 255}

	t.Run("multiply", func(t *testing.T) {
		b := New()
		dst, _ := b.CreateCanvas(4, 4, white)
		src, _ := b.CreateCanvas(2, 2, red)
		require.NoError(t, b.Composite(dst, src, canvas.OpMultiply, 2, 2))

		px := b.GetPixel(dst, 3, 3)
		assert.InDelta(t, 255, int(px.R), 1)
		assert.InDelta(t, 0, int(px.G), 1)
		assert.Equal(t, canvas.RGBA{R: 255, G: 255, B: 255, A: 255}, b.GetPixel(dst, 1, 1))
	})

	t.Run("dst out", func(t *testing.T) {
		b := New()
		dst, _ := b.CreateCanvas(2, 2, white)
		src, _ := b.CreateCanvas(1, 1, red)
		require.NoError(t, b.Composite(dst, src, canvas.OpDstOut, 0, 0))
		assert.Equal(t, uint8(0), b.GetPixel(dst, 0, 0).A)
		assert.Equal(t, uint8(255), b.GetPixel(dst, 1, 1).A)
	})

	t.Run("no-op operators", func(t *testing.T) {
		b := New()
		dst, _ := b.CreateCanvas(2, 2, white)
		src, _ := b.CreateCanvas(2, 2, red)
		require.NoError(t, b.Composite(dst, src, canvas.OpNo, 0, 0))
		assert.Equal(t, uint8(255), b.GetPixel(dst, 0, 0).G)
	})

	t.Run("unsupported", func(t *testing.T) {
		b := New()
		dst, _ := b.CreateCanvas(2, 2, white)
		src, _ := b.CreateCanvas(2, 2, red)
		err := b.Composite(dst, src, canvas.OpDisplace, 0, 0)
		assert.ErrorIs(t, err, canvas.ErrCapabilityGap)
	})

	t.Run("outside destination", func(t *testing.T) {
		b := New()
		dst, _ := b.CreateCanvas(2, 2, white)
		src, _ := b.CreateCanvas(2, 2, red)
		require.NoError(t, b.Composite(dst, src, canvas.OpScreen, 10, 10))
	})
}

func TestBackend_Rotate(t *testing.T) {
	b := New()
	c, _ := b.CreateCanvas(40, 20, &canvas.RGBColor{R: 255})

	r, err := b.Rotate(c, -90, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Width())
	assert.Equal(t, 40, r.Height())

	r, err = b.Rotate(c, 45, &canvas.RGBColor{B: 255})
	require.NoError(t, err)
	assert.Greater(t, r.Width(), 40)
	assert.Equal(t, canvas.RGBA{B: 255, A: 255}, b.GetPixel(r, 0, 0))

	r, err = b.Rotate(c, 45, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), b.GetPixel(r, 0, 0).A)
}

func TestBackend_Filters(t *testing.T) {
	b := New()
	c, err := b.Load(testutil.Quadrants(t, 10, 10))
	require.NoError(t, err)

	g, err := b.Filter(c, canvas.Grayscale{})
	require.NoError(t, err)
	px := b.GetPixel(g, 0, 0)
	assert.Equal(t, px.R, px.G)
	assert.Equal(t, uint8(255), px.A)

	s, err := b.Filter(c, canvas.Sepia{Threshold: 80})
	require.NoError(t, err)
	px = b.GetPixel(s, 0, 0)
	assert.Greater(t, px.R, px.G)
	assert.Greater(t, px.G, px.B)

	u, err := b.Filter(c, canvas.Unsharp{Amount: 120, Radius: 1, Threshold: 0})
	require.NoError(t, err)
	assert.Equal(t, 10, u.Height())
}

func TestBackend_SepiaIgnoresAlpha(t *testing.T) {
	b := New()
	var want canvas.RGBA
	for i, a := range []uint8{255, 128, 40, 10} {
		c, err := b.Load(testutil.Solid(t, 2, 2, color.NRGBA{20, 20, 20, a}))
		require.NoError(t, err)
		s, err := b.Filter(c, canvas.Sepia{Threshold: 80})
		require.NoError(t, err)

		px := b.GetPixel(s, 1, 1)
		assert.Equal(t, a, px.A, "alpha %d", a)
		if i == 0 {
			want = px
			continue
		}
		assert.Equal(t, want.R, px.R, "alpha %d", a)
		assert.Equal(t, want.G, px.G, "alpha %d", a)
		assert.Equal(t, want.B, px.B, "alpha %d", a)
	}
	assert.Greater(t, want.R, want.G)
	assert.Greater(t, want.G, want.B)
}
