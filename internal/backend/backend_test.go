package backend

import (
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/backend/basic"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noFormats is a backend whose codecs are missing.
type noFormats struct {
	canvas.Backend
	name string
}

func (n noFormats) Name() string    { return n.name }
func (noFormats) Formats() []string { return nil }

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "full"},
		{"auto", "full"},
		{"AUTO", "full"},
		{"full", "full"},
		{"basic", "basic"},
		{" Basic ", "basic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Select(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Name())
		})
	}
}

func TestSelect_Unknown(t *testing.T) {
	_, err := Select("imagick")
	assert.ErrorIs(t, err, canvas.ErrInvalidArgument)
}

func TestChoose_FallsBack(t *testing.T) {
	b, err := choose("", []canvas.Backend{noFormats{name: "full"}, basic.New()})
	require.NoError(t, err)
	assert.Equal(t, "basic", b.Name())
}

func TestChoose_NoneAvailable(t *testing.T) {
	_, err := choose("auto", []canvas.Backend{noFormats{name: "full"}, noFormats{name: "basic"}})
	assert.ErrorIs(t, err, canvas.ErrBackendUnavailable)

	_, err = choose("full", []canvas.Backend{noFormats{name: "full"}})
	assert.ErrorIs(t, err, canvas.ErrBackendUnavailable)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"auto", "full", "basic"}, Names())
}
