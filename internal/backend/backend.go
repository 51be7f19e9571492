// Package backend selects the raster backend an image is processed with.
package backend

import (
	"fmt"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/backend/basic"
	"github.com/ironsheep/image-transform-mcp/internal/backend/full"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

// Auto asks Select to pick the most capable available backend.
const Auto = "auto"

// All returns every compiled-in backend, most capable first.
func All() []canvas.Backend {
	return []canvas.Backend{full.New(), basic.New()}
}

// Names lists the accepted backend names, Auto included.
func Names() []string {
	names := []string{Auto}
	for _, b := range All() {
		names = append(names, b.Name())
	}
	return names
}

// Select returns the backend called name.
//
// An empty name or "auto" picks the first backend, in All order, that can
// decode at least one format. ErrBackendUnavailable is returned when none
// qualifies; unknown names are ErrInvalidArgument.
func Select(name string) (canvas.Backend, error) {
	return choose(name, All())
}

func choose(name string, candidates []canvas.Backend) (canvas.Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == Auto {
		for _, b := range candidates {
			if len(b.Formats()) > 0 {
				return b, nil
			}
		}
		return nil, canvas.ErrBackendUnavailable
	}

	for _, b := range candidates {
		if b.Name() == name {
			if len(b.Formats()) == 0 {
				return nil, fmt.Errorf("%w: %s decodes no formats", canvas.ErrBackendUnavailable, name)
			}
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown backend %q", canvas.ErrInvalidArgument, name)
}
