package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ironsheep/image-transform-mcp/internal/backend"
	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_transform").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_backends":
		return s.handleImageBackends()
	case "image_transform":
		return s.handleImageTransform(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func (s *Server) newImage() *transform.Image {
	return transform.New(s.backend,
		transform.WithLogger(s.logger),
		transform.WithReload(s.cfg.Reload))
}

// === image_load ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

// ImageInfo describes a loaded image.
type ImageInfo struct {
	Path    string `json:"path,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"format"`
	Vector  bool   `json:"vector"`
	Backend string `json:"backend"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", canvas.ErrInvalidArgument)
	}

	img := s.newImage()
	defer img.Close()
	if err := img.Load(a.Path); err != nil {
		return nil, err
	}
	return ImageInfo{
		Path:    a.Path,
		Width:   img.Width(),
		Height:  img.Height(),
		Format:  img.Format(),
		Vector:  img.IsVectorGraphic(),
		Backend: s.backend.Name(),
	}, nil
}

// === image_backends ===

// BackendInfo describes one backend.
type BackendInfo struct {
	Name         string   `json:"name"`
	Active       bool     `json:"active"`
	Available    bool     `json:"available"`
	Formats      []string `json:"formats"`
	AlphaMax     uint8    `json:"alpha_max"`
	Capabilities []string `json:"capabilities"`
}

func (s *Server) handleImageBackends() (interface{}, error) {
	var infos []BackendInfo
	for _, b := range backend.All() {
		info := BackendInfo{
			Name:         b.Name(),
			Active:       b.Name() == s.backend.Name(),
			Formats:      b.Formats(),
			AlphaMax:     b.AlphaMax(),
			Capabilities: []string{},
		}
		info.Available = len(info.Formats) > 0
		for _, c := range []canvas.Capability{canvas.CapOverlay, canvas.CapVector} {
			if b.Supports(c) {
				info.Capabilities = append(info.Capabilities, c.String())
			}
		}
		infos = append(infos, info)
	}
	return map[string]interface{}{
		"active":   s.backend.Name(),
		"backends": infos,
	}, nil
}

// === image_transform ===

type imageTransformArgs struct {
	Path   string `json:"path"`
	Canvas *struct {
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Background string `json:"background"`
	} `json:"canvas"`
	Steps   []step `json:"steps"`
	Output  string `json:"output"`
	Format  string `json:"format"`
	Quality int    `json:"quality"`
}

// TransformResult is returned by image_transform.
type TransformResult struct {
	ImageInfo
	Steps       int    `json:"steps"`
	Output      string `json:"output,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img := s.newImage()
	defer img.Close()

	switch {
	case a.Path != "":
		if err := img.Load(a.Path); err != nil {
			return nil, err
		}
	case a.Canvas != nil:
		if err := img.CreateEmpty(a.Canvas.Width, a.Canvas.Height, a.Canvas.Background); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: either path or canvas is required", canvas.ErrInvalidArgument)
	}

	for i, st := range a.Steps {
		if err := applyStep(img, st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}

	result := TransformResult{
		ImageInfo: ImageInfo{
			Path:    a.Path,
			Width:   img.Width(),
			Height:  img.Height(),
			Format:  img.Format(),
			Vector:  img.IsVectorGraphic(),
			Backend: s.backend.Name(),
		},
		Steps: len(a.Steps),
	}

	if a.Output != "" {
		format := canvas.NormalizeFormat(a.Format)
		if a.Format == "" {
			format = canvas.NormalizeFormat(filepath.Ext(a.Output))
		}
		quality := a.Quality
		if quality == 0 {
			quality = s.cfg.JPEGQuality
		}
		if err := img.Save(a.Output, format, quality); err != nil {
			return nil, err
		}
		result.Output = a.Output
		return result, nil
	}

	data, err := s.encodePNG(img)
	if err != nil {
		return nil, err
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	return result, nil
}

// encodePNG saves img to a scratch file and returns the bytes. Backends
// only write to paths.
func (s *Server) encodePNG(img *transform.Image) ([]byte, error) {
	path := filepath.Join(transform.TempDir(), "result-"+uuid.NewString()+".png")
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("failed to remove result file", "path", path, "error", err)
		}
	}()

	if err := img.Save(path, "png", 0); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result: %w", err)
	}
	return data, nil
}
