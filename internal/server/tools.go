package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// StepOps lists the operations accepted in image_transform steps, in the
// order they are documented.
var StepOps = []string{
	"resize", "resize_by_width", "resize_by_height", "resize_by_pixel_count",
	"contain", "cover", "crop", "crop_percent", "frame",
	"background_color", "background_image", "overlay",
	"grayscale", "sepia", "unsharp_mask", "apply_mask",
	"round_corners", "rotate",
}

func intProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

func numberProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

func stringProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, whether it is a vector graphic and the backend that decoded it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_backends",
			Description: "List the image backends compiled into the server with their formats, alpha depth and capabilities, and report which one is active.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_transform",
			Description: "Load an image (or create an empty canvas), apply a list of transformation steps in order and either write the result to 'output' or return it as base64-encoded PNG. Positive rotation angles turn clockwise. Mask images make white transparent and black opaque.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the source image. Omit to start from 'canvas'."),
					"canvas": map[string]interface{}{
						"type":        "object",
						"description": "Empty canvas to start from when no path is given",
						"properties": map[string]interface{}{
							"width":      intProp("Canvas width in pixels"),
							"height":     intProp("Canvas height in pixels"),
							"background": stringProp("Hex color like #RRGGBB, or 'transparent' (default)"),
						},
						"required": []string{"width", "height"},
					},
					"steps": map[string]interface{}{
						"type":        "array",
						"description": "Operations applied in order",
						"items":       stepSchema(),
					},
					"output":  stringProp("Absolute path to write the result to. Omit to get base64 PNG back."),
					"format":  stringProp("Output format when writing a file: png (default), jpeg, gif, bmp or tiff"),
					"quality": intProp("JPEG quality 1-100 (defaults to the server setting)"),
				},
				"required": []string{"steps"},
			},
		},
	}
}

func stepSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"op": map[string]interface{}{
				"type":        "string",
				"enum":        StepOps,
				"description": "Operation name",
			},
			"width":          intProp("Target width (resize, resize_by_width, contain, cover, crop, frame)"),
			"height":         intProp("Target height (resize, resize_by_height, contain, cover, crop, frame)"),
			"pixels":         intProp("Target pixel count (resize_by_pixel_count)"),
			"x":              intProp("Left offset (crop, overlay)"),
			"y":              intProp("Top offset (crop, overlay)"),
			"x_percent":      numberProp("Left offset in percent (crop_percent)"),
			"y_percent":      numberProp("Top offset in percent (crop_percent)"),
			"width_percent":  numberProp("Width in percent (crop_percent)"),
			"height_percent": numberProp("Height in percent (crop_percent)"),
			"orientation": map[string]interface{}{
				"type": "string",
				"enum": []string{
					"top-left", "top-center", "top-right",
					"middle-left", "middle-center", "middle-right",
					"bottom-left", "bottom-center", "bottom-right",
				},
				"description": "Part of the image kept by cover (default middle-center)",
			},
			"color":      stringProp("Hex color (background_color)"),
			"path":       stringProp("Absolute path of the auxiliary image (background_image, overlay, apply_mask)"),
			"alpha":      intProp("Overlay opacity 0-100 (default 100)"),
			"operator":   stringProp("Composite operator for overlay, e.g. normal, multiply, screen (default normal)"),
			"threshold":  numberProp("Sepia strength (default 80) or unsharp threshold 0-255"),
			"amount":     numberProp("Unsharp amount, typically 50-200"),
			"radius":     numberProp("Unsharp radius, typically 0.5-1"),
			"radius_x":   intProp("Horizontal corner radius (round_corners)"),
			"radius_y":   intProp("Vertical corner radius (round_corners, defaults to radius_x)"),
			"angle":      numberProp("Rotation in degrees, clockwise"),
			"background": stringProp("Fill for area uncovered by rotate: hex color or 'transparent' (default)"),
		},
		"required": []string{"op"},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
