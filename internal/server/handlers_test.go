package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/testutil"
)

// callTool runs a tools/call request and decodes the text content of a
// successful response into a map.
func callTool(t *testing.T, s *Server, name string, args interface{}) (map[string]interface{}, *MCPError) {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), &out); err != nil {
		t.Fatalf("tool result is not JSON: %v", err)
	}
	return out, nil
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer()
	imgPath := testutil.Solid(t, 100, 80, color.NRGBA{255, 0, 0, 255})

	out, rpcErr := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath})
	if rpcErr != nil {
		t.Fatalf("Unexpected error: %v", rpcErr)
	}

	if out["width"] != float64(100) || out["height"] != float64(80) {
		t.Errorf("size: got %vx%v, want 100x80", out["width"], out["height"])
	}
	if out["format"] != "PNG" {
		t.Errorf("format: got %v, want PNG", out["format"])
	}
	if out["vector"] != false {
		t.Errorf("vector: got %v, want false", out["vector"])
	}
	if out["backend"] != "full" {
		t.Errorf("backend: got %v, want full", out["backend"])
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := newTestServer()

	_, rpcErr := callTool(t, s, "image_load", map[string]interface{}{"path": "/nonexistent/image.png"})
	if rpcErr == nil {
		t.Fatal("Expected error for nonexistent file")
	}
	if rpcErr.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", rpcErr.Code)
	}
	if !strings.Contains(rpcErr.Data.(string), "failed to load") {
		t.Errorf("Error data: got %v", rpcErr.Data)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := newTestServer()

	_, rpcErr := callTool(t, s, "image_ocr_full", map[string]interface{}{})
	if rpcErr == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if !strings.Contains(rpcErr.Data.(string), "unknown tool") {
		t.Errorf("Error data: got %v", rpcErr.Data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`not json`),
	})
	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_ImageBackends(t *testing.T) {
	s := newTestServer()

	out, rpcErr := callTool(t, s, "image_backends", map[string]interface{}{})
	if rpcErr != nil {
		t.Fatalf("Unexpected error: %v", rpcErr)
	}
	if out["active"] != "full" {
		t.Errorf("active: got %v, want full", out["active"])
	}

	backends := out["backends"].([]interface{})
	if len(backends) != 2 {
		t.Fatalf("got %d backends, want 2", len(backends))
	}

	byName := map[string]map[string]interface{}{}
	for _, b := range backends {
		info := b.(map[string]interface{})
		byName[info["name"].(string)] = info
	}

	if byName["basic"]["alpha_max"] != float64(127) {
		t.Errorf("basic alpha_max: got %v", byName["basic"]["alpha_max"])
	}
	if byName["full"]["alpha_max"] != float64(255) {
		t.Errorf("full alpha_max: got %v", byName["full"]["alpha_max"])
	}
	if caps := byName["basic"]["capabilities"].([]interface{}); len(caps) != 0 {
		t.Errorf("basic capabilities: got %v, want none", caps)
	}
	if caps := byName["full"]["capabilities"].([]interface{}); len(caps) != 2 {
		t.Errorf("full capabilities: got %v, want overlay and vector", caps)
	}
	if byName["full"]["active"] != true || byName["basic"]["active"] != false {
		t.Error("only the full backend should be active")
	}
}

func TestHandleToolsCall_TransformAllSteps(t *testing.T) {
	s := newTestServer()
	src := testutil.Quadrants(t, 100, 80)
	bg := testutil.Solid(t, 10, 10, color.NRGBA{0, 0, 255, 255})
	overlay := testutil.Solid(t, 5, 5, color.NRGBA{0, 255, 0, 255})
	mask := testutil.Solid(t, 40, 40, color.Black)
	output := filepath.Join(t.TempDir(), "result.png")

	steps := []map[string]interface{}{
		{"op": "resize", "width": 80, "height": 60},
		{"op": "resize_by_width", "width": 60},
		{"op": "resize_by_height", "height": 40},
		{"op": "resize_by_pixel_count", "pixels": 4000},
		{"op": "contain", "width": 60, "height": 60},
		{"op": "cover", "width": 40, "height": 40, "orientation": "top-left"},
		{"op": "crop", "x": 0, "y": 0, "width": 30, "height": 30},
		{"op": "crop_percent", "x_percent": 0, "y_percent": 0, "width_percent": 100, "height_percent": 100},
		{"op": "frame", "width": 40, "height": 40},
		{"op": "background_color", "color": "#FFFFFF"},
		{"op": "background_image", "path": bg},
		{"op": "overlay", "path": overlay, "x": 2, "y": 2, "alpha": 50, "operator": "multiply"},
		{"op": "grayscale"},
		{"op": "sepia"},
		{"op": "unsharp_mask", "amount": 80, "radius": 0.5, "threshold": 3},
		{"op": "apply_mask", "path": mask},
		{"op": "round_corners", "radius_x": 4},
		{"op": "rotate", "angle": 90, "background": "transparent"},
	}
	if len(steps) != len(StepOps) {
		t.Fatalf("test covers %d ops, schema lists %d", len(steps), len(StepOps))
	}

	out, rpcErr := callTool(t, s, "image_transform", map[string]interface{}{
		"path":   src,
		"steps":  steps,
		"output": output,
	})
	if rpcErr != nil {
		t.Fatalf("Unexpected error: %v", rpcErr)
	}

	if out["width"] != float64(40) || out["height"] != float64(40) {
		t.Errorf("size: got %vx%v, want 40x40", out["width"], out["height"])
	}
	if out["steps"] != float64(len(steps)) {
		t.Errorf("steps: got %v, want %d", out["steps"], len(steps))
	}
	if out["output"] != output {
		t.Errorf("output: got %v, want %s", out["output"], output)
	}
	if _, ok := out["image_base64"]; ok {
		t.Error("image_base64 should be omitted when writing a file")
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 40 {
		t.Errorf("output size: got %dx%d, want 40x40", cfg.Width, cfg.Height)
	}
}

func TestHandleToolsCall_TransformBase64(t *testing.T) {
	s := newTestServer()
	src := testutil.Gradient(t, 40, 20)

	out, rpcErr := callTool(t, s, "image_transform", map[string]interface{}{
		"path":  src,
		"steps": []map[string]interface{}{{"op": "resize", "width": 10, "height": 5}},
	})
	if rpcErr != nil {
		t.Fatalf("Unexpected error: %v", rpcErr)
	}

	data, err := base64.StdEncoding.DecodeString(out["image_base64"].(string))
	if err != nil {
		t.Fatalf("image_base64 is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image_base64 is not a PNG: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 5) {
		t.Errorf("bounds: got %v, want 10x5", img.Bounds())
	}
}

func TestHandleToolsCall_TransformCanvas(t *testing.T) {
	s := newTestServer()
	output := filepath.Join(t.TempDir(), "canvas.jpg")

	_, rpcErr := callTool(t, s, "image_transform", map[string]interface{}{
		"canvas": map[string]interface{}{"width": 12, "height": 6, "background": "#FF0000"},
		"steps":  []map[string]interface{}{},
		"output": output,
	})
	if rpcErr != nil {
		t.Fatalf("Unexpected error: %v", rpcErr)
	}

	out, rpcErr := callTool(t, s, "image_load", map[string]interface{}{"path": output})
	if rpcErr != nil {
		t.Fatalf("Unexpected error: %v", rpcErr)
	}
	if out["format"] != "JPEG" {
		t.Errorf("format: got %v, want JPEG", out["format"])
	}
	if out["width"] != float64(12) {
		t.Errorf("width: got %v, want 12", out["width"])
	}
}

func TestHandleToolsCall_TransformErrors(t *testing.T) {
	src := testutil.Solid(t, 20, 20, color.White)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			"no source",
			map[string]interface{}{"steps": []interface{}{}},
			"either path or canvas",
		},
		{
			"bad orientation",
			map[string]interface{}{"path": src, "steps": []map[string]interface{}{
				{"op": "cover", "width": 5, "height": 5, "orientation": "sideways"},
			}},
			"step 1 (cover)",
		},
		{
			"unknown op",
			map[string]interface{}{"path": src, "steps": []map[string]interface{}{
				{"op": "grayscale"},
				{"op": "explode"},
			}},
			"step 2 (explode)",
		},
		{
			"bad operator",
			map[string]interface{}{"path": src, "steps": []map[string]interface{}{
				{"op": "overlay", "path": src, "operator": "smudge"},
			}},
			"unknown composite operator",
		},
		{
			"missing mask",
			map[string]interface{}{"path": src, "steps": []map[string]interface{}{
				{"op": "apply_mask", "path": "/nonexistent/mask.png"},
			}},
			"mask image",
		},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rpcErr := callTool(t, s, "image_transform", tt.args)
			if rpcErr == nil {
				t.Fatal("Expected error")
			}
			if rpcErr.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", rpcErr.Code)
			}
			if !strings.Contains(rpcErr.Data.(string), tt.want) {
				t.Errorf("Error data %q should contain %q", rpcErr.Data, tt.want)
			}
		})
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := newTestServer()

	for _, name := range []string{"image_load", "image_transform"} {
		t.Run(name, func(t *testing.T) {
			if _, err := s.executeTool(name, json.RawMessage(`{invalid`)); err == nil {
				t.Error("Expected error for invalid JSON")
			}
		})
	}
}
