// Package server implements the MCP (Model Context Protocol) server for image
// transformation tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: decode a file and report width, height, format, whether it
//     is a vector graphic and the backend in use
//   - image_backends: list the backends with their formats, alpha depth and
//     capabilities
//   - image_transform: run a pipeline of steps on one image and write the
//     result to a file or return it as base64 PNG
//
// A pipeline step is an object with an "op" field naming the operation and
// the parameters that operation reads, for example:
//
//	{"op": "cover", "width": 400, "height": 300, "orientation": "top-center"}
//	{"op": "round_corners", "radius_x": 12}
//	{"op": "overlay", "path": "/img/logo.png", "x": 10, "y": 10, "alpha": 60}
//
// Each tool call opens its own image and closes it before returning, so no
// pixel data survives between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: the Go error string, including the failing step number
//
// Operations the active backend cannot perform (overlays on the basic
// backend) are skipped with a log notice rather than failing the call.
package server
