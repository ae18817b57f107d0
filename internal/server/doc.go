// Package server exposes RTF image rendering as an MCP (Model Context
// Protocol) tool server.
//
// The server speaks JSON-RPC 2.0 over stdio, one message per line: requests
// arrive on stdin and responses leave on stdout, so logging must go to
// stderr. It answers initialize, tools/list, tools/call and ping, and
// accepts the notifications/initialized notification silently.
//
// # Tools
//
//   - image_info: format, pixel size, resolution and size in points
//   - rtf_image_block: the markup of one picture block
//   - rtf_document: a complete document of pictures, returned or saved
//
// Layout arguments a call leaves out are taken from the image defaults of
// the configuration the server was created with.
//
// # Errors
//
// Tool failures are reported as JSON-RPC errors with code -32000 and the Go
// error text in data. Malformed tool parameters give -32602, unknown methods
// -32601, and lines that are not JSON -32700 with a null id.
package server
