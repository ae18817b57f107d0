package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/rtfimage/internal/config"
	"github.com/ironsheep/rtfimage/internal/imaging"
)

// Version is reported in the initialize handshake.
var Version = "0.1.0"

const (
	protocolVersion = "2024-11-05"

	// maxRequestSize bounds one request line. rtf_document calls carrying
	// many image entries stay well below it.
	maxRequestSize = 1024 * 1024
)

// JSON-RPC error codes
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Server answers MCP requests by building RTF from image files.
type Server struct {
	cache *imaging.ImageCache
	cfg   *config.Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type methodHandler func(s *Server, req *MCPRequest) *MCPResponse

// methods maps each supported MCP method to its handler. A handler returning
// nil sends no response.
var methods = map[string]methodHandler{
	"initialize":                (*Server).handleInitialize,
	"notifications/initialized": func(*Server, *MCPRequest) *MCPResponse { return nil },
	"tools/list":                (*Server).handleToolsList,
	"tools/call":                (*Server).handleToolsCall,
	"ping":                      (*Server).handlePing,
}

// New creates a server using the default configuration.
func New() *Server {
	return NewWithConfig(config.DefaultConfig())
}

// NewWithConfig creates a server whose image blocks start from cfg's image
// defaults. A nil cfg means DefaultConfig.
func NewWithConfig(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		cache: imaging.NewImageCache(),
		cfg:   cfg,
	}
}

// Run serves requests from stdin and writes responses to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes one response
// per line to w until r is exhausted. Blank lines are skipped; a line that is
// not valid JSON gets a parse error response with a null id.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = s.errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(&req)
		}

		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if s.cfg.Debug() {
		log.Printf("request %v: %s", req.ID, req.Method)
	}

	handler, ok := methods[req.Method]
	if !ok {
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
	return handler(s, req)
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return s.resultResponse(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "rtfimage",
			"version": Version,
		},
	})
}

func (s *Server) handlePing(req *MCPRequest) *MCPResponse {
	return s.resultResponse(req.ID, map[string]interface{}{})
}

func (s *Server) resultResponse(id interface{}, result interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// errorResponse builds a JSON-RPC error. Empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}
