package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/rtfimage/internal/config"
	"github.com/ironsheep/rtfimage/internal/imaging"
	"github.com/ironsheep/rtfimage/internal/rtf"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "rtf_image_block").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug() {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return s.resultResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "rtf_image_block":
		return s.handleImageBlock(args)
	case "rtf_document":
		return s.handleDocument(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON renders v as indented JSON. Tool results are plain structs,
// so marshalling does not fail in practice; an error yields "".
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === RTF Blocks ===

// imageBlockArgs describes one picture. Options left out fall back to the
// server's configured image defaults.
type imageBlockArgs struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
	config.BlockOptions
}

// ImageBlockResult is the result of the rtf_image_block tool.
type ImageBlockResult struct {
	RTF          string  `json:"rtf"`
	Format       string  `json:"format"`
	WidthPt      float64 `json:"width_pt"`
	HeightPt     float64 `json:"height_pt"`
	PayloadBytes int     `json:"payload_bytes"`
}

// buildImageBlock constructs a block from the file named in a. With an
// explicit format the file is decoded and re-encoded; without one its bytes
// are embedded as they are and the format is detected.
func (s *Server) buildImageBlock(a *imageBlockArgs) (*rtf.ImageBlock, error) {
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	var format rtf.ImageFormat
	if a.Format != "" {
		var err error
		if format, err = rtf.ParseImageFormat(a.Format); err != nil {
			return nil, err
		}
	}

	img, err := rtf.Open(a.Path, format)
	if err != nil {
		return nil, err
	}

	if err = s.cfg.Image.Apply(img); err != nil {
		return nil, err
	}
	if err = a.BlockOptions.Apply(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Server) handleImageBlock(args json.RawMessage) (interface{}, error) {
	var a imageBlockArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.buildImageBlock(&a)
	if err != nil {
		return nil, err
	}

	out, err := img.Render()
	if err != nil {
		return nil, err
	}

	return &ImageBlockResult{
		RTF:          out,
		Format:       img.Format().String(),
		WidthPt:      img.Width(),
		HeightPt:     img.Height(),
		PayloadBytes: len(img.Payload()),
	}, nil
}

// === RTF Documents ===

type documentArgs struct {
	Title  string           `json:"title,omitempty"`
	Font   string           `json:"font,omitempty"`
	Images []imageBlockArgs `json:"images"`
	Output string           `json:"output,omitempty"`
}

// DocumentResult is the result of the rtf_document tool. RTF is omitted when
// the document was written to OutputPath.
type DocumentResult struct {
	Blocks     int    `json:"blocks"`
	OutputPath string `json:"output_path,omitempty"`
	RTF        string `json:"rtf,omitempty"`
}

func (s *Server) handleDocument(args json.RawMessage) (interface{}, error) {
	var a documentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Images) == 0 {
		return nil, errors.New("at least one image is required")
	}

	doc := rtf.NewDocument()
	doc.SetFont(s.cfg.Document.Font)
	doc.SetFont(a.Font)

	if a.Title != "" {
		title := doc.AddParagraph(a.Title)
		title.SetAlignment(rtf.AlignCenter)
		title.DefaultCharFormat().Bold = true
	}

	for i := range a.Images {
		img, err := s.buildImageBlock(&a.Images[i])
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		doc.AddBlock(img)
	}

	result := &DocumentResult{Blocks: len(doc.Blocks())}
	if a.Output != "" {
		if err := doc.Save(a.Output); err != nil {
			return nil, err
		}
		result.OutputPath = a.Output
		return result, nil
	}

	out, err := doc.Render()
	if err != nil {
		return nil, err
	}
	result.RTF = out
	return result, nil
}
