package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// marginsSchema describes the optional per-side margins in points.
func marginsSchema() map[string]interface{} {
	side := func(name string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "number",
			"description": name + " margin in points",
		}
	}
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional margins in points; omitted sides emit nothing",
		"properties": map[string]interface{}{
			"top":    side("Top"),
			"bottom": side("Bottom"),
			"left":   side("Left"),
			"right":  side("Right"),
		},
	}
}

// imageBlockProperties is shared by rtf_image_block and the items of rtf_document.
func imageBlockProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a PNG, JPEG or GIF file",
		},
		"format": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"png", "jpeg", "gif"},
			"description": "Declared format. When given, the image is decoded and re-encoded and sized from its resolution; when omitted, the file bytes are embedded as-is and the format is detected.",
		},
		"align": map[string]interface{}{
			"type": "string",
			"enum": []string{"none", "left", "right", "center"},
		},
		"width": map[string]interface{}{
			"type":        "number",
			"description": "Target width in points. Rescales the height when keep_aspect_ratio is set and no height is given.",
		},
		"height": map[string]interface{}{
			"type":        "number",
			"description": "Target height in points. Rescales the width when keep_aspect_ratio is set and no width is given.",
		},
		"keep_aspect_ratio": map[string]interface{}{
			"type":    "boolean",
			"default": true,
		},
		"start_new_page": map[string]interface{}{
			"type":        "boolean",
			"description": "Emit a page break before the picture",
		},
		"start_new_paragraph": map[string]interface{}{
			"type":        "boolean",
			"default":     true,
			"description": "Emit a paragraph break (\\par) after the picture. Defaults to the server's image.start_new_paragraph setting, which is true unless the config file turns it off.",
		},
		"margins": marginsSchema(),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_info",
			Description: "Decode an image file and return its format, pixel size, resolution and physical size in points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "rtf_image_block",
			Description: "Render an image as an RTF picture block (\\pict group with hex payload) ready to paste into an RTF document. The block ends with \\par unless start_new_paragraph is false.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageBlockProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "rtf_document",
			Description: "Build a complete RTF document from one or more images, optionally with a title, and return it or save it to a file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Optional centred bold title paragraph",
					},
					"font": map[string]interface{}{
						"type":        "string",
						"description": "Default document font",
					},
					"images": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":       "object",
							"properties": imageBlockProperties(),
							"required":   []string{"path"},
						},
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the .rtf file to; the RTF text is returned when omitted",
					},
				},
				"required": []string{"images"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return s.resultResponse(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
