// Package text provides text analysis and transformation tools
package text

import (
	"github.com/va6996/mcpworkshop/tools"
)

// ServerName is the name the text server announces on initialize
const ServerName = "Text Processing Server"

// Client groups the text processing tools
type Client struct {
	Analyze   *AnalyzeTool
	Transform *TransformTool
	Search    *SearchTool
	Clean     *CleanTool
	Unique    *UniqueWordsTool
}

// NewClient initializes the plugin and registers its tools
func NewClient(registry *tools.Registry) *Client {
	return &Client{
		Analyze:   NewAnalyzeTool(registry),
		Transform: NewTransformTool(registry),
		Search:    NewSearchTool(registry),
		Clean:     NewCleanTool(registry),
		Unique:    NewUniqueWordsTool(registry),
	}
}
