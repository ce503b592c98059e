// Package prompts exposes reusable code-assistant prompt templates
package prompts

import (
	"embed"
	"text/template"

	"github.com/va6996/mcpworkshop/tools"
)

// ServerName is the name the prompts server announces on initialize
const ServerName = "Prompts Server"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("prompts").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"),
)

// Client groups the prompt templates
type Client struct {
	Prompts []*PromptTemplate
}

// NewClient initializes the plugin and registers its prompts
func NewClient(registry *tools.Registry) *Client {
	return &Client{
		Prompts: []*PromptTemplate{
			NewReviewPrompt(registry),
			NewTestsPrompt(registry),
			NewAPIDocsPrompt(registry),
			NewExplainPrompt(registry),
			NewRefactorPrompt(registry),
		},
	}
}
