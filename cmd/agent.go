package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/va6996/mcpworkshop/agents"
	"github.com/va6996/mcpworkshop/bootstrap"
)

// profileURLs are the endpoints the tool servers listen on by default
var profileURLs = map[string]string{
	"math":      "http://localhost:8001/mcp",
	"store":     "http://localhost:8200/mcp",
	"insurance": "http://localhost:8200/mcp",
}

func mcpURLFor(profile, override string) string {
	if override != "" {
		return override
	}
	return profileURLs[profile]
}

// chatter is the part of the agent the CLI talks to
type chatter interface {
	Chat(ctx context.Context, message, threadID string) (*agents.ChatResult, error)
}

func newAgentCmd(c *cli) *cobra.Command {
	var url, thread string
	cmd := &cobra.Command{
		Use:   "agent <math|store|insurance> [question...]",
		Short: "Ask an agent the demo questions, or the given ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := bootstrap.SetupProfile(ctx, c.cfg, args[0], mcpURLFor(args[0], url))
			if err != nil {
				return err
			}
			if err := app.Agent.Initialize(ctx); err != nil {
				return err
			}

			questions := app.Agent.Profile.DemoQuestions
			if len(args) > 1 {
				questions = []string{strings.Join(args[1:], " ")}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rule)
			fmt.Fprintln(out, app.Agent.Profile.Title)
			fmt.Fprintln(out, rule)
			fmt.Fprintf(out, "✅ Agente inicializado con %d herramientas\n", app.Agent.ToolCount())
			return askAll(ctx, out, app.Agent, thread, questions, 80)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "MCP endpoint (defaults to the profile's server)")
	cmd.Flags().StringVar(&thread, "thread", "demo", "conversation thread")
	return cmd
}

func askAll(ctx context.Context, out io.Writer, agent chatter, thread string, questions []string, width int) error {
	for i, q := range questions {
		fmt.Fprintf(out, "\n%s %s\n\n", color.New(color.Bold).Sprintf("Pregunta %d:", i+1), q)
		res, err := agent.Chat(ctx, q, thread)
		if err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n", err)
			continue
		}
		for _, call := range res.ToolsUsed {
			fmt.Fprintln(out, color.New(color.FgYellow).Sprint("●")+color.New(color.Bold).Sprintf(" %s", call.Name))
		}
		fmt.Fprintln(out, renderMarkdown(res.Response, width))
	}
	return nil
}

func renderMarkdown(content string, width int) string {
	var margin uint = 0
	dark := styles.DarkStyleConfig
	dark.Document.Color = nil
	dark.Document.Margin = &margin
	dark.H1 = dark.H2
	dark.H1.Prefix = "# "
	dark.Code.Prefix = ""
	dark.Code.Suffix = ""
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(dark),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	markdown, err := renderer.Render(strings.TrimSpace(content))
	if err != nil {
		return content
	}
	return strings.TrimSpace(markdown)
}
