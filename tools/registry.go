package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	logcontext "github.com/va6996/mcpworkshop/context"
	"github.com/va6996/mcpworkshop/log"
)

// ToolExecutor is the function signature for executing a tool
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// ResourceReader produces the text body of a resource
type ResourceReader func(ctx context.Context) (string, error)

// PromptRenderer renders a prompt template with its string arguments
type PromptRenderer func(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error)

type resourceEntry struct {
	resource mcp.Resource
	reader   ResourceReader
}

type promptEntry struct {
	prompt   mcp.Prompt
	renderer PromptRenderer
}

// Registry manages the tools, resources and prompts a server exposes
type Registry struct {
	tools     []mcp.Tool
	executors map[string]ToolExecutor
	resources map[string]resourceEntry
	prompts   map[string]promptEntry
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make([]mcp.Tool, 0),
		executors: make(map[string]ToolExecutor),
		resources: make(map[string]resourceEntry),
		prompts:   make(map[string]promptEntry),
	}
}

// Register adds a tool to the registry with its executor
func (r *Registry) Register(tool mcp.Tool, executor ToolExecutor) {
	r.tools = append(r.tools, tool)
	r.executors[tool.Name] = executor
}

// RegisterResource adds a read-only resource
func (r *Registry) RegisterResource(resource mcp.Resource, reader ResourceReader) {
	r.resources[resource.URI] = resourceEntry{resource: resource, reader: reader}
}

// RegisterPrompt adds a prompt template
func (r *Registry) RegisterPrompt(prompt mcp.Prompt, renderer PromptRenderer) {
	r.prompts[prompt.Name] = promptEntry{prompt: prompt, renderer: renderer}
}

// GetTools returns all registered tools in registration order
func (r *Registry) GetTools() []mcp.Tool {
	return r.tools
}

// GetResources returns registered resources sorted by URI
func (r *Registry) GetResources() []mcp.Resource {
	out := make([]mcp.Resource, 0, len(r.resources))
	for _, e := range r.resources {
		out = append(out, e.resource)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

// GetPrompts returns registered prompts sorted by name
func (r *Registry) GetPrompts() []mcp.Prompt {
	out := make([]mcp.Prompt, 0, len(r.prompts))
	for _, e := range r.prompts {
		out = append(out, e.prompt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ExecuteTool runs a registered tool by name after checking its required arguments
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	for _, tool := range r.tools {
		if tool.Name != name {
			continue
		}
		for _, required := range tool.InputSchema.Required {
			if _, present := args[required]; !present {
				return nil, fmt.Errorf("missing required argument: %s", required)
			}
		}
	}
	return executor(ctx, args)
}

// ReadResource returns the text of the resource at uri
func (r *Registry) ReadResource(ctx context.Context, uri string) (string, error) {
	entry, ok := r.resources[uri]
	if !ok {
		return "", fmt.Errorf("resource not found: %s", uri)
	}
	return entry.reader(ctx)
}

// RenderPrompt renders a prompt by name after checking its required arguments
func (r *Registry) RenderPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	entry, ok := r.prompts[name]
	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", name)
	}
	for _, arg := range entry.prompt.Arguments {
		if _, present := args[arg.Name]; arg.Required && !present {
			return nil, fmt.Errorf("missing required argument: %s", arg.Name)
		}
	}
	return entry.renderer(ctx, args)
}

// NewServer builds an MCP server exposing everything in the registry
func (r *Registry) NewServer(name, version string) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithToolHandlerMiddleware(loggingMiddleware),
		server.WithRecovery(),
	)

	for _, tool := range r.tools {
		s.AddTool(tool, r.toolHandler(tool.Name))
	}

	for _, entry := range r.resources {
		resource := entry.resource
		s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			text, err := r.ReadResource(ctx, resource.URI)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: resource.MIMEType,
				Text:     text,
			}}, nil
		})
	}

	for _, entry := range r.prompts {
		promptName := entry.prompt.Name
		s.AddPrompt(entry.prompt, func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return r.RenderPrompt(logcontext.EnsureRequestID(ctx), promptName, req.Params.Arguments)
		})
	}

	return s
}

// toolHandler adapts an executor to the MCP call shape.
// Executor errors become tool error results so the caller sees the message.
func (r *Registry) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := r.ExecuteTool(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return Result(out)
	}
}

// Result encodes a tool output as text content. Strings pass through, everything else is JSON.
func Result(v interface{}) (*mcp.CallToolResult, error) {
	if s, ok := v.(string); ok {
		return mcp.NewToolResultText(s), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

func loggingMiddleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = logcontext.EnsureRequestID(ctx)
		start := time.Now()
		log.Infof(ctx, "Tool %s called with %v", req.Params.Name, req.GetArguments())

		res, err := next(ctx, req)
		switch {
		case err != nil:
			log.Errorf(ctx, "Tool %s failed after %s: %v", req.Params.Name, time.Since(start), err)
		case res != nil && res.IsError:
			log.Warnf(ctx, "Tool %s returned an error result after %s", req.Params.Name, time.Since(start))
		default:
			log.Debugf(ctx, "Tool %s completed in %s", req.Params.Name, time.Since(start))
		}
		return res, err
	}
}
