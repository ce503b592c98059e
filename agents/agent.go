package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"
	logcontext "github.com/va6996/mcpworkshop/context"
	"github.com/va6996/mcpworkshop/log"
	"github.com/va6996/mcpworkshop/memory"
)

// NoResponse is returned when the model finishes without any text
const NoResponse = "No se pudo generar respuesta"

// ToolCaller is the part of an MCP session the agent needs
type ToolCaller interface {
	ListTools(ctx context.Context) ([]mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error)
}

// Connector opens the MCP session. It runs once, on the first Initialize.
type Connector func(ctx context.Context) (ToolCaller, error)

// ToolCall records one tool invocation made while answering
type ToolCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

// ChatResult is the answer to one user message
type ChatResult struct {
	Response  string     `json:"response"`
	ThreadID  string     `json:"thread_id"`
	ToolsUsed []ToolCall `json:"tools_used"`
}

type Options struct {
	// MaxTurns bounds the model/tool loop, zero keeps the genkit default
	MaxTurns int
	// Config is passed to the model as generation config
	Config any
}

// Agent answers questions with a model that calls the tools of one MCP server
type Agent struct {
	Profile Profile

	genkit  *genkit.Genkit
	model   ai.Model
	connect Connector
	memory  memory.Store
	opts    Options

	mu     sync.Mutex
	caller ToolCaller
	tools  []ai.ToolRef
}

// NewAgent creates an agent. Nothing is contacted until Initialize.
func NewAgent(gk *genkit.Genkit, model ai.Model, profile Profile, connect Connector, store memory.Store, opts Options) *Agent {
	return &Agent{
		Profile: profile,
		genkit:  gk,
		model:   model,
		connect: connect,
		memory:  store,
		opts:    opts,
	}
}

// Initialize connects to the MCP server and wraps its tools for the model.
// Later calls return immediately once it has succeeded.
func (a *Agent) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.caller != nil {
		return nil
	}

	caller, err := a.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to MCP server: %w", err)
	}

	list, err := caller.ListTools(ctx)
	if err != nil {
		closeCaller(ctx, caller)
		return fmt.Errorf("failed to load MCP tools: %w", err)
	}

	refs := make([]ai.ToolRef, 0, len(list))
	for _, tool := range list {
		wrapped, err := wrapTool(caller, tool)
		if err != nil {
			closeCaller(ctx, caller)
			return err
		}
		refs = append(refs, wrapped)
		log.Debugf(ctx, "Agent %s loaded tool %s", a.Profile.Name, tool.Name)
	}

	a.caller = caller
	a.tools = refs
	log.Infof(ctx, "Agent %s initialized with %d tools", a.Profile.Name, len(refs))
	return nil
}

// closeCaller releases a session that will not be kept
func closeCaller(ctx context.Context, caller ToolCaller) {
	closer, ok := caller.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Warnf(ctx, "Failed to close MCP session: %v", err)
	}
}

// Initialized reports whether Initialize has succeeded
func (a *Agent) Initialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.caller != nil
}

// ToolCount is the number of MCP tools available to the model
func (a *Agent) ToolCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tools)
}

func (a *Agent) toolRefs() []ai.ToolRef {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tools
}

// wrapTool exposes an MCP tool to genkit with the server's own input schema
func wrapTool(caller ToolCaller, tool mcp.Tool) (ai.Tool, error) {
	raw, err := json.Marshal(tool)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool %s: %w", tool.Name, err)
	}
	schema := map[string]any{"type": "object"}
	if s := gjson.GetBytes(raw, "inputSchema"); s.IsObject() {
		if err := json.Unmarshal([]byte(s.Raw), &schema); err != nil {
			return nil, fmt.Errorf("invalid input schema for tool %s: %w", tool.Name, err)
		}
	}

	name := tool.Name
	return ai.NewToolWithInputSchema(name, tool.Description, schema,
		func(tc *ai.ToolContext, input any) (string, error) {
			args, err := toArgs(input)
			if err != nil {
				return "", err
			}
			out, err := caller.CallTool(tc, name, args)
			if err != nil {
				// The model gets the failure as the tool output and can recover.
				log.Warnf(tc, "Tool %s failed: %v", name, err)
				return "Error: " + err.Error(), nil
			}
			return out, nil
		}), nil
}

func toArgs(input any) (map[string]interface{}, error) {
	switch v := input.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return v, nil
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("invalid tool input: %w", err)
	}
	args := map[string]interface{}{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid tool input: %w", err)
	}
	return args, nil
}

// Chat answers message within the conversation threadID. The exchange is
// appended to the thread once the model has answered.
func (a *Agent) Chat(ctx context.Context, message, threadID string) (*ChatResult, error) {
	if threadID == "" {
		threadID = logcontext.DefaultThreadID
	}
	ctx = logcontext.WithThreadID(logcontext.EnsureRequestID(ctx), threadID)

	if err := a.Initialize(ctx); err != nil {
		return nil, err
	}

	history, err := a.memory.Messages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread %s: %w", threadID, err)
	}

	msgs := make([]*ai.Message, 0, len(history)+1)
	for _, m := range history {
		if m.Role == memory.RoleAssistant {
			msgs = append(msgs, ai.NewModelTextMessage(m.Content))
		} else {
			msgs = append(msgs, ai.NewUserTextMessage(m.Content))
		}
	}
	msgs = append(msgs, ai.NewUserTextMessage(message))

	opts := []ai.GenerateOption{
		ai.WithModel(a.model),
		ai.WithSystem(a.Profile.SystemPrompt),
		ai.WithMessages(msgs...),
	}
	if tools := a.toolRefs(); len(tools) > 0 {
		opts = append(opts, ai.WithTools(tools...))
	}
	if a.opts.MaxTurns > 0 {
		opts = append(opts, ai.WithMaxTurns(a.opts.MaxTurns))
	}
	if a.opts.Config != nil {
		opts = append(opts, ai.WithConfig(a.opts.Config))
	}

	log.Infof(ctx, "Agent %s: %s", a.Profile.Name, message)
	resp, err := genkit.Generate(ctx, a.genkit, opts...)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		text = NoResponse
	}

	if err := a.memory.Append(ctx, threadID,
		memory.Message{Role: memory.RoleUser, Content: message},
		memory.Message{Role: memory.RoleAssistant, Content: text},
	); err != nil {
		return nil, fmt.Errorf("failed to save thread %s: %w", threadID, err)
	}

	used := toolsUsed(resp.History())
	log.Debugf(ctx, "Agent %s answered using %d tool calls", a.Profile.Name, len(used))
	return &ChatResult{Response: text, ThreadID: threadID, ToolsUsed: used}, nil
}

// toolsUsed collects the tool requests made after the last user message
func toolsUsed(history []*ai.Message) []ToolCall {
	start := 0
	for i, m := range history {
		if m.Role == ai.RoleUser {
			start = i + 1
		}
	}

	used := []ToolCall{}
	for _, m := range history[start:] {
		if m.Role != ai.RoleModel {
			continue
		}
		for _, part := range m.Content {
			if !part.IsToolRequest() {
				continue
			}
			args, err := toArgs(part.ToolRequest.Input)
			if err != nil {
				args = map[string]interface{}{}
			}
			used = append(used, ToolCall{Name: part.ToolRequest.Name, Args: args})
		}
	}
	return used
}

// History returns the messages of a thread, oldest first
func (a *Agent) History(ctx context.Context, threadID string) ([]memory.Message, error) {
	if threadID == "" {
		threadID = logcontext.DefaultThreadID
	}
	msgs, err := a.memory.Messages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread %s: %w", threadID, err)
	}
	if msgs == nil {
		msgs = []memory.Message{}
	}
	return msgs, nil
}
