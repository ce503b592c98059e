// Package mcpclient connects to MCP tool servers over HTTP, stdio or in-process
package mcpclient

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/va6996/mcpworkshop/log"
)

const (
	TransportHTTP      = "http"
	TransportStdio     = "stdio"
	TransportInProcess = "inprocess"

	clientName    = "mcpworkshop"
	clientVersion = "1.0.0"
)

// ServerConfig describes how to reach one MCP server
type ServerConfig struct {
	Name      string
	Transport string
	// URL of the streamable HTTP endpoint, e.g. http://localhost:8200/mcp
	URL     string
	Command string
	Args    []string
	Env     []string
	// Server is used by the in-process transport
	Server *server.MCPServer
}

// Client is an initialized session with one MCP server
type Client struct {
	Name       string
	ServerInfo mcp.Implementation
	mcp        *client.Client
}

// Connect starts the transport and performs the initialize handshake
func Connect(ctx context.Context, cfg ServerConfig) (*Client, error) {
	var (
		c   *client.Client
		err error
	)
	switch cfg.Transport {
	case "", TransportHTTP:
		if cfg.URL == "" {
			return nil, errors.Errorf("server %s: url is required for http transport", cfg.Name)
		}
		c, err = client.NewStreamableHttpClient(cfg.URL)
	case TransportStdio:
		if cfg.Command == "" {
			return nil, errors.Errorf("server %s: command is required for stdio transport", cfg.Name)
		}
		c, err = client.NewStdioMCPClient(cfg.Command, cfg.Env, cfg.Args...)
	case TransportInProcess:
		if cfg.Server == nil {
			return nil, errors.Errorf("server %s: in-process transport needs a server", cfg.Name)
		}
		c, err = client.NewInProcessClient(cfg.Server)
	default:
		return nil, errors.Errorf("unsupported transport: %s", cfg.Transport)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create client for %s", cfg.Name)
	}

	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, errors.Wrapf(err, "failed to start transport for %s", cfg.Name)
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: clientVersion}
	res, err := c.Initialize(ctx, req)
	if err != nil {
		c.Close()
		return nil, errors.Wrapf(err, "failed to initialize session with %s", cfg.Name)
	}

	log.Infof(ctx, "Connected to MCP server %s (%s %s) over %s",
		cfg.Name, res.ServerInfo.Name, res.ServerInfo.Version, transportName(cfg.Transport))
	return &Client{Name: cfg.Name, ServerInfo: res.ServerInfo, mcp: c}, nil
}

func transportName(t string) string {
	if t == "" {
		return TransportHTTP
	}
	return t
}

func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	res, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tools")
	}
	return res.Tools, nil
}

// CallTool invokes a tool and joins its text content. A result flagged as
// an error is returned as an error carrying that text.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to call tool %s", name)
	}

	text := joinText(res.Content)
	if res.IsError {
		return "", errors.Newf("tool %s failed: %s", name, text)
	}
	return text, nil
}

func joinText(content []mcp.Content) string {
	parts := make([]string, 0, len(content))
	for _, item := range content {
		if tc, ok := mcp.AsTextContent(item); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func (c *Client) ListResources(ctx context.Context) ([]mcp.Resource, error) {
	res, err := c.mcp.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list resources")
	}
	return res.Resources, nil
}

// ReadResource returns the text contents of a resource
func (c *Client) ReadResource(ctx context.Context, uri string) (string, error) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	res, err := c.mcp.ReadResource(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read resource %s", uri)
	}

	parts := make([]string, 0, len(res.Contents))
	for _, item := range res.Contents {
		if tc, ok := mcp.AsTextResourceContents(item); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (c *Client) ListPrompts(ctx context.Context) ([]mcp.Prompt, error) {
	res, err := c.mcp.ListPrompts(ctx, mcp.ListPromptsRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list prompts")
	}
	return res.Prompts, nil
}

func (c *Client) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	req := mcp.GetPromptRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.mcp.GetPrompt(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get prompt %s", name)
	}
	return res, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.mcp.Ping(ctx)
}

func (c *Client) Close() error {
	return c.mcp.Close()
}
