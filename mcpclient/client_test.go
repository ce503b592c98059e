package mcpclient

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mathplugin "github.com/va6996/mcpworkshop/plugins/math"
	"github.com/va6996/mcpworkshop/plugins/prompts"
	"github.com/va6996/mcpworkshop/plugins/resources"
	"github.com/va6996/mcpworkshop/tools"
)

func connectInProcess(t *testing.T) *Client {
	t.Helper()
	registry := tools.NewRegistry()
	mathplugin.NewClient(registry)
	resources.NewClient(registry, 8104)
	prompts.NewClient(registry)

	c, err := Connect(context.Background(), ServerConfig{
		Name:      "workshop",
		Transport: TransportInProcess,
		Server:    registry.NewServer(mathplugin.ServerName, "1.0.0"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestConnect_InProcess(t *testing.T) {
	ctx := context.Background()
	c := connectInProcess(t)
	assert.Equal(t, mathplugin.ServerName, c.ServerInfo.Name)
	require.NoError(t, c.Ping(ctx))

	t.Run("Tools", func(t *testing.T) {
		list, err := c.ListTools(ctx)
		require.NoError(t, err)
		var names []string
		for _, tool := range list {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{"add", "subtract", "multiply", "divide"}, names)

		out, err := c.CallTool(ctx, "add", map[string]interface{}{"a": 10, "b": 25})
		require.NoError(t, err)
		assert.Equal(t, "35", out)

		_, err = c.CallTool(ctx, "divide", map[string]interface{}{"a": 1, "b": 0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), mathplugin.ErrDivisionByZero.Error())
	})

	t.Run("Resources", func(t *testing.T) {
		list, err := c.ListResources(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 5)

		text, err := c.ReadResource(ctx, "docs://readme")
		require.NoError(t, err)
		assert.NotEmpty(t, text)
	})

	t.Run("Prompts", func(t *testing.T) {
		list, err := c.ListPrompts(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 5)

		res, err := c.GetPrompt(ctx, "explicar_codigo", map[string]string{"codigo": "x := 1"})
		require.NoError(t, err)
		require.NotEmpty(t, res.Messages)
		assert.Contains(t, mcp.GetTextFromContent(res.Messages[0].Content), "x := 1")
	})
}

func TestConnect_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	_, err := Connect(ctx, ServerConfig{Name: "http", Transport: TransportHTTP})
	assert.ErrorContains(t, err, "url is required")

	_, err = Connect(ctx, ServerConfig{Name: "stdio", Transport: TransportStdio})
	assert.ErrorContains(t, err, "command is required")

	_, err = Connect(ctx, ServerConfig{Name: "local", Transport: TransportInProcess})
	assert.ErrorContains(t, err, "needs a server")

	_, err = Connect(ctx, ServerConfig{Name: "ws", Transport: "websocket"})
	assert.EqualError(t, err, "unsupported transport: websocket")
}

func TestJoinText(t *testing.T) {
	content := []mcp.Content{mcp.NewTextContent("uno"), mcp.NewImageContent("aGk=", "image/png"), mcp.NewTextContent("dos")}
	assert.Equal(t, "uno\ndos", joinText(content))
}
