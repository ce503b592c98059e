package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpworkshop/tools"
)

type echoInput struct {
	Text  string `json:"text"`
	Times int    `json:"times"`
}

func newEchoRegistry() *tools.Registry {
	reg := tools.NewRegistry()
	reg.Register(
		mcp.NewTool("echo",
			mcp.WithDescription("Repite un texto"),
			mcp.WithString("text", mcp.Required()),
			mcp.WithNumber("times"),
		),
		tools.Executor(func() *echoInput { return &echoInput{Times: 1} },
			func(ctx context.Context, in *echoInput) ([]string, error) {
				if in.Times < 0 {
					return nil, errors.New("times debe ser positivo")
				}
				out := make([]string, 0, in.Times)
				for i := 0; i < in.Times; i++ {
					out = append(out, in.Text)
				}
				return out, nil
			}),
	)
	return reg
}

func TestNewRegistry(t *testing.T) {
	reg := tools.NewRegistry()
	assert.NotNil(t, reg)
	assert.Empty(t, reg.GetTools())
	assert.Empty(t, reg.GetResources())
	assert.Empty(t, reg.GetPrompts())
}

func TestRegistry_ExecuteTool(t *testing.T) {
	ctx := context.Background()
	reg := newEchoRegistry()

	registered := reg.GetTools()
	require.Len(t, registered, 1)
	assert.Equal(t, "echo", registered[0].Name)

	t.Run("AppliesDefaults", func(t *testing.T) {
		out, err := reg.ExecuteTool(ctx, "echo", map[string]interface{}{"text": "hola"})
		require.NoError(t, err)
		assert.Equal(t, []string{"hola"}, out)
	})

	t.Run("OverridesDefaults", func(t *testing.T) {
		out, err := reg.ExecuteTool(ctx, "echo", map[string]interface{}{"text": "a", "times": 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "a", "a"}, out)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		_, err := reg.ExecuteTool(ctx, "echo", nil)
		assert.EqualError(t, err, "missing required argument: text")
	})

	t.Run("WrongType", func(t *testing.T) {
		_, err := reg.ExecuteTool(ctx, "echo", map[string]interface{}{"text": 12})
		assert.ErrorContains(t, err, "invalid arguments")
	})

	t.Run("NumericString", func(t *testing.T) {
		out, err := reg.ExecuteTool(ctx, "echo", map[string]interface{}{"text": "b", "times": "2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "b"}, out)

		_, err = reg.ExecuteTool(ctx, "echo", map[string]interface{}{"text": "b", "times": "dos"})
		assert.EqualError(t, err, "invalid arguments: argument times must be an integer")

		_, err = reg.ExecuteTool(ctx, "echo", map[string]interface{}{"text": "b", "times": "1.5"})
		assert.ErrorContains(t, err, "invalid arguments")
	})

	t.Run("UnknownTool", func(t *testing.T) {
		_, err := reg.ExecuteTool(ctx, "nope", nil)
		assert.EqualError(t, err, "tool not found: nope")
	})
}

func TestRegistry_ResourcesAndPrompts(t *testing.T) {
	ctx := context.Background()
	reg := tools.NewRegistry()

	reg.RegisterResource(mcp.NewResource("b://two", "two"), func(ctx context.Context) (string, error) { return "2", nil })
	reg.RegisterResource(mcp.NewResource("a://one", "one"), func(ctx context.Context) (string, error) { return "1", nil })
	reg.RegisterPrompt(
		mcp.NewPrompt("saludo", mcp.WithArgument("nombre", mcp.RequiredArgument())),
		func(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
			return mcp.NewGetPromptResult("saludo", []mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent("Hola "+args["nombre"])),
			}), nil
		},
	)

	resources := reg.GetResources()
	require.Len(t, resources, 2)
	assert.Equal(t, "a://one", resources[0].URI)

	text, err := reg.ReadResource(ctx, "b://two")
	require.NoError(t, err)
	assert.Equal(t, "2", text)

	_, err = reg.ReadResource(ctx, "c://three")
	assert.EqualError(t, err, "resource not found: c://three")

	res, err := reg.RenderPrompt(ctx, "saludo", map[string]string{"nombre": "Ana"})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "Hola Ana", mcp.GetTextFromContent(res.Messages[0].Content))

	_, err = reg.RenderPrompt(ctx, "saludo", nil)
	assert.EqualError(t, err, "missing required argument: nombre")

	t.Run("EmptyRequiredArgument", func(t *testing.T) {
		res, err := reg.RenderPrompt(ctx, "saludo", map[string]string{"nombre": ""})
		require.NoError(t, err)
		assert.Equal(t, "Hola ", mcp.GetTextFromContent(res.Messages[0].Content))
	})
}

func TestBind(t *testing.T) {
	type filters struct {
		ID       int     `json:"id"`
		MinPrice float64 `json:"precio_min"`
		Active   bool    `json:"activo"`
		Name     string  `json:"nombre"`
		Limit    uint    `json:"limite,omitempty"`
	}

	t.Run("AcceptsStringForms", func(t *testing.T) {
		in := &filters{Limit: 10}
		err := tools.Bind(map[string]interface{}{
			"id": "7", "precio_min": " 49.90 ", "activo": "true", "nombre": "42",
		}, in)
		require.NoError(t, err)
		assert.Equal(t, 7, in.ID)
		assert.InDelta(t, 49.90, in.MinPrice, 1e-9)
		assert.True(t, in.Active)
		assert.Equal(t, "42", in.Name)
		assert.Equal(t, uint(10), in.Limit)
	})

	t.Run("KeepsNativeTypes", func(t *testing.T) {
		in := &filters{}
		require.NoError(t, tools.Bind(map[string]interface{}{"id": 3.0, "activo": false, "limite": 5}, in))
		assert.Equal(t, 3, in.ID)
		assert.Equal(t, uint(5), in.Limit)
	})

	t.Run("RejectsBadStrings", func(t *testing.T) {
		assert.EqualError(t, tools.Bind(map[string]interface{}{"precio_min": "barato"}, &filters{}),
			"invalid arguments: argument precio_min must be a number")
		assert.EqualError(t, tools.Bind(map[string]interface{}{"id": ""}, &filters{}),
			"invalid arguments: argument id must be an integer")
		assert.Error(t, tools.Bind(map[string]interface{}{"activo": "quizas"}, &filters{}))
	})

	t.Run("NumberIntoStringFails", func(t *testing.T) {
		assert.ErrorContains(t, tools.Bind(map[string]interface{}{"nombre": 42}, &filters{}), "invalid arguments")
	})
}

func TestResult(t *testing.T) {
	res, err := tools.Result("texto plano")
	require.NoError(t, err)
	assert.Equal(t, "texto plano", mcp.GetTextFromContent(res.Content[0]))

	res, err = tools.Result(map[string]int{"total": 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":3}`, mcp.GetTextFromContent(res.Content[0]))

	var missing *struct{ ID int }
	res, err = tools.Result(missing)
	require.NoError(t, err)
	assert.Equal(t, "null", mcp.GetTextFromContent(res.Content[0]))
}

func TestRegistry_NewServer(t *testing.T) {
	s := newEchoRegistry().NewServer("Echo", "1.0.0")
	assert.NotNil(t, s)
	assert.NotNil(t, s.GetTool("echo"))
}
