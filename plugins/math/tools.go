package math

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/tools"
)

// ErrDivisionByZero is returned by Divide when b is zero
var ErrDivisionByZero = errors.New("No se puede dividir por cero")

func Add(a, b float64) (float64, error) { return a + b, nil }

func Subtract(a, b float64) (float64, error) { return a - b, nil }

func Multiply(a, b float64) (float64, error) { return a * b, nil }

func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// OperationTool exposes a binary operation over a and b
type OperationTool struct {
	Name string
	op   func(a, b float64) (float64, error)
}

func NewOperationTool(registry *tools.Registry, name, description string, op func(a, b float64) (float64, error)) *OperationTool {
	t := &OperationTool{Name: name, op: op}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("Primer número")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Segundo número")),
		mcp.WithReadOnlyHintAnnotation(true),
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		a, err := tools.Float(args, "a")
		if err != nil {
			return nil, err
		}
		b, err := tools.Float(args, "b")
		if err != nil {
			return nil, err
		}
		return t.Execute(a, b)
	})
	return t
}

func (t *OperationTool) Execute(a, b float64) (float64, error) {
	return t.op(a, b)
}
