package temperature

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/tools"
)

func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

func CelsiusToKelvin(c float64) float64 { return c + 273.15 }

// ConversionTool exposes a single-argument unit conversion
type ConversionTool struct {
	Name    string
	arg     string
	convert func(float64) float64
}

func NewConversionTool(registry *tools.Registry, name, arg, description string, convert func(float64) float64) *ConversionTool {
	t := &ConversionTool{Name: name, arg: arg, convert: convert}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithNumber(arg, mcp.Required(), mcp.Description("Temperatura de entrada")),
		mcp.WithReadOnlyHintAnnotation(true),
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		value, err := tools.Float(args, arg)
		if err != nil {
			return nil, err
		}
		return t.Execute(value), nil
	})
	return t
}

func (t *ConversionTool) Execute(value float64) float64 {
	return t.convert(value)
}
