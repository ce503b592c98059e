package math

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpworkshop/tools"
)

func TestOperations(t *testing.T) {
	registry := tools.NewRegistry()
	NewClient(registry)
	ctx := context.Background()

	cases := []struct {
		tool string
		a, b float64
		want float64
	}{
		{"add", 10, 25, 35},
		{"subtract", 100, 35, 65},
		{"multiply", 7, 8, 56},
		{"divide", 10, 4, 2.5},
	}
	for _, tc := range cases {
		t.Run(tc.tool, func(t *testing.T) {
			out, err := registry.ExecuteTool(ctx, tc.tool, map[string]interface{}{"a": tc.a, "b": tc.b})
			require.NoError(t, err)
			assert.InDelta(t, tc.want, out, 1e-9)
		})
	}
}

func TestDivideByZero(t *testing.T) {
	_, err := Divide(1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.EqualError(t, err, "No se puede dividir por cero")
}

func TestNumericStringsAccepted(t *testing.T) {
	registry := tools.NewRegistry()
	NewClient(registry)

	out, err := registry.ExecuteTool(context.Background(), "add", map[string]interface{}{"a": "25", "b": 17})
	require.NoError(t, err)
	assert.InDelta(t, 42.0, out, 1e-9)

	_, err = registry.ExecuteTool(context.Background(), "add", map[string]interface{}{"a": true, "b": 1})
	assert.EqualError(t, err, "argument a must be a number")
}
