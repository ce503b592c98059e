package temperature

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpworkshop/tools"
)

func TestConversions(t *testing.T) {
	assert.InDelta(t, 77.0, CelsiusToFahrenheit(25), 1e-9)
	assert.InDelta(t, 32.0, CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 100.0, FahrenheitToCelsius(212), 1e-9)
	assert.InDelta(t, -40.0, FahrenheitToCelsius(-40), 1e-9)
	assert.InDelta(t, 273.15, CelsiusToKelvin(0), 1e-9)
}

func TestNewClient_RegistersTools(t *testing.T) {
	ctx := context.Background()
	registry := tools.NewRegistry()
	client := NewClient(registry)
	require.NotNil(t, client.CelsiusToKelvin)

	var names []string
	for _, tool := range registry.GetTools() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"celsius_to_fahrenheit", "fahrenheit_to_celsius", "celsius_to_kelvin"}, names)

	out, err := registry.ExecuteTool(ctx, "celsius_to_fahrenheit", map[string]interface{}{"celsius": 100.0})
	require.NoError(t, err)
	assert.InDelta(t, 212.0, out, 1e-9)

	_, err = registry.ExecuteTool(ctx, "celsius_to_kelvin", map[string]interface{}{"celsius": "caliente"})
	assert.Error(t, err)
}
