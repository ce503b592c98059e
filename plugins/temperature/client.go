package temperature

import (
	"github.com/va6996/mcpworkshop/tools"
)

// ServerName is the name the temperature server announces on initialize
const ServerName = "Temperature Converter"

// Client groups the temperature conversion tools
type Client struct {
	CelsiusToFahrenheit *ConversionTool
	FahrenheitToCelsius *ConversionTool
	CelsiusToKelvin     *ConversionTool
}

// NewClient initializes the plugin and registers its tools
func NewClient(registry *tools.Registry) *Client {
	return &Client{
		CelsiusToFahrenheit: NewConversionTool(registry, "celsius_to_fahrenheit", "celsius",
			"Convierte temperatura de Celsius a Fahrenheit", CelsiusToFahrenheit),
		FahrenheitToCelsius: NewConversionTool(registry, "fahrenheit_to_celsius", "fahrenheit",
			"Convierte temperatura de Fahrenheit a Celsius", FahrenheitToCelsius),
		CelsiusToKelvin: NewConversionTool(registry, "celsius_to_kelvin", "celsius",
			"Convierte temperatura de Celsius a Kelvin", CelsiusToKelvin),
	}
}
