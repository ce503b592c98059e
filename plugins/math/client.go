// Package math exposes the four basic arithmetic operations as tools
package math

import (
	"github.com/va6996/mcpworkshop/tools"
)

// ServerName is the name the math server announces on initialize
const ServerName = "Math Operations Server"

// Client groups the arithmetic tools
type Client struct {
	Operations []*OperationTool
}

// NewClient initializes the plugin and registers its tools
func NewClient(registry *tools.Registry) *Client {
	return &Client{
		Operations: []*OperationTool{
			NewOperationTool(registry, "add", "Suma dos números", Add),
			NewOperationTool(registry, "subtract", "Resta dos números (a - b)", Subtract),
			NewOperationTool(registry, "multiply", "Multiplica dos números", Multiply),
			NewOperationTool(registry, "divide", "Divide dos números (a / b)", Divide),
		},
	}
}
