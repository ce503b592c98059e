// Package store exposes the workshop store database as MCP tools
package store

import (
	"github.com/va6996/mcpworkshop/tools"
	"gorm.io/gorm"
)

// ServerName is the name the store server announces on initialize
const ServerName = "Tienda Server"

// Client groups the store catalog and customer tools
type Client struct {
	Products  *ProductTools
	Customers *CustomerTools
}

// NewClient registers the store tools backed by db
func NewClient(registry *tools.Registry, db *gorm.DB) *Client {
	return &Client{
		Products:  NewProductTools(registry, db),
		Customers: NewCustomerTools(registry, db, "clientes"),
	}
}
