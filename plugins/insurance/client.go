// Package insurance exposes the workshop insurance database as MCP tools
package insurance

import (
	"github.com/va6996/mcpworkshop/plugins/store"
	"github.com/va6996/mcpworkshop/tools"
	"gorm.io/gorm"
)

// ServerName is the name the insurance server announces on initialize
const ServerName = "Aseguradora Server"

// Client groups the policy, product and policy holder tools
type Client struct {
	Policies  *PolicyTools
	Products  *ProductTools
	Customers *store.CustomerTools
}

// NewClient registers the insurance tools backed by db
func NewClient(registry *tools.Registry, db *gorm.DB) *Client {
	return &Client{
		Policies:  NewPolicyTools(registry, db),
		Products:  NewProductTools(registry, db),
		Customers: store.NewCustomerTools(registry, db, "clientes asegurados"),
	}
}
