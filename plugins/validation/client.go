// Package validation provides format and range validators exposed as tools.
// Validators report problems in their result instead of failing the call.
package validation

import (
	"github.com/va6996/mcpworkshop/tools"
)

// ServerName is the name the validation server announces on initialize
const ServerName = "Data Validation Server"

// Client groups the validation tools
type Client struct {
	Email    *EmailTool
	Password *PasswordTool
	URL      *URLTool
	Phone    *PhoneTool
	Range    *RangeTool
}

// NewClient initializes the plugin and registers its tools
func NewClient(registry *tools.Registry) *Client {
	return &Client{
		Email:    NewEmailTool(registry),
		Password: NewPasswordTool(registry),
		URL:      NewURLTool(registry),
		Phone:    NewPhoneTool(registry),
		Range:    NewRangeTool(registry),
	}
}

func boolPtr(b bool) *bool { return &b }
