// Package resources exposes static and dynamic read-only documents as MCP resources
package resources

import (
	"sync/atomic"
	"time"

	"github.com/va6996/mcpworkshop/tools"
)

// ServerName is the name the resources server announces on initialize
const ServerName = "Resources Server"

// Version is reported by config://settings and info://version
const Version = "1.0.0"

// Client serves the resource documents and tracks the reads it has answered
type Client struct {
	started time.Time
	now     func() time.Time
	reads   atomic.Int64
	Port    int
}

// NewClient initializes the plugin and registers its resources.
// port is reported in config://settings.
func NewClient(registry *tools.Registry, port int) *Client {
	c := &Client{started: time.Now(), now: time.Now, Port: port}
	if registry == nil {
		return c
	}

	for _, doc := range c.documents() {
		registry.RegisterResource(doc.resource, c.counted(doc.read))
	}
	return c
}
