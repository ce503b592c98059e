package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/va6996/mcpworkshop/tools"
)

const readme = `# Servidor de Recursos MCP

Este servidor expone varios recursos de información:

## Resources Disponibles

- ` + "`docs://readme`" + ` - Esta documentación
- ` + "`config://settings`" + ` - Configuración del sistema
- ` + "`info://version`" + ` - Información de versión
- ` + "`data://example`" + ` - Datos de ejemplo
- ` + "`status://current`" + ` - Estado actual del sistema

## Uso

Los resources se acceden via el protocolo MCP y proporcionan
información estática o dinámica sin ejecutar acciones.
`

type document struct {
	resource mcp.Resource
	read     tools.ResourceReader
}

type Settings struct {
	Application struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Environment string `json:"environment"`
	} `json:"application"`
	Server struct {
		Host  string `json:"host"`
		Port  int    `json:"port"`
		Debug bool   `json:"debug"`
	} `json:"server"`
	Features struct {
		Logging bool `json:"logging"`
		Metrics bool `json:"metrics"`
		Cache   bool `json:"cache"`
	} `json:"features"`
}

type VersionInfo struct {
	Version    string   `json:"version"`
	BuildDate  string   `json:"build_date"`
	GoVersion  string   `json:"go_version"`
	MCPVersion string   `json:"mcp_version"`
	Features   []string `json:"features"`
}

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type ExampleData struct {
	Users []User `json:"users"`
	Stats struct {
		TotalUsers     int    `json:"total_users"`
		ActiveSessions int    `json:"active_sessions"`
		LastUpdate     string `json:"last_update"`
	} `json:"stats"`
}

type Status struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	Uptime          string `json:"uptime"`
	RequestsHandled int64  `json:"requests_handled"`
	Errors          int    `json:"errors"`
}

func (c *Client) documents() []document {
	return []document{
		{
			resource: mcp.NewResource("docs://readme", "readme",
				mcp.WithResourceDescription("Documentación principal del servidor"),
				mcp.WithMIMEType("text/markdown")),
			read: func(ctx context.Context) (string, error) { return readme, nil },
		},
		{
			resource: mcp.NewResource("config://settings", "settings",
				mcp.WithResourceDescription("Configuración del sistema"),
				mcp.WithMIMEType("application/json")),
			read: func(ctx context.Context) (string, error) { return indent(c.Settings()) },
		},
		{
			resource: mcp.NewResource("info://version", "version",
				mcp.WithResourceDescription("Información de versión del servidor"),
				mcp.WithMIMEType("application/json")),
			read: func(ctx context.Context) (string, error) { return indent(c.VersionInfo()) },
		},
		{
			resource: mcp.NewResource("data://example", "example",
				mcp.WithResourceDescription("Datos de ejemplo para testing"),
				mcp.WithMIMEType("application/json")),
			read: func(ctx context.Context) (string, error) { return indent(c.ExampleData()) },
		},
		{
			resource: mcp.NewResource("status://current", "status",
				mcp.WithResourceDescription("Estado actual del sistema (dinámico)"),
				mcp.WithMIMEType("application/json")),
			read: func(ctx context.Context) (string, error) { return indent(c.Status()) },
		},
	}
}

// counted wraps a reader so status://current can report how many reads were served
func (c *Client) counted(read tools.ResourceReader) tools.ResourceReader {
	return func(ctx context.Context) (string, error) {
		c.reads.Add(1)
		return read(ctx)
	}
}

func (c *Client) Settings() *Settings {
	s := &Settings{}
	s.Application.Name = "MCP Resources Server"
	s.Application.Version = Version
	s.Application.Environment = "development"
	s.Server.Host = "0.0.0.0"
	s.Server.Port = c.Port
	s.Server.Debug = true
	s.Features.Logging = true
	s.Features.Metrics = true
	return s
}

func (c *Client) VersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:    Version,
		BuildDate:  "2024-01-15",
		GoVersion:  runtime.Version(),
		MCPVersion: mcp.LATEST_PROTOCOL_VERSION,
		Features:   []string{"resources", "dynamic_content"},
	}
}

func (c *Client) ExampleData() *ExampleData {
	d := &ExampleData{
		Users: []User{
			{ID: 1, Name: "Juan", Role: "admin"},
			{ID: 2, Name: "María", Role: "user"},
			{ID: 3, Name: "Carlos", Role: "user"},
		},
	}
	d.Stats.TotalUsers = len(d.Users)
	d.Stats.ActiveSessions = 1
	d.Stats.LastUpdate = c.now().Format(time.RFC3339)
	return d
}

func (c *Client) Status() *Status {
	return &Status{
		Status:          "online",
		Timestamp:       c.now().Format(time.RFC3339),
		Uptime:          c.now().Sub(c.started).Round(time.Second).String(),
		RequestsHandled: c.reads.Load(),
	}
}

func indent(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode resource: %w", err)
	}
	return string(b), nil
}
