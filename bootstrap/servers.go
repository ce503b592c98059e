package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"gorm.io/gorm"

	"github.com/va6996/mcpworkshop/config"
	"github.com/va6996/mcpworkshop/log"
	"github.com/va6996/mcpworkshop/orm"
	"github.com/va6996/mcpworkshop/plugins/insurance"
	mathplugin "github.com/va6996/mcpworkshop/plugins/math"
	"github.com/va6996/mcpworkshop/plugins/prompts"
	"github.com/va6996/mcpworkshop/plugins/resources"
	"github.com/va6996/mcpworkshop/plugins/store"
	"github.com/va6996/mcpworkshop/plugins/temperature"
	"github.com/va6996/mcpworkshop/plugins/text"
	"github.com/va6996/mcpworkshop/plugins/validation"
	"github.com/va6996/mcpworkshop/tools"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	// MCPPath is where the streamable HTTP transport is mounted
	MCPPath = "/mcp"

	serverVersion = "1.0.0"
)

// ServerSpec describes one tool server of the workshop
type ServerSpec struct {
	Name      string
	Title     string
	Transport string
	Addr      string

	register func(ctx context.Context, cfg *config.Config, addr string, registry *tools.Registry) (func() error, error)
}

var Servers = map[string]ServerSpec{
	"temperature": {
		Name: "temperature", Title: temperature.ServerName, Transport: TransportStdio,
		register: stateless(func(r *tools.Registry) { temperature.NewClient(r) }),
	},
	"math": {
		Name: "math", Title: mathplugin.ServerName, Transport: TransportHTTP, Addr: ":8001",
		register: stateless(func(r *tools.Registry) { mathplugin.NewClient(r) }),
	},
	"text": {
		Name: "text", Title: text.ServerName, Transport: TransportStdio,
		register: stateless(func(r *tools.Registry) { text.NewClient(r) }),
	},
	"validation": {
		Name: "validation", Title: validation.ServerName, Transport: TransportStdio,
		register: stateless(func(r *tools.Registry) { validation.NewClient(r) }),
	},
	"resources": {
		Name: "resources", Title: resources.ServerName, Transport: TransportHTTP, Addr: ":8104",
		register: func(_ context.Context, _ *config.Config, addr string, r *tools.Registry) (func() error, error) {
			resources.NewClient(r, portOf(addr))
			return nil, nil
		},
	},
	"prompts": {
		Name: "prompts", Title: prompts.ServerName, Transport: TransportStdio,
		register: stateless(func(r *tools.Registry) { prompts.NewClient(r) }),
	},
	"store": {
		Name: "store", Title: store.ServerName, Transport: TransportHTTP, Addr: ":8200",
		register: withDatabase("store", func(r *tools.Registry, db *gorm.DB) { store.NewClient(r, db) }),
	},
	"insurance": {
		Name: "insurance", Title: insurance.ServerName, Transport: TransportHTTP, Addr: ":8200",
		register: withDatabase("insurance", func(r *tools.Registry, db *gorm.DB) { insurance.NewClient(r, db) }),
	},
}

func stateless(fn func(*tools.Registry)) func(context.Context, *config.Config, string, *tools.Registry) (func() error, error) {
	return func(_ context.Context, _ *config.Config, _ string, r *tools.Registry) (func() error, error) {
		fn(r)
		return nil, nil
	}
}

// withDatabase opens, migrates and seeds the named database before the
// tools are registered against it.
func withDatabase(name string, fn func(*tools.Registry, *gorm.DB)) func(context.Context, *config.Config, string, *tools.Registry) (func() error, error) {
	return func(ctx context.Context, cfg *config.Config, _ string, r *tools.Registry) (func() error, error) {
		db, err := OpenDatabase(ctx, cfg.Database, name)
		if err != nil {
			return nil, err
		}
		fn(r, db)
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return sqlDB.Close, nil
	}
}

// OpenDatabase connects to a workshop database, creating and seeding it
// when it is empty.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, name string) (*gorm.DB, error) {
	db, err := orm.Open(cfg.Driver, cfg.DSNFor(name))
	if err != nil {
		return nil, err
	}
	if err := prepareDatabase(ctx, db, name, time.Now()); err != nil {
		return nil, err
	}
	log.Infof(ctx, "Database %s ready (%s)", name, cfg.Driver)
	return db, nil
}

// prepareDatabase migrates and seeds db, closing it when either step fails
func prepareDatabase(ctx context.Context, db *gorm.DB, name string, now time.Time) error {
	err := orm.Migrate(db, name)
	if err != nil {
		err = fmt.Errorf("failed to migrate %s database: %w", name, err)
	} else if err = orm.Seed(db, name, now); err != nil {
		err = fmt.Errorf("failed to seed %s database: %w", name, err)
	}
	if err == nil {
		return nil
	}

	if sqlDB, dbErr := db.DB(); dbErr == nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			log.Warnf(ctx, "Failed to close %s database: %v", name, closeErr)
		}
	}
	return err
}

// ServerNames lists the catalog in alphabetical order
func ServerNames() []string {
	names := make([]string, 0, len(Servers))
	for name := range Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupServer(name string) (ServerSpec, error) {
	spec, ok := Servers[name]
	if !ok {
		return ServerSpec{}, fmt.Errorf("unknown server: %s", name)
	}
	return spec, nil
}

// Build registers the server's tools and returns the MCP server plus a
// cleanup function that is never nil.
func (s ServerSpec) Build(ctx context.Context, cfg *config.Config, addr string) (*server.MCPServer, func() error, error) {
	registry := tools.NewRegistry()
	cleanup, err := s.register(ctx, cfg, addr, registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build %s server: %w", s.Name, err)
	}
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	return registry.NewServer(s.Title, serverVersion), cleanup, nil
}

// Serve runs srv over the given transport until ctx is cancelled or, for
// stdio, until stdin is closed.
func Serve(ctx context.Context, srv *server.MCPServer, transport, addr string) error {
	switch transport {
	case TransportStdio:
		// stdout carries the protocol
		log.SetOutput(os.Stderr)
		log.Info(ctx, "Serving MCP over stdio")
		return server.NewStdioServer(srv).Listen(ctx, os.Stdin, os.Stdout)
	case TransportHTTP:
		mux := http.NewServeMux()
		mux.Handle(MCPPath, server.NewStreamableHTTPServer(srv))
		log.Infof(ctx, "Serving MCP over streamable HTTP at %s%s", addr, MCPPath)
		return ListenAndServe(ctx, addr, mux)
	default:
		return fmt.Errorf("unsupported transport: %s", transport)
	}
}

func portOf(addr string) int {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	p, _ := strconv.Atoi(port)
	return p
}
