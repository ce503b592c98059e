package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/va6996/mcpworkshop/config"
	"github.com/va6996/mcpworkshop/mcpclient"
	"github.com/va6996/mcpworkshop/orm"
)

func memoryConfig() *config.Config {
	return &config.Config{Database: config.DatabaseConfig{
		Driver:        "sqlite",
		StorePath:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		InsurancePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}}
}

func TestServerCatalog(t *testing.T) {
	assert.Equal(t, []string{"insurance", "math", "prompts", "resources", "store", "temperature", "text", "validation"}, ServerNames())

	spec, err := LookupServer("math")
	require.NoError(t, err)
	assert.Equal(t, TransportHTTP, spec.Transport)
	assert.Equal(t, ":8001", spec.Addr)

	spec, err = LookupServer("text")
	require.NoError(t, err)
	assert.Equal(t, TransportStdio, spec.Transport)

	_, err = LookupServer("weather")
	assert.EqualError(t, err, "unknown server: weather")
}

func TestServerSpec_Build(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()

	tests := []struct {
		name  string
		tools int
	}{
		{name: "math", tools: 4},
		{name: "store", tools: 9},
		{name: "insurance", tools: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := LookupServer(tt.name)
			require.NoError(t, err)

			srv, cleanup, err := spec.Build(ctx, cfg, spec.Addr)
			require.NoError(t, err)
			defer cleanup()

			c, err := mcpclient.Connect(ctx, mcpclient.ServerConfig{
				Name:      tt.name,
				Transport: mcpclient.TransportInProcess,
				Server:    srv,
			})
			require.NoError(t, err)
			defer c.Close()
			assert.Equal(t, spec.Title, c.ServerInfo.Name)

			list, err := c.ListTools(ctx)
			require.NoError(t, err)
			assert.Len(t, list, tt.tools)
		})
	}

	t.Run("SeedsDatabase", func(t *testing.T) {
		spec, err := LookupServer("store")
		require.NoError(t, err)
		srv, cleanup, err := spec.Build(ctx, cfg, spec.Addr)
		require.NoError(t, err)
		defer cleanup()

		c, err := mcpclient.Connect(ctx, mcpclient.ServerConfig{Name: "store", Transport: mcpclient.TransportInProcess, Server: srv})
		require.NoError(t, err)
		defer c.Close()

		out, err := c.CallTool(ctx, "buscar_producto_por_id", map[string]interface{}{"producto_id": 1})
		require.NoError(t, err)
		assert.Contains(t, out, "Laptop Dell XPS 15")
	})

	t.Run("ResourcesReportPort", func(t *testing.T) {
		spec, err := LookupServer("resources")
		require.NoError(t, err)
		srv, cleanup, err := spec.Build(ctx, cfg, ":9104")
		require.NoError(t, err)
		defer cleanup()

		c, err := mcpclient.Connect(ctx, mcpclient.ServerConfig{Name: "resources", Transport: mcpclient.TransportInProcess, Server: srv})
		require.NoError(t, err)
		defer c.Close()

		out, err := c.ReadResource(ctx, "config://settings")
		require.NoError(t, err)
		assert.Contains(t, out, "9104")
	})
}

func TestPrepareDatabase(t *testing.T) {
	ctx := context.Background()
	open := func(t *testing.T) *gorm.DB {
		db, err := orm.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
		require.NoError(t, err)
		return db
	}

	t.Run("Ready", func(t *testing.T) {
		db := open(t)
		require.NoError(t, prepareDatabase(ctx, db, "store", time.Now()))

		sqlDB, err := db.DB()
		require.NoError(t, err)
		t.Cleanup(func() { sqlDB.Close() })
		assert.NoError(t, sqlDB.Ping())

		hasData, err := orm.HasData(db, "store")
		require.NoError(t, err)
		assert.True(t, hasData)
	})

	t.Run("ClosesOnMigrateFailure", func(t *testing.T) {
		db := open(t)
		err := prepareDatabase(ctx, db, "travel", time.Now())
		assert.EqualError(t, err, "failed to migrate travel database: unknown database: travel")

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.EqualError(t, sqlDB.Ping(), "sql: database is closed")
	})

	t.Run("OpenDatabaseUnknownName", func(t *testing.T) {
		db, err := OpenDatabase(ctx, memoryConfig().Database, "travel")
		assert.Nil(t, db)
		assert.ErrorContains(t, err, "failed to migrate travel database")
	})
}

func TestServe_UnsupportedTransport(t *testing.T) {
	spec, err := LookupServer("math")
	require.NoError(t, err)
	srv, _, err := spec.Build(context.Background(), memoryConfig(), "")
	require.NoError(t, err)

	err = Serve(context.Background(), srv, "websocket", ":0")
	assert.EqualError(t, err, "unsupported transport: websocket")
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/chat", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, called)
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, 8104, portOf(":8104"))
	assert.Equal(t, 8001, portOf("localhost:8001"))
	assert.Equal(t, 0, portOf("sin-puerto"))
}
