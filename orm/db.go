package orm

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/va6996/mcpworkshop/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteDriver is go-sqlite3 with LOWER replaced by a Unicode-aware version,
// so LOWER(col) folds the same way as likePattern.
const sqliteDriver = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	}
	return v
}

// Open connects to a workshop database. driver is "sqlite" (default) or "postgres".
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.New(log.Logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	switch driver {
	case "", "sqlite":
		sqlDB, err := sql.Open(sqliteDriver, withForeignKeys(dsn))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", dsn, err)
		}
		if err := sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping sqlite database %s: %w", dsn, err)
		}
		db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: sqliteDriver, Conn: sqlDB}), cfg)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		return db, nil
	case "postgres":
		return gorm.Open(postgres.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	if strings.HasPrefix(dsn, "file:") {
		return dsn + "?_foreign_keys=on"
	}
	return "file:" + dsn + "?_foreign_keys=on"
}

// MigrateStore creates the store tables
func MigrateStore(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &Customer{})
}

// MigrateInsurance creates the insurance tables
func MigrateInsurance(db *gorm.DB) error {
	return db.AutoMigrate(&InsuranceProduct{}, &Customer{}, &Policy{})
}

// Migrate creates the tables of the named database ("store" or "insurance")
func Migrate(db *gorm.DB, name string) error {
	switch name {
	case "store":
		return MigrateStore(db)
	case "insurance":
		return MigrateInsurance(db)
	default:
		return fmt.Errorf("unknown database: %s", name)
	}
}

// Seed fills the named database with the workshop sample data
func Seed(db *gorm.DB, name string, now time.Time) error {
	switch name {
	case "store":
		return SeedStore(db)
	case "insurance":
		return SeedInsurance(db, now)
	default:
		return fmt.Errorf("unknown database: %s", name)
	}
}

// Reset drops every table of the named database
func Reset(db *gorm.DB, name string) error {
	var tables []interface{}
	switch name {
	case "store":
		tables = []interface{}{&Product{}, &Customer{}}
	case "insurance":
		tables = []interface{}{&Policy{}, &InsuranceProduct{}, &Customer{}}
	default:
		return fmt.Errorf("unknown database: %s", name)
	}
	if err := db.Migrator().DropTable(tables...); err != nil {
		return fmt.Errorf("failed to drop %s tables: %w", name, err)
	}
	return nil
}

// HasData reports whether the named database already holds rows
func HasData(db *gorm.DB, name string) (bool, error) {
	var model interface{} = &Product{}
	if name == "insurance" {
		model = &Policy{}
	}
	if !db.Migrator().HasTable(model) {
		return false, nil
	}
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// likePattern builds the pattern compared against LOWER(col)
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
