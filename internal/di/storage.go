package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/internal/runtimeconfig"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// OpenDB opens a bun database for the configured driver.
func OpenDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	var (
		driverName string
		dialect    schema.Dialect
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", runtimeconfig.StorageDriverSQLite:
		driverName, dialect = "sqlite3", sqlitedialect.New()
	case runtimeconfig.StorageDriverPostgres:
		driverName, dialect = "postgres", pgdialect.New()
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}
	sqlDB, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	db := bun.NewDB(sqlDB, dialect)
	if driverName == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// EnsureSchema creates the tables used by the module when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*problems.Problem)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("create problems table: %w", err)
	}
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.bunDB == nil {
		if c.problemRepo != nil || c.Config.StorageProvider() != runtimeconfig.StorageProviderBun {
			return nil
		}
		db, err := OpenDB(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if err := EnsureSchema(ctx, c.bunDB); err != nil {
		if c.ownsDB {
			_ = c.bunDB.Close()
		}
		return err
	}
	return nil
}
