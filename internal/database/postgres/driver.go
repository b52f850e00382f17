package postgres

import (
	"context"
	"fmt"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Driver implements the database.Driver interface for PostgreSQL and
// PostgreSQL wire compatible engines.
type Driver struct {
	pool    *pgxpool.Pool
	typeMap *pgtype.Map
	dbName  string
}

var _ database.Driver = (*Driver)(nil)

// New creates a new PostgreSQL driver.
func New() *Driver {
	return &Driver{typeMap: pgtype.NewMap()}
}

// Connect establishes a connection pool to PostgreSQL.
func (d *Driver) Connect(ctx context.Context, dsn string) error {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}

	// The shell runs one statement at a time.
	cfg.MaxConns = 1
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}

	d.pool = pool
	d.dbName = cfg.ConnConfig.Database
	return nil
}

// Close closes the connection pool.
func (d *Driver) Close() error {
	if d.pool != nil {
		d.pool.Close()
	}
	return nil
}

// Query runs a statement and returns a cursor over its rows.
func (d *Driver) Query(ctx context.Context, query string) (database.Rows, error) {
	if d.pool == nil {
		return nil, fmt.Errorf("not connected")
	}
	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	return newRows(rows, d.typeMap), nil
}

// Exec runs a mutating statement. The pool runs in autocommit mode, so the
// change is committed when Exec returns.
func (d *Driver) Exec(ctx context.Context, stmt string) (int64, error) {
	if d.pool == nil {
		return 0, fmt.Errorf("not connected")
	}
	tag, err := d.pool.Exec(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("execute: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListTables returns schema-qualified names of all user tables.
func (d *Driver) ListTables(ctx context.Context) ([]string, error) {
	if d.pool == nil {
		return nil, fmt.Errorf("not connected")
	}
	rows, err := d.pool.Query(ctx, queryListTables)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var schema, name string
		if err := rows.Scan(&schema, &name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, schema+"."+name)
	}
	return tables, rows.Err()
}

// DatabaseName returns the name of the connected database.
func (d *Driver) DatabaseName() string {
	return d.dbName
}
