package database

import "context"

// Driver defines the interface for query engine operations.
// Implementations are used from one goroutine at a time.
type Driver interface {
	// Connect establishes a connection to the engine.
	Connect(ctx context.Context, dsn string) error

	// Close closes the connection.
	Close() error

	// Query runs a statement that produces a result set.
	Query(ctx context.Context, query string) (Rows, error)

	// Exec runs a mutating statement and returns the number of affected rows.
	Exec(ctx context.Context, stmt string) (int64, error)

	// ListTables returns the table names visible to the connection.
	ListTables(ctx context.Context) ([]string, error)

	// DatabaseName returns the name of the connected database.
	DatabaseName() string
}
