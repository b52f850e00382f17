package database

import "database/sql"

// Column describes one result column as reported by the engine.
type Column struct {
	Label        string
	TypeName     string
	DisplayWidth int
}

// Row holds the cells of one result row, aligned with the result columns.
// An invalid sql.NullString is the null marker.
type Row []sql.NullString

// Rows is a forward-only cursor over a query result. It cannot be rewound.
type Rows interface {
	// Columns returns the result column metadata in result order.
	Columns() []Column

	// Next advances to the next row. It returns false when the rows are
	// exhausted or an error occurred; check Err afterwards.
	Next() bool

	// Value returns the display string of the i-th cell of the current row.
	Value(i int) (sql.NullString, error)

	// Err returns the error, if any, that stopped iteration.
	Err() error

	// Close releases the cursor.
	Close() error
}
