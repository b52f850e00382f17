package render

import (
	"fmt"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
)

// Buffer is a fully materialized result set, in cursor order.
type Buffer []database.Row

// ErrCursorRead reports a failure while advancing a cursor or reading one of
// its cells. Row is 1-based.
type ErrCursorRead struct {
	Row   int
	Cause error
}

func (e *ErrCursorRead) Error() string {
	return fmt.Sprintf("read row %d: %v", e.Row, e.Cause)
}

func (e *ErrCursorRead) Unwrap() error {
	return e.Cause
}

// Materialize consumes rows once, fully and in order, and returns every row
// in memory. On failure nothing is returned: a partial buffer is never
// handed to the caller.
func Materialize(rows database.Rows) (Buffer, error) {
	return materialize(rows, len(rows.Columns()))
}

// materialize reads width cells per row.
func materialize(rows database.Rows, width int) (Buffer, error) {
	var buf Buffer
	for rows.Next() {
		row, err := readRow(rows, width)
		if err != nil {
			return nil, &ErrCursorRead{Row: len(buf) + 1, Cause: err}
		}
		buf = append(buf, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrCursorRead{Row: len(buf) + 1, Cause: err}
	}
	return buf, nil
}

func readRow(rows database.Rows, width int) (database.Row, error) {
	row := make(database.Row, width)
	for i := range row {
		v, err := rows.Value(i)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}
