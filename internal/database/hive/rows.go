package hive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/beltran/gohive"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
)

type rows struct {
	ctx     context.Context
	cursor  *gohive.Cursor
	columns []database.Column
	dests   []any
	err     error
}

var _ database.Rows = (*rows)(nil)

func newRows(ctx context.Context, cursor *gohive.Cursor) *rows {
	desc := cursor.Description()
	r := &rows{ctx: ctx, cursor: cursor, columns: make([]database.Column, len(desc))}
	for i, d := range desc {
		r.columns[i] = describeColumn(d)
	}
	r.dests = newDests(r.columns)
	return r
}

// describeColumn turns a gohive description entry (name and optional type)
// into column metadata. Hive qualifies names with the table alias.
func describeColumn(desc []string) database.Column {
	var col database.Column
	if len(desc) > 0 {
		col.Label = desc[0]
	}
	if _, name, ok := strings.Cut(col.Label, "."); ok {
		col.Label = name
	}
	if len(desc) > 1 {
		col.TypeName = strings.TrimSuffix(desc[1], "_TYPE")
	}
	col.DisplayWidth = database.DisplaySize(col.TypeName, -1)
	return col
}

// newDests returns one FetchOne destination per column. gohive only fills
// typed pointers; the double pointers are set to nil for null cells.
// Temporal, decimal and complex types arrive as strings.
func newDests(columns []database.Column) []any {
	dests := make([]any, len(columns))
	for i, col := range columns {
		switch col.TypeName {
		case "BOOLEAN":
			dests[i] = new(*bool)
		case "TINYINT":
			dests[i] = new(*int8)
		case "SMALLINT":
			dests[i] = new(*int16)
		case "INT":
			dests[i] = new(*int32)
		case "BIGINT":
			dests[i] = new(*int64)
		case "FLOAT", "DOUBLE":
			dests[i] = new(*float64)
		case "BINARY":
			dests[i] = new([]byte)
		default:
			dests[i] = new(*string)
		}
	}
	return dests
}

// destValue dereferences a destination filled by FetchOne, nil for null.
func destValue(dest any) any {
	switch d := dest.(type) {
	case **bool:
		if *d != nil {
			return **d
		}
	case **int8:
		if *d != nil {
			return **d
		}
	case **int16:
		if *d != nil {
			return **d
		}
	case **int32:
		if *d != nil {
			return **d
		}
	case **int64:
		if *d != nil {
			return **d
		}
	case **float64:
		if *d != nil {
			return **d
		}
	case **string:
		if *d != nil {
			return **d
		}
	case *[]byte:
		if *d != nil {
			return *d
		}
	}
	return nil
}

func (r *rows) Columns() []database.Column {
	return r.columns
}

func (r *rows) Next() bool {
	if r.err != nil || !r.cursor.HasMore(r.ctx) {
		if r.err == nil && r.cursor.Err != nil {
			r.err = r.cursor.Err
		}
		return false
	}
	r.cursor.FetchOne(r.ctx, r.dests...)
	if r.cursor.Err != nil {
		r.err = fmt.Errorf("read row: %w", r.cursor.Err)
		return false
	}
	return true
}

func (r *rows) Value(i int) (sql.NullString, error) {
	if i < 0 || i >= len(r.dests) {
		return sql.NullString{}, fmt.Errorf("column index %d out of range [0,%d)", i, len(r.dests))
	}
	return database.ToNullString(destValue(r.dests[i])), nil
}

func (r *rows) Err() error {
	return r.err
}

func (r *rows) Close() error {
	r.cursor.Close()
	return nil
}
