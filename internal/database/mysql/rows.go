package mysql

import (
	"database/sql"
	"fmt"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
)

type rows struct {
	rows    *sql.Rows
	columns []database.Column
	values  []any
	ptrs    []any
	current bool
	err     error
}

var _ database.Rows = (*rows)(nil)

func newRows(rs *sql.Rows) (*rows, error) {
	types, err := rs.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}
	r := &rows{
		rows:    rs,
		columns: make([]database.Column, len(types)),
		values:  make([]any, len(types)),
		ptrs:    make([]any, len(types)),
	}
	for i, ct := range types {
		name := ct.DatabaseTypeName()
		r.columns[i] = database.Column{
			Label:        ct.Name(),
			TypeName:     name,
			DisplayWidth: database.DisplaySize(name, declaredLength(ct)),
		}
		r.ptrs[i] = &r.values[i]
	}
	return r, nil
}

// columnType is the part of *sql.ColumnType used to size a column.
type columnType interface {
	DatabaseTypeName() string
	DecimalSize() (precision, scale int64, ok bool)
}

// declaredLength derives the rendering width a column declares, or -1.
// The driver reports no character lengths; DecimalSize carries the
// precision of DECIMAL columns and the fractional seconds of temporal ones.
func declaredLength(ct columnType) int64 {
	precision, scale, ok := ct.DecimalSize()
	if !ok {
		return -1
	}
	var n int64
	switch ct.DatabaseTypeName() {
	case "DECIMAL":
		// sign, digits and the decimal point
		n = precision + 1
		if scale > 0 {
			n++
		}
		return n
	case "DATETIME", "TIMESTAMP":
		n = int64(len("2006-01-02 15:04:05"))
	case "TIME":
		n = int64(len("-838:59:59"))
	default:
		return -1
	}
	if scale > 0 {
		n += scale + 1
	}
	return n
}

func (r *rows) Columns() []database.Column {
	return r.columns
}

func (r *rows) Next() bool {
	r.current = false
	if r.err != nil || !r.rows.Next() {
		return false
	}
	if err := r.rows.Scan(r.ptrs...); err != nil {
		r.err = fmt.Errorf("scan row: %w", err)
		return false
	}
	r.current = true
	return true
}

func (r *rows) Value(i int) (sql.NullString, error) {
	if !r.current {
		return sql.NullString{}, fmt.Errorf("value called without a current row")
	}
	if i < 0 || i >= len(r.values) {
		return sql.NullString{}, fmt.Errorf("column index %d out of range [0,%d)", i, len(r.values))
	}
	return database.ToNullString(r.values[i]), nil
}

func (r *rows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

func (r *rows) Close() error {
	return r.rows.Close()
}
