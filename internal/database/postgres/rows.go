package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// varHeaderSize is the length header PostgreSQL adds to type modifiers of
// variable length types.
const varHeaderSize = 4

type rows struct {
	rows    pgx.Rows
	columns []database.Column
	values  []any
	err     error
}

var _ database.Rows = (*rows)(nil)

func newRows(r pgx.Rows, typeMap *pgtype.Map) *rows {
	fields := r.FieldDescriptions()
	columns := make([]database.Column, len(fields))
	for i, f := range fields {
		name := typeName(typeMap, f.DataTypeOID)
		columns[i] = database.Column{
			Label:        f.Name,
			TypeName:     name,
			DisplayWidth: database.DisplaySize(name, declaredLength(name, f)),
		}
	}
	return &rows{rows: r, columns: columns}
}

func (r *rows) Columns() []database.Column {
	return r.columns
}

func (r *rows) Next() bool {
	r.values = nil
	if r.err != nil || !r.rows.Next() {
		return false
	}
	values, err := r.rows.Values()
	if err != nil {
		r.err = fmt.Errorf("read row: %w", err)
		return false
	}
	r.values = values
	return true
}

func (r *rows) Value(i int) (sql.NullString, error) {
	if i < 0 || i >= len(r.values) {
		return sql.NullString{}, fmt.Errorf("column index %d out of range [0,%d)", i, len(r.values))
	}
	return database.ToNullString(textValue(r.columns[i].TypeName, r.values[i])), nil
}

// Layouts matching the PostgreSQL text output of temporal types.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05.999999"
)

// textValue formats temporal values the way the server prints them, so
// they fit the display width of their type.
func textValue(typeName string, v any) any {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	switch typeName {
	case "date":
		return t.Format(dateLayout)
	case "timestamp":
		return t.Format(timestampLayout)
	case "timestamptz":
		// +05:30 stays, +01:00 prints as +01.
		return strings.TrimSuffix(t.Format(timestampLayout+"-07:00"), ":00")
	}
	return v
}

func (r *rows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

func (r *rows) Close() error {
	r.rows.Close()
	return r.rows.Err()
}

func typeName(typeMap *pgtype.Map, oid uint32) string {
	if t, ok := typeMap.TypeForOID(oid); ok {
		return t.Name
	}
	return "unknown"
}

// declaredLength derives the rendering width a column declares through its
// type modifier, or -1 when the type carries none.
func declaredLength(name string, f pgconn.FieldDescription) int64 {
	if f.TypeModifier <= varHeaderSize {
		return -1
	}
	mod := int64(f.TypeModifier - varHeaderSize)
	switch name {
	case "varchar", "bpchar":
		return mod
	case "numeric":
		precision := (mod >> 16) & 0xffff
		scale := mod & 0xffff
		// sign, digits and the decimal point
		n := precision + 1
		if scale > 0 {
			n++
		}
		return n
	}
	return -1
}
