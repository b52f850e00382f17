package database

import "strings"

// DefaultDisplayWidth is used for types without a declared or well-known
// rendering width, such as unbounded text.
const DefaultDisplayWidth = 40

// displaySizes holds the rendering width of fixed-size types, keyed by the
// upper-cased type name as reported by PostgreSQL, Hive or Phoenix.
var displaySizes = map[string]int{
	"BOOLEAN":          5,
	"BOOL":             5,
	"TINYINT":          4,
	"SMALLINT":         6,
	"INT2":             6,
	"MEDIUMINT":        9,
	"INTEGER":          11,
	"INT":              11,
	"INT4":             11,
	"BIGINT":           20,
	"INT8":             20,
	"FLOAT":            15,
	"FLOAT4":           15,
	"REAL":             15,
	"DOUBLE":           25,
	"FLOAT8":           25,
	"DOUBLE PRECISION": 25,
	"DATE":             10,
	"TIME":             15,
	"TIMESTAMP":        29,
	"DATETIME":         19,
	"TIMESTAMPTZ":      35,
	"UUID":             36,
}

// DisplaySize returns the display width of a column of the given type.
// A positive length (a declared VARCHAR(n) size, a numeric precision) wins
// over the type default.
func DisplaySize(typeName string, length int64) int {
	if length > 0 {
		return int(length)
	}
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(typeName)), "UNSIGNED ")
	if n, ok := displaySizes[name]; ok {
		return n
	}
	return DefaultDisplayWidth
}
