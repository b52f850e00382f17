package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestDeclaredLength(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		typmod   int32
		want     int64
	}{
		{"varchar(20)", "varchar", 24, 20},
		{"char(3)", "bpchar", 7, 3},
		{"unbounded varchar", "varchar", -1, -1},
		{"numeric(10,2)", "numeric", (10<<16 | 2) + 4, 12},
		{"numeric(5,0)", "numeric", (5 << 16) + 4, 6},
		{"int4 ignores typmod", "int4", 24, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := pgconn.FieldDescription{Name: "c", TypeModifier: tt.typmod}
			assert.Equal(t, tt.want, declaredLength(tt.typeName, f))
		})
	}
}

func TestTypeName(t *testing.T) {
	m := pgtype.NewMap()
	assert.Equal(t, "int4", typeName(m, pgtype.Int4OID))
	assert.Equal(t, "varchar", typeName(m, pgtype.VarcharOID))
	assert.Equal(t, "unknown", typeName(m, 999999))
}

func TestDriverNotConnected(t *testing.T) {
	d := New()
	_, err := d.Query(context.Background(), "SELECT 1")
	assert.Error(t, err)
	_, err = d.Exec(context.Background(), "DROP TABLE t")
	assert.Error(t, err)
	_, err = d.ListTables(context.Background())
	assert.Error(t, err)
	assert.NoError(t, d.Close())
}

func TestTextValue(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 5, 123456000, time.UTC)
	ist := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		name     string
		typeName string
		in       any
		want     any
	}{
		{"date", "date", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "2024-01-02"},
		{"timestamp", "timestamp", ts, "2024-01-02 15:04:05.123456"},
		{"timestamp whole second", "timestamp", ts.Truncate(time.Second), "2024-01-02 15:04:05"},
		{"timestamptz utc", "timestamptz", ts, "2024-01-02 15:04:05.123456+00"},
		{"timestamptz half hour", "timestamptz", ts.In(ist), "2024-01-02 20:34:05.123456+05:30"},
		{"not temporal", "int4", int32(3), int32(3)},
		{"infinity", "date", pgtype.Infinity, pgtype.Infinity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textValue(tt.typeName, tt.in))
		})
	}
}

func TestDateFitsDisplayWidth(t *testing.T) {
	v := textValue("date", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Len(t, v, database.DisplaySize("date", -1))
}
