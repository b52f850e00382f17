package database

import (
	"database/sql"
	"fmt"
)

// sliceRows implements Rows over rows already held in memory.
type sliceRows struct {
	columns []Column
	rows    []Row
	cursor  int
	current Row
	err     error
}

// FromSlice returns a cursor over in-memory rows. Every row must have one
// cell per column; a mismatching row stops iteration with an error.
func FromSlice(columns []Column, rows []Row) Rows {
	return &sliceRows{columns: columns, rows: rows}
}

// FromStrings is a convenience wrapper around FromSlice for rows without
// null cells.
func FromStrings(columns []Column, rows [][]string) Rows {
	converted := make([]Row, len(rows))
	for i, r := range rows {
		row := make(Row, len(r))
		for j, v := range r {
			row[j] = valid(v)
		}
		converted[i] = row
	}
	return FromSlice(columns, converted)
}

func (s *sliceRows) Columns() []Column {
	return s.columns
}

func (s *sliceRows) Next() bool {
	if s.err != nil || s.cursor >= len(s.rows) {
		s.current = nil
		return false
	}
	row := s.rows[s.cursor]
	if len(row) != len(s.columns) {
		s.err = fmt.Errorf("row %d has %d cells, want %d", s.cursor+1, len(row), len(s.columns))
		s.current = nil
		return false
	}
	s.current = row
	s.cursor++
	return true
}

func (s *sliceRows) Value(i int) (sql.NullString, error) {
	if s.current == nil {
		return sql.NullString{}, fmt.Errorf("value called without a current row")
	}
	if i < 0 || i >= len(s.current) {
		return sql.NullString{}, fmt.Errorf("column index %d out of range [0,%d)", i, len(s.current))
	}
	return s.current[i], nil
}

func (s *sliceRows) Err() error {
	return s.err
}

func (s *sliceRows) Close() error {
	s.current = nil
	s.cursor = len(s.rows)
	return nil
}
