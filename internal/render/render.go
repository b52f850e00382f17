// Package render turns query results into text: the bordered table grid
// printed by the shell, and the alternate pretty, csv and tsv formats.
package render

import (
	"database/sql"
	"strings"
	"unicode/utf8"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
)

// Options controls how a result set is rendered.
type Options struct {
	// PruneAllNullColumns drops every column whose cells are null in all
	// rows. It requires materializing the whole result before rendering.
	PruneAllNullColumns bool

	// NullText is printed for null cells.
	NullText string
}

// Table is a rendered result set.
type Table struct {
	Body     string
	RowCount int
}

// Render formats rows as a bordered table.
//
// Without pruning the cursor is streamed in a single pass. With pruning the
// cursor is first materialized and never touched again; the whole result is
// then held in memory.
func Render(columns []database.Column, rows database.Rows, opts Options) (*Table, error) {
	if !opts.PruneAllNullColumns {
		return renderStreaming(columns, rows, opts.NullText)
	}
	// Rows are read against the caller's columns, as in streaming mode.
	buf, err := materialize(rows, len(columns))
	if err != nil {
		return nil, err
	}
	return renderPruned(columns, buf, opts.NullText), nil
}

func renderStreaming(columns []database.Column, rows database.Rows, nullText string) (*Table, error) {
	separator := separatorLine(columns)

	var b strings.Builder
	b.WriteString(separator)
	for _, col := range columns {
		formatCell(&b, headerLabel(col), col.DisplayWidth)
	}
	b.WriteString("|\n")

	n := 0
	for rows.Next() {
		b.WriteString(separator)
		for i, col := range columns {
			v, err := rows.Value(i)
			if err != nil {
				return nil, &ErrCursorRead{Row: n + 1, Cause: err}
			}
			formatCell(&b, cellText(v, nullText), col.DisplayWidth)
		}
		b.WriteString("|\n")
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrCursorRead{Row: n + 1, Cause: err}
	}

	return &Table{Body: b.String(), RowCount: n}, nil
}

func renderPruned(columns []database.Column, buf Buffer, nullText string) *Table {
	var header, separator strings.Builder
	kept := make([]int, 0, len(columns))
	for i, col := range columns {
		if !columnHasValue(buf, i) {
			continue
		}
		kept = append(kept, i)
		formatCell(&header, headerLabel(col), col.DisplayWidth)
		writeSeparatorSegment(&separator, col.DisplayWidth)
	}
	header.WriteString("|\n")
	separator.WriteString("+\n")
	sep := separator.String()

	var b strings.Builder
	b.WriteString(sep)
	b.WriteString(header.String())
	for _, row := range buf {
		b.WriteString(sep)
		for _, i := range kept {
			formatCell(&b, cellText(row[i], nullText), columns[i].DisplayWidth)
		}
		b.WriteString("|\n")
	}

	return &Table{Body: b.String(), RowCount: len(buf)}
}

// KeptColumns returns the indexes, in order, of the columns holding at
// least one non-null cell in buf.
func KeptColumns(columns []database.Column, buf Buffer) []int {
	kept := make([]int, 0, len(columns))
	for i := range columns {
		if columnHasValue(buf, i) {
			kept = append(kept, i)
		}
	}
	return kept
}

func columnHasValue(buf Buffer, i int) bool {
	for _, row := range buf {
		if row[i].Valid {
			return true
		}
	}
	return false
}

// formatCell writes "| ", value right-aligned to width, and a trailing
// space. Values wider than width are written whole.
func formatCell(b *strings.Builder, value string, width int) {
	b.WriteString("| ")
	if pad := width - utf8.RuneCountInString(value); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(value)
	b.WriteByte(' ')
}

func separatorLine(columns []database.Column) string {
	var b strings.Builder
	for _, col := range columns {
		writeSeparatorSegment(&b, col.DisplayWidth)
	}
	b.WriteString("+\n")
	return b.String()
}

func writeSeparatorSegment(b *strings.Builder, width int) {
	b.WriteByte('+')
	b.WriteString(strings.Repeat("-", width+2))
}

// headerLabel returns the column label cut to the display width.
func headerLabel(col database.Column) string {
	if utf8.RuneCountInString(col.Label) <= col.DisplayWidth {
		return col.Label
	}
	if col.DisplayWidth <= 0 {
		return ""
	}
	return string([]rune(col.Label)[:col.DisplayWidth])
}

func cellText(v sql.NullString, nullText string) string {
	if !v.Valid {
		return nullText
	}
	return v.String
}
