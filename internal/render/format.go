package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
	"github.com/olekukonko/tablewriter"
)

// DisplayFormat selects how a result set is printed.
type DisplayFormat int

const (
	// FormatTable is the bordered, display-width aligned grid.
	FormatTable DisplayFormat = iota
	// FormatPretty lets tablewriter size the columns from the data.
	FormatPretty
	FormatCSV
	FormatTSV
)

var formatNames = map[DisplayFormat]string{
	FormatTable:  "table",
	FormatPretty: "pretty",
	FormatCSV:    "csv",
	FormatTSV:    "tsv",
}

func (f DisplayFormat) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFormat returns the DisplayFormat named s.
func ParseFormat(s string) (DisplayFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatTable, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatTable, fmt.Errorf("unknown display format %q", s)
}

// Encode writes rows to w in the given format and returns the number of rows
// written. Formats other than FormatTable always materialize the result.
func Encode(w io.Writer, format DisplayFormat, columns []database.Column, rows database.Rows, opts Options) (int, error) {
	if format == FormatTable {
		t, err := Render(columns, rows, opts)
		if err != nil {
			return 0, err
		}
		if _, err := io.WriteString(w, t.Body); err != nil {
			return 0, err
		}
		return t.RowCount, nil
	}

	buf, err := materialize(rows, len(columns))
	if err != nil {
		return 0, err
	}
	kept := allColumns(columns)
	if opts.PruneAllNullColumns {
		kept = KeptColumns(columns, buf)
	}
	header := make([]string, len(kept))
	for j, i := range kept {
		header[j] = columns[i].Label
	}

	switch format {
	case FormatPretty:
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(header)
		for _, row := range buf {
			table.Append(project(row, kept, opts.NullText))
		}
		table.Render()

	case FormatCSV, FormatTSV:
		cw := csv.NewWriter(w)
		if format == FormatTSV {
			cw.Comma = '\t'
		}
		if err := cw.Write(header); err != nil {
			return 0, err
		}
		for _, row := range buf {
			if err := cw.Write(project(row, kept, opts.NullText)); err != nil {
				return 0, err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return 0, err
		}

	default:
		return 0, fmt.Errorf("unknown display format %d", int(format))
	}
	return len(buf), nil
}

func allColumns(columns []database.Column) []int {
	idx := make([]int, len(columns))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func project(row database.Row, kept []int, nullText string) []string {
	out := make([]string, len(kept))
	for j, i := range kept {
		out[j] = cellText(row[i], nullText)
	}
	return out
}
