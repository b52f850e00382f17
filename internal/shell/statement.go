package shell

import (
	"strings"
	"unicode"
)

const (
	terminator    = ";"
	tablesCommand = "!tables"
)

// Accumulator collects input lines until one ends with the statement
// terminator.
type Accumulator struct {
	lines []string
}

// Add appends line. When line completes a statement, Add returns the
// statement without its terminator and resets the accumulator. Lines are
// joined with a single space.
func (a *Accumulator) Add(line string) (string, bool) {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if !strings.HasSuffix(trimmed, terminator) {
		if strings.TrimSpace(line) != "" {
			a.lines = append(a.lines, trimmed)
		}
		return "", false
	}

	a.lines = append(a.lines, strings.TrimSuffix(trimmed, terminator))
	stmt := strings.TrimSpace(strings.Join(a.lines, " "))
	a.lines = nil
	return stmt, stmt != ""
}

// Pending reports whether a statement has been started but not terminated.
func (a *Accumulator) Pending() bool {
	return len(a.lines) > 0
}

// Reset drops the pending statement.
func (a *Accumulator) Reset() {
	a.lines = nil
}

// IsQuit reports whether line asks to leave the shell.
func IsQuit(line string) bool {
	switch strings.TrimSpace(line) {
	case "quit", "exit":
		return true
	}
	return false
}

// BatchStatement joins command-line arguments into one statement and strips
// a trailing terminator.
func BatchStatement(args []string) string {
	stmt := strings.TrimSpace(strings.Join(args, " "))
	return strings.TrimSpace(strings.TrimSuffix(stmt, terminator))
}
