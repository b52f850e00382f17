package shell

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// maxHistory is the number of entries kept in the history file.
const maxHistory = 1000

// History holds previously entered lines and a browsing position.
type History struct {
	path    string
	entries []string
	pos     int
}

// LoadHistory reads the history file at path. A missing or unreadable file
// starts an empty history; an empty path disables persistence.
func LoadHistory(path string) *History {
	h := &History{path: path}
	if path != "" {
		if f, err := os.Open(path); err == nil {
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				if line := scanner.Text(); line != "" {
					h.entries = append(h.entries, line)
				}
			}
			f.Close()
		}
	}
	h.pos = len(h.entries)
	return h
}

// Add records line and resets browsing to the end.
func (h *History) Add(line string) {
	line = strings.TrimSpace(line)
	if line != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != line) {
		h.entries = append(h.entries, line)
	}
	h.pos = len(h.entries)
}

// Prev moves one entry back. It returns current when already at the oldest
// entry.
func (h *History) Prev(current string) string {
	if h.pos == 0 || len(h.entries) == 0 {
		return current
	}
	h.pos--
	return h.entries[h.pos]
}

// Next moves one entry forward; past the newest entry it returns "".
func (h *History) Next() string {
	if h.pos >= len(h.entries)-1 {
		h.pos = len(h.entries)
		return ""
	}
	h.pos++
	return h.entries[h.pos]
}

// Save writes the most recent entries to the history file.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}
	entries := h.entries
	if len(entries) > maxHistory {
		entries = entries[len(entries)-maxHistory:]
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
