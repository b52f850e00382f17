package app

import "strings"

// updateKeywords mark a statement as mutating when they appear anywhere in
// it, including inside literals and identifiers.
var updateKeywords = []string{"upsert", "delete", "drop", "create"}

// IsUpdate reports whether stmt should run through Exec rather than Query.
func IsUpdate(stmt string) bool {
	lower := strings.ToLower(stmt)
	for _, kw := range updateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
