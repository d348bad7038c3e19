package kube_test

import (
	"sort"
	"strings"
)

// sortedLines sorts the newline-terminated lines of s.
func sortedLines(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	sort.Strings(lines)

	return strings.Join(lines, "\n") + "\n"
}
