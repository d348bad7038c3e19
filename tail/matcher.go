package tail

import "strings"

// nameSeparator joins a workload name to the generated
// suffix of its pods (e.g. "web" -> "web-7f9c").
const nameSeparator = "-"

// Matches reports whether name is selected by any of the
// filters. A filter selects a name equal to itself or
// any name starting with the filter followed by "-".
func Matches(filters []string, name string) bool {
	for _, f := range filters {
		if name == f ||
			strings.HasPrefix(name, f+nameSeparator) {
			return true
		}
	}

	return false
}

// MatchPods returns the names selected by filters,
// preserving their order in names.
func MatchPods(filters, names []string) []string {
	var matched []string

	for _, name := range names {
		if Matches(filters, name) {
			matched = append(matched, name)
		}
	}

	return matched
}
