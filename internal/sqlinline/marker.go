// Package sqlinline holds every SQL statement the service runs. Each
// constant starts with a `--sql <uuid>` marker line so logs and lint tooling
// can refer to a statement without quoting its text.
package sqlinline

import (
	"fmt"
	"regexp"
	"strings"
)

var markerRegexp = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Marker splits an inline query into its identifying marker and the
// statement text. Queries without a marker are rejected.
func Marker(query string) (marker, statement string, err error) {
	trimmed := strings.TrimLeft(query, "\n")
	line, rest, found := strings.Cut(trimmed, "\n")
	if !found || !markerRegexp.MatchString(line) {
		return "", "", fmt.Errorf("sql query is missing its --sql marker")
	}
	return strings.TrimPrefix(line, "--sql "), rest, nil
}
