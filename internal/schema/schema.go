// Package schema embeds the database schema applied by cmd/migrate.
package schema

import (
	_ "embed"
	"strings"
)

//go:embed schema.sql
var source string

// Source returns the raw schema file.
func Source() string {
	return source
}

// Statements splits the schema into individual statements, dropping
// comments and blank lines. Statements must not contain semicolons inside
// string literals.
func Statements() []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}
