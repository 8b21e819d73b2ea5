package db

import (
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN accepts a URL style DSN (postgres://... or sqlite:///...), a
// lib/pq key=value list, or a bare sqlite file path. It trims quotes and
// whitespace and, if given key=value form, returns it cleaned with a default
// sslmode when missing.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if strings.HasPrefix(lower, "sqlite://") {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		// bare sqlite path or something the driver will reject on its own
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// IsSQLite reports whether the normalized DSN targets sqlite rather than postgres.
func IsSQLite(dsn string) bool {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "sqlite://"):
		return true
	case strings.HasPrefix(lower, "file:"):
		return true
	case strings.Contains(lower, ":memory:"):
		return true
	case strings.HasSuffix(lower, ".db"):
		return true
	}
	return false
}

// SQLitePath strips the sqlite URL scheme, keeping relative paths relative:
// "sqlite:///./database.db" becomes "./database.db".
func SQLitePath(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "sqlite:///"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		return rest
	}
	return dsn
}
