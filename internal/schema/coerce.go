package schema

import (
	"strconv"
	"strings"
	"time"
)

// Layouts HTML date and datetime-local inputs actually produce, most precise first.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Coerce normalizes a flat field map against the descriptor's columns so that
// loosely typed form input can be written through a typed schema:
//
//   - a blank string in a nullable column becomes an explicit nil;
//   - Float/Integer/DateTime strings are parsed, keeping the raw string when the
//     parse fails so the persistence layer rejects it instead of this function;
//   - Boolean strings map {"true","1","on","yes"} (any case) to true, everything
//     else to false;
//   - relationship field names are removed unconditionally.
//
// Non-string values and keys outside the column list pass through untouched.
// The input map is not modified.
func Coerce(raw map[string]any, desc Descriptor) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, col := range desc.Columns {
		v, ok := out[col.Name]
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			continue
		}
		if strings.TrimSpace(s) == "" && col.Nullable {
			out[col.Name] = nil
			continue
		}
		switch col.Type {
		case Float:
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				out[col.Name] = f
			}
		case Integer:
			if n, err := strconv.Atoi(s); err == nil {
				out[col.Name] = n
			}
		case DateTime:
			if t, ok := parseDateTime(s); ok {
				out[col.Name] = t
			}
		case Boolean:
			switch strings.ToLower(s) {
			case "true", "1", "on", "yes":
				out[col.Name] = true
			default:
				out[col.Name] = false
			}
		}
	}
	for _, rel := range desc.Relations {
		delete(out, rel)
	}
	return out
}

// parseDateTime accepts the ISO-8601 variants browsers emit. A trailing literal
// "Z" is rewritten to "+00:00" first, matching how UTC markers arrive from
// datetime-local clients.
func parseDateTime(s string) (time.Time, bool) {
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
