package schema

import (
	"testing"
	"time"
)

var quoteDesc = Descriptor{
	Name:     "quotes",
	Singular: "quote",
	Columns: []Column{
		{Name: "id", Type: Text},
		{Name: "quote_number", Type: Text},
		{Name: "status", Type: Text},
		{Name: "total_amount", Type: Float},
		{Name: "valid_until", Type: DateTime, Nullable: true},
		{Name: "created_at", Type: DateTime},
		{Name: "project_id", Type: Text},
	},
	Relations: []string{"project", "quoteitems", "receipts"},
}

func TestCoerceFloat(t *testing.T) {
	out := Coerce(map[string]any{"total_amount": "1500.50"}, quoteDesc)
	f, ok := out["total_amount"].(float64)
	if !ok {
		t.Fatalf("total_amount = %#v, want float64", out["total_amount"])
	}
	if f != 1500.5 {
		t.Errorf("total_amount = %v, want 1500.5", f)
	}
}

func TestCoerceFloatBadInputKeptAsString(t *testing.T) {
	out := Coerce(map[string]any{"total_amount": "abc"}, quoteDesc)
	if out["total_amount"] != "abc" {
		t.Errorf("total_amount = %#v, want unparsed string to pass through", out["total_amount"])
	}
}

func TestCoerceInteger(t *testing.T) {
	desc := Descriptor{Columns: []Column{{Name: "count", Type: Integer}}}
	out := Coerce(map[string]any{"count": "42"}, desc)
	if out["count"] != 42 {
		t.Errorf("count = %#v, want 42", out["count"])
	}
}

func TestCoerceBlankNullableBecomesNil(t *testing.T) {
	out := Coerce(map[string]any{"valid_until": "   "}, quoteDesc)
	v, ok := out["valid_until"]
	if !ok {
		t.Fatal("valid_until missing from output")
	}
	if v != nil {
		t.Errorf("valid_until = %#v, want nil", v)
	}
}

func TestCoerceBlankNonNullableUntouched(t *testing.T) {
	out := Coerce(map[string]any{"status": ""}, quoteDesc)
	if out["status"] != "" {
		t.Errorf("status = %#v, want empty string preserved", out["status"])
	}
}

func TestCoerceBoolean(t *testing.T) {
	desc := Descriptor{Columns: []Column{{Name: "is_active", Type: Boolean}}}
	for _, s := range []string{"true", "True", "1", "on", "ON", "yes", "YES"} {
		out := Coerce(map[string]any{"is_active": s}, desc)
		if out["is_active"] != true {
			t.Errorf("Coerce(%q) = %#v, want true", s, out["is_active"])
		}
	}
	for _, s := range []string{"false", "0", "off", "no", "nope", "2"} {
		out := Coerce(map[string]any{"is_active": s}, desc)
		if out["is_active"] != false {
			t.Errorf("Coerce(%q) = %#v, want false", s, out["is_active"])
		}
	}
}

func TestCoerceDateTimeLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01T10:30:00+02:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.FixedZone("", 2*3600))},
		{"2025-03-01T10:30:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-03-01T10:30", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		out := Coerce(map[string]any{"valid_until": tc.in}, quoteDesc)
		got, ok := out["valid_until"].(time.Time)
		if !ok {
			t.Fatalf("Coerce(%q) = %#v, want time.Time", tc.in, out["valid_until"])
		}
		if !got.Equal(tc.want) {
			t.Errorf("Coerce(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoerceDateTimeZuluEqualsOffset(t *testing.T) {
	zulu := Coerce(map[string]any{"valid_until": "2025-03-01T10:30:00Z"}, quoteDesc)
	offset := Coerce(map[string]any{"valid_until": "2025-03-01T10:30:00+00:00"}, quoteDesc)
	zt, ok := zulu["valid_until"].(time.Time)
	if !ok {
		t.Fatalf("Z input not parsed: %#v", zulu["valid_until"])
	}
	ot := offset["valid_until"].(time.Time)
	if !zt.Equal(ot) {
		t.Errorf("Z and +00:00 forms differ: %v vs %v", zt, ot)
	}
}

func TestCoerceDateTimeBadInputKeptAsString(t *testing.T) {
	out := Coerce(map[string]any{"valid_until": "not-a-date"}, quoteDesc)
	if out["valid_until"] != "not-a-date" {
		t.Errorf("valid_until = %#v, want unparsed string to pass through", out["valid_until"])
	}
}

func TestCoerceStripsRelations(t *testing.T) {
	out := Coerce(map[string]any{
		"quote_number": "Q-1",
		"project":      map[string]any{"id": "p1"},
		"quoteitems":   []any{},
		"receipts":     nil,
	}, quoteDesc)
	for _, rel := range []string{"project", "quoteitems", "receipts"} {
		if _, ok := out[rel]; ok {
			t.Errorf("relation %q survived coercion", rel)
		}
	}
	if out["quote_number"] != "Q-1" {
		t.Errorf("quote_number = %#v, want Q-1", out["quote_number"])
	}
}

func TestCoerceNonStringAndUnknownKeysPassThrough(t *testing.T) {
	out := Coerce(map[string]any{
		"total_amount": 99.9,
		"mystery":      "left alone",
	}, quoteDesc)
	if out["total_amount"] != 99.9 {
		t.Errorf("total_amount = %#v, want 99.9 untouched", out["total_amount"])
	}
	if out["mystery"] != "left alone" {
		t.Errorf("mystery = %#v, want pass-through", out["mystery"])
	}
}

func TestCoerceDoesNotMutateInput(t *testing.T) {
	raw := map[string]any{
		"total_amount": "12.5",
		"valid_until":  "",
		"project":      "p1",
	}
	_ = Coerce(raw, quoteDesc)
	if raw["total_amount"] != "12.5" {
		t.Errorf("input total_amount mutated: %#v", raw["total_amount"])
	}
	if raw["valid_until"] != "" {
		t.Errorf("input valid_until mutated: %#v", raw["valid_until"])
	}
	if _, ok := raw["project"]; !ok {
		t.Error("input relation key deleted")
	}
}

func TestDescriptorColumnLookup(t *testing.T) {
	col, ok := quoteDesc.Column("total_amount")
	if !ok || col.Type != Float {
		t.Errorf("Column(total_amount) = %+v, %v", col, ok)
	}
	if _, ok := quoteDesc.Column("nope"); ok {
		t.Error("Column(nope) reported found")
	}
}
