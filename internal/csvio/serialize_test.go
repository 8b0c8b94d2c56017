package csvio

import (
	"reflect"
	"strings"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{
			name: "flat object unchanged",
			in:   map[string]any{"a": "1", "b": 2},
			want: map[string]any{"a": "1", "b": 2},
		},
		{
			name: "nested object gets dotted prefix",
			in:   map[string]any{"profile": map[string]any{"brand": "X", "model": "Y"}},
			want: map[string]any{"profile.brand": "X", "profile.model": "Y"},
		},
		{
			name: "three levels deep",
			in:   map[string]any{"a": map[string]any{"b": map[string]any{"c": "v"}}},
			want: map[string]any{"a.b.c": "v"},
		},
		{
			name: "array serialized as JSON string",
			in:   map[string]any{"tags": []any{"a", "b"}},
			want: map[string]any{"tags": `["a","b"]`},
		},
		{
			name: "empty array becomes empty string",
			in:   map[string]any{"tags": []any{}},
			want: map[string]any{"tags": ""},
		},
		{
			name: "nil stays nil",
			in:   map[string]any{"x": nil},
			want: map[string]any{"x": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSerialize_PageScenario(t *testing.T) {
	rows := []map[string]any{{"id": "1", "serialNumber": "MTR-001"}}

	got := Serialize(rows, []string{"serialNumber"})
	if got != "serialNumber\nMTR-001" {
		t.Errorf("Serialize() = %q, want %q", got, "serialNumber\nMTR-001")
	}
}

func TestSerialize_QuoteEscaping(t *testing.T) {
	rows := []map[string]any{{"note": `He said "hi", once`}}

	got := Serialize(rows, []string{"note"})
	want := "note\n\"He said \"\"hi\"\", once\""
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestEncodeField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain value never quoted", "abc", "abc"},
		{"comma forces quotes", "a,b", `"a,b"`},
		{"quote forces quotes and doubling", `a"b`, `"a""b"`},
		{"newline forces quotes", "a\nb", "\"a\nb\""},
		{"empty stays bare", "", ""},
		{"spaces alone not quoted", "a b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeField(tt.in); got != tt.want {
				t.Errorf("encodeField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSerialize_HeaderResolution(t *testing.T) {
	rows := []map[string]any{{"a": "1", "b": "2"}}

	tests := []struct {
		name       string
		selected   []string
		wantHeader string
	}{
		{"selected order preserved", []string{"b", "a"}, "b,a"},
		{"missing selected dropped", []string{"b", "zz"}, "b"},
		{"no overlap falls back to all", []string{"zz"}, "a,b"},
		{"nil selection uses all", nil, "a,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Serialize(rows, tt.selected)
			header := strings.SplitN(out, "\n", 2)[0]
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
		})
	}
}

func TestSerialize_NestedRows(t *testing.T) {
	rows := []map[string]any{
		{
			"serialNumber": "MTR-001",
			"profile":      map[string]any{"brand": "Baylan"},
			"module":       map[string]any{"serialNumber": nil},
		},
	}

	got := Serialize(rows, []string{"serialNumber", "profile.brand", "module.serialNumber"})
	want := "serialNumber,profile.brand,module.serialNumber\nMTR-001,Baylan,"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_Empty(t *testing.T) {
	if got := Serialize(nil, []string{"a"}); got != "" {
		t.Errorf("Serialize(nil) = %q, want empty", got)
	}
}

func TestSerialize_NumberFormatting(t *testing.T) {
	rows := []map[string]any{{"lat": 41.0082, "count": float64(12)}}

	got := Serialize(rows, []string{"lat", "count"})
	want := "lat,count\n41.0082,12"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

// Round trip: serialized values parse back to the same strings. The trip
// is lossy to strings by design; types are not restored.
func TestRoundTrip(t *testing.T) {
	rows := []map[string]any{
		{"name": `quoted "x"`, "detail": map[string]any{"note": "a,b", "n": 3.5}},
		{"name": "plain", "detail": map[string]any{"note": "", "n": nil}},
	}
	columns := []string{"name", "detail.note", "detail.n"}

	parsed, err := Parse(Serialize(rows, columns))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []map[string]string{
		{"name": `quoted "x"`, "detail.note": "a,b", "detail.n": "3.5"},
		{"name": "plain", "detail.note": "", "detail.n": ""},
	}
	if !reflect.DeepEqual(parsed, want) {
		t.Errorf("round trip = %v, want %v", parsed, want)
	}
}
