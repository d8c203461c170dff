package icons

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Morning Run", "running"},
		{"달리기", "running"},
		{"독서 30분", "reading"},
		{"Read a book", "reading"},
		{"Side project coding", "coding"},
		{"물마시기", "water"},
		{"Evening Yoga", "yoga"},
		{"Practice guitar", "guitar"},
		{"Daily review", "target"},
		{"", "target"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.name); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// "운동" appears before "요가" in the table, so a name containing both
	// resolves to the earlier row.
	if got := Resolve("운동 후 요가"); got != "workout" {
		t.Errorf("Resolve() = %q, want %q", got, "workout")
	}
}

func TestGlyph(t *testing.T) {
	if got := Glyph("reading"); got != "📚" {
		t.Errorf("Glyph(reading) = %q, want 📚", got)
	}
	if got := Glyph("no-such-key"); got != DefaultGlyph {
		t.Errorf("Glyph(unknown) = %q, want default %q", got, DefaultGlyph)
	}
	if got := Glyph(DefaultKey); got != DefaultGlyph {
		t.Errorf("Glyph(%s) = %q, want %q", DefaultKey, got, DefaultGlyph)
	}
}

func TestValid(t *testing.T) {
	for _, key := range []string{"running", "reading", DefaultKey} {
		if !Valid(key) {
			t.Errorf("Valid(%q) = false, want true", key)
		}
	}
	if Valid("sparkles") {
		t.Error("Valid(sparkles) = true, want false")
	}
}

func TestKeysCoverTable(t *testing.T) {
	keys := Keys()
	if len(keys) != len(table) {
		t.Fatalf("Keys() returned %d entries, table has %d", len(keys), len(table))
	}
	for _, k := range keys {
		if Glyph(k) == DefaultGlyph && k != DefaultKey {
			t.Errorf("key %q has no glyph", k)
		}
	}
}
