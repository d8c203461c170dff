package models

import (
	"strings"
	"testing"
)

func TestActivityValidate(t *testing.T) {
	base := Activity{Name: "Reading", Icon: "reading", Color: ColorBlue}
	if err := base.Validate(); err != nil {
		t.Errorf("valid activity rejected: %v", err)
	}

	tests := []struct {
		name     string
		activity Activity
	}{
		{"empty name", Activity{Name: "", Color: ColorBlue}},
		{"whitespace name", Activity{Name: "   ", Color: ColorBlue}},
		{"name over limit", Activity{Name: strings.Repeat("a", 21), Color: ColorBlue}},
		{"color outside palette", Activity{Name: "Reading", Color: Color("red")}},
		{"empty color", Activity{Name: "Reading", Color: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.activity.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestActivityValidateCountsRunes(t *testing.T) {
	// 20 Hangul syllables are 20 characters, not 60 bytes.
	a := Activity{Name: strings.Repeat("가", 20), Color: ColorGreen}
	if err := a.Validate(); err != nil {
		t.Errorf("20-rune name rejected: %v", err)
	}
	a.Name = strings.Repeat("가", 21)
	if err := a.Validate(); err == nil {
		t.Error("21-rune name accepted")
	}
}

func TestValidColor(t *testing.T) {
	for _, c := range Palette {
		if !ValidColor(c) {
			t.Errorf("palette color %q rejected", c)
		}
	}
	for _, c := range []Color{"red", "BLUE", ""} {
		if ValidColor(c) {
			t.Errorf("non-palette color %q accepted", c)
		}
	}
}

func TestPaletteOrder(t *testing.T) {
	want := []Color{ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange}
	if len(Palette) != len(want) {
		t.Fatalf("palette has %d colors, want %d", len(Palette), len(want))
	}
	for i, c := range want {
		if Palette[i] != c {
			t.Errorf("palette[%d] = %q, want %q", i, Palette[i], c)
		}
	}
}
