package utils

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF4444", color.RGBA{R: 0xFF, G: 0x44, B: 0x44, A: 0xFF}, false},
		{"#4444ff", color.RGBA{R: 0x44, G: 0x44, B: 0xFF, A: 0xFF}, false},
		{"#222", color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}, false},
		{"not-a-color", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePaletteReportsIndex(t *testing.T) {
	_, err := ParsePalette([]string{"#FF4444", "bogus"})
	if err == nil {
		t.Fatal("Expected error for invalid palette entry")
	}
	if got := err.Error(); len(got) < 10 || got[:10] != "palette[1]" {
		t.Errorf("Error should name the entry index, got %q", got)
	}
}

func TestShadeAndTint(t *testing.T) {
	base := color.RGBA{R: 0xFF, G: 0x44, B: 0x44, A: 0xC0}

	dark := Shade(base, 0.3)
	light := Tint(base, 0.3)

	lum := func(c color.RGBA) int { return int(c.R) + int(c.G) + int(c.B) }
	if lum(dark) >= lum(base) {
		t.Errorf("Shade should darken: %v -> %v", base, dark)
	}
	if lum(light) <= lum(base) {
		t.Errorf("Tint should lighten: %v -> %v", base, light)
	}
	if dark.A != base.A || light.A != base.A {
		t.Error("Alpha should be preserved")
	}
	if Shade(base, 0) != base {
		t.Errorf("Zero shade should keep the color, got %v", Shade(base, 0))
	}
}

func TestBlend(t *testing.T) {
	red := color.RGBA{R: 0xFF, G: 0x44, B: 0x44, A: 0xFF}
	bg := color.RGBA{R: 0xFF, G: 0xF4, B: 0xE8, A: 0xFF}

	if got := Blend(red, bg, 1); got != bg {
		t.Errorf("Full blend should reach the target, got %v", got)
	}
	if got := Blend(red, bg, 0); got != red {
		t.Errorf("Zero blend should keep the color, got %v", got)
	}
	half := Blend(red, bg, 0.5)
	if half.G <= red.G || half.G >= bg.G {
		t.Errorf("Half blend should sit between both colors, got %v", half)
	}
}

func TestRandomInRange(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 1000; i++ {
		v := RandomInRange(r, 8, 14)
		if v < 8 || v >= 14 {
			t.Fatalf("RandomInRange out of [8,14): %v", v)
		}
		s := RandomSigned(r, 40)
		if s < -40 || s >= 40 {
			t.Fatalf("RandomSigned out of [-40,40): %v", s)
		}
	}
	if v := RandomInRange(r, 5, 5); v != 5 {
		t.Errorf("Degenerate range should return min, got %v", v)
	}
}
