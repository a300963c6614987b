package colour

import (
	"math"
	"testing"
)

func TestHue(t *testing.T) {
	tests := []struct {
		name    string
		rgb     RGB
		want    float64
		wantHue bool
	}{
		{name: "red", rgb: RGB{R: 255}, want: 0, wantHue: true},
		{name: "yellow", rgb: RGB{R: 255, G: 255}, want: 1.0 / 6, wantHue: true},
		{name: "green", rgb: RGB{G: 255}, want: 1.0 / 3, wantHue: true},
		{name: "cyan", rgb: RGB{G: 255, B: 255}, want: 0.5, wantHue: true},
		{name: "blue", rgb: RGB{B: 255}, want: 2.0 / 3, wantHue: true},
		{name: "magenta", rgb: RGB{R: 255, B: 255}, want: 5.0 / 6, wantHue: true},
		{name: "orange", rgb: RGB{R: 255, G: 165}, want: 165.0 / 255 / 6, wantHue: true},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: 0, wantHue: false},
		{name: "black", rgb: RGB{}, want: 0, wantHue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Hue(tt.rgb)
			if ok != tt.wantHue {
				t.Fatalf("Hue(%v) chromatic = %v, want %v", tt.rgb, ok, tt.wantHue)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Hue(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestHueRange(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 5 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				h, ok := Hue(c)
				if !ok {
					continue
				}
				if h < 0 || h >= 1 {
					t.Fatalf("Hue(%v) = %v, want value in [0, 1)", c, h)
				}
			}
		}
	}
}

func TestIsHappy(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want bool
	}{
		{name: "red", rgb: RGB{R: 255}, want: true},
		{name: "green", rgb: RGB{G: 255}, want: true},
		{name: "dark blue", rgb: RGB{B: 30}, want: true},
		{name: "pale pink", rgb: RGB{R: 250, G: 240, B: 245}, want: true},
		{name: "mid grey", rgb: RGB{R: 128, G: 128, B: 128}, want: false},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: false},
		{name: "black", rgb: RGB{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHappy(tt.rgb); got != tt.want {
				t.Errorf("IsHappy(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestIsHappyEveryChromaticColour(t *testing.T) {
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 3 {
			for b := 0; b < 256; b += 3 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				if got, want := IsHappy(c), !c.IsGrey(); got != want {
					t.Fatalf("IsHappy(%v) = %v, want %v", c, got, want)
				}
			}
		}
	}
}

func TestIsHappyLegacyGating(t *testing.T) {
	cl := Classifier{LegacyGating: true}
	tests := []struct {
		name string
		rgb  RGB
		want bool
	}{
		{name: "vivid mid red", rgb: RGB{R: 200}, want: true},
		{name: "too dark", rgb: RGB{R: 20}, want: false},
		{name: "too bright", rgb: RGB{R: 255}, want: false},
		{name: "too desaturated", rgb: RGB{R: 180, G: 170, B: 170}, want: false},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cl.IsHappy(tt.rgb); got != tt.want {
				t.Errorf("IsHappy(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestClassifierCustomBands(t *testing.T) {
	cl := Classifier{Bands: []HueBand{{Name: "warm", Start: 0, End: 0.2}}}
	if !cl.IsHappy(RGB{R: 255}) {
		t.Error("expected red to be happy with a warm band")
	}
	if cl.IsHappy(RGB{B: 255}) {
		t.Error("expected blue to be sad with a warm band")
	}
}

func TestVerdicts(t *testing.T) {
	p := NewPalette(RGB{R: 255}, RGB{R: 9, G: 9, B: 9}, RGB{G: 255})
	got := Classifier{}.Verdicts(p)
	want := []bool{true, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Verdicts()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
