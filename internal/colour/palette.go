// Package colour provides palette extraction, hue classification and colour
// remapping for circular avatars.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"
)

// RGB represents an alpha-agnostic colour. Palette entries are compared on
// these three channels only.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// IsGrey reports whether all three channels are equal.
func (rgb RGB) IsGrey() bool {
	return rgb.R == rgb.G && rgb.G == rgb.B
}

// Opaque returns the colour as a fully opaque pixel value.
func (rgb RGB) Opaque() color.NRGBA {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB, dropping alpha.
// Non-premultiplied values are read directly so that colours stored with a
// zero alpha keep their channels.
func ToRGB(c color.Color) RGB {
	if n, ok := c.(color.NRGBA); ok {
		return RGB{R: n.R, G: n.G, B: n.B}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#rrggbb" or "rrggbb" into an RGB value.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Palette is an ordered set of distinct colours. Insertion order is kept.
type Palette struct {
	Colors []RGB
	seen   map[RGB]struct{}
}

// NewPalette creates a new Palette from the given colours, dropping repeats.
func NewPalette(colors ...RGB) *Palette {
	p := &Palette{
		Colors: make([]RGB, 0, len(colors)),
		seen:   make(map[RGB]struct{}, len(colors)),
	}
	for _, c := range colors {
		p.Add(c)
	}
	return p
}

// Add appends c if it is not already present and reports whether it was added.
func (p *Palette) Add(c RGB) bool {
	if p.seen == nil {
		p.seen = make(map[RGB]struct{}, len(p.Colors))
		for _, existing := range p.Colors {
			p.seen[existing] = struct{}{}
		}
	}
	if _, ok := p.seen[c]; ok {
		return false
	}
	p.seen[c] = struct{}{}
	p.Colors = append(p.Colors, c)
	return true
}

// Contains reports whether c is in the palette.
func (p *Palette) Contains(c RGB) bool {
	if p.seen == nil {
		return slices.Contains(p.Colors, c)
	}
	_, ok := p.seen[c]
	return ok
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Colors)
}

// ToHex converts the palette colors to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents a color in JSON output format.
type ColorJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// JSON returns the JSON shape of the palette.
func (p *Palette) JSON() PaletteJSON {
	colors := make([]ColorJSON, p.Len())
	for i, c := range p.Colors {
		colors[i] = ColorJSON{Hex: c.Hex(), RGB: c}
	}
	return PaletteJSON{Count: len(colors), Colors: colors}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSON(), "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if p.Len() == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return result
}

// All returns an iterator over all colors in the palette.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}
