package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HueBand is a half-open hue interval [Start, End) in turns (degrees/360).
type HueBand struct {
	Name       string
	Start, End float64
}

// Contains reports whether h falls inside the band.
func (b HueBand) Contains(h float64) bool {
	return b.Start <= h && h < b.End
}

// HappyHueBands are the hue ranges considered happy. Together they cover the
// whole hue circle, so every chromatic colour is happy unless legacy gating
// is enabled.
var HappyHueBands = []HueBand{
	{Name: "red", Start: 0, End: 15.0 / 360},
	{Name: "red", Start: 345.0 / 360, End: 1},
	{Name: "orange", Start: 15.0 / 360, End: 45.0 / 360},
	{Name: "yellow", Start: 45.0 / 360, End: 75.0 / 360},
	{Name: "green", Start: 75.0 / 360, End: 170.0 / 360},
	{Name: "blue", Start: 170.0 / 360, End: 260.0 / 360},
	{Name: "pink", Start: 260.0 / 360, End: 345.0 / 360},
}

// Legacy gating thresholds on HSV value and saturation.
const (
	legacyMinValue      = 0.3
	legacyMaxValue      = 0.8
	legacyMinSaturation = 0.2
)

// Hue returns the hue of c in [0, 1). The second result is false for grey
// colours, which have no hue.
func Hue(c RGB) (float64, bool) {
	if c.IsGrey() {
		return 0, false
	}

	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	var h float64
	switch {
	case r >= g && r >= b:
		h = (g - b) / (r - math.Min(g, b))
	case g >= r && g >= b:
		h = 2 + (b-r)/(g-math.Min(r, b))
	default:
		h = 4 + (r-g)/(b-math.Min(r, g))
	}

	return floorMod(h/6, 1), true
}

// floorMod returns x mod m with the sign of m.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

// Classifier decides whether a single colour is happy.
type Classifier struct {
	// Bands overrides HappyHueBands when non-empty.
	Bands []HueBand
	// LegacyGating also rejects colours that are too dark, too light or too
	// desaturated.
	LegacyGating bool
}

// IsHappy reports whether c reads as happy. Grey colours never do.
func (cl Classifier) IsHappy(c RGB) bool {
	h, ok := Hue(c)
	if !ok {
		return false
	}

	if cl.LegacyGating {
		_, s, v := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hsv()
		if v < legacyMinValue || v > legacyMaxValue || s < legacyMinSaturation {
			return false
		}
	}

	bands := cl.Bands
	if len(bands) == 0 {
		bands = HappyHueBands
	}
	for _, band := range bands {
		if band.Contains(h) {
			return true
		}
	}
	return false
}

// IsHappy classifies c with the default classifier.
func IsHappy(c RGB) bool {
	return Classifier{}.IsHappy(c)
}

// Verdicts classifies every colour of p in order.
func (cl Classifier) Verdicts(p *Palette) []bool {
	verdicts := make([]bool, p.Len())
	for i, c := range p.Colors {
		verdicts[i] = cl.IsHappy(c)
	}
	return verdicts
}
