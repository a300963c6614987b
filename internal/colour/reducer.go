package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DominantMap maps an original palette colour to its representative.
type DominantMap map[RGB]RGB

// Reducer shrinks a large palette to a few representative colours.
type Reducer interface {
	// Reduce returns the representative colours and the mapping from every
	// colour of p to one of them.
	Reduce(p *Palette) (*Palette, DominantMap, error)
}

// ReducerKind names a reduction algorithm.
type ReducerKind string

const (
	// ReducerKMeans clusters palette colours in Lab space.
	ReducerKMeans ReducerKind = "kmeans"

	// ReducerDominant picks the most dominant colours of a palette swatch.
	ReducerDominant ReducerKind = "dominant"
)

// DefaultReducerColours is the number of representatives a reducer keeps.
const DefaultReducerColours = 8

// ValidReducers returns the list of known reducer names.
func ValidReducers() []ReducerKind {
	return []ReducerKind{ReducerKMeans, ReducerDominant}
}

// IsValidReducer checks if the given reducer name is known.
func IsValidReducer(kind ReducerKind) bool {
	for _, valid := range ValidReducers() {
		if kind == valid {
			return true
		}
	}
	return false
}

// NewReducer creates a Reducer keeping k representatives.
func NewReducer(kind ReducerKind, k int) (Reducer, error) {
	if k < 1 {
		return nil, fmt.Errorf("reducer colour count must be at least 1, got %d", k)
	}
	switch kind {
	case ReducerKMeans:
		return NewKMeansReducer(k), nil
	case ReducerDominant:
		return NewDominantReducer(k), nil
	default:
		return nil, fmt.Errorf("unknown reducer: %s (valid reducers: %v)", kind, ValidReducers())
	}
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// nearest returns the colour of candidates closest to c in Lab space.
func nearest(c RGB, candidates []RGB) RGB {
	target := toColorful(c)
	best := candidates[0]
	bestDist := math.MaxFloat64
	for _, cand := range candidates {
		if d := target.DistanceLab(toColorful(cand)); d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}
