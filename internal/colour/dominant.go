package colour

import (
	"fmt"
	"image"
	"math"

	"github.com/cenkalti/dominantcolor"
)

// swatchTile is the side length in pixels of one palette colour in the swatch.
const swatchTile = 4

// DominantReducer reduces a palette to its most dominant colours by rendering
// it as a swatch and analysing that image.
type DominantReducer struct {
	k int
}

// NewDominantReducer creates a DominantReducer keeping at most k colours.
func NewDominantReducer(k int) *DominantReducer {
	return &DominantReducer{k: k}
}

// Reduce finds the dominant colours of the palette swatch and maps each
// palette colour to the nearest one in Lab space.
func (r *DominantReducer) Reduce(p *Palette) (*Palette, DominantMap, error) {
	if p.Len() == 0 {
		return nil, nil, fmt.Errorf("cannot reduce an empty palette")
	}

	found := dominantcolor.FindWeight(renderSwatch(p), min(r.k, p.Len()))
	if len(found) == 0 {
		return nil, nil, fmt.Errorf("no dominant colours found in palette of %d colours", p.Len())
	}

	reps := make([]RGB, 0, len(found))
	for _, c := range found {
		reps = append(reps, RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
	}

	reduced := NewPalette()
	mapping := make(DominantMap, p.Len())
	for _, c := range p.Colors {
		rep := nearest(c, reps)
		reduced.Add(rep)
		mapping[c] = rep
	}

	return reduced, mapping, nil
}

// renderSwatch lays the palette out on a square grid of equal tiles, cycling
// through the colours so each one covers the same area.
func renderSwatch(p *Palette) *image.NRGBA {
	cols := int(math.Ceil(math.Sqrt(float64(p.Len()))))
	side := cols * swatchTile
	img := image.NewNRGBA(image.Rect(0, 0, side, side))

	for cell := 0; cell < cols*cols; cell++ {
		c := p.Colors[cell%p.Len()].Opaque()
		x0 := (cell % cols) * swatchTile
		y0 := (cell / cols) * swatchTile
		for y := y0; y < y0+swatchTile; y++ {
			for x := x0; x < x0+swatchTile; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}
