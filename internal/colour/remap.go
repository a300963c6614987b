package colour

import (
	"fmt"
	"image"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/image/colornames"
)

// NamedColour is a replacement colour and the name it was resolved from.
type NamedColour struct {
	Name string
	RGB  RGB
}

// DefaultHappyColourNames is the enumerated set of replacement colours.
func DefaultHappyColourNames() []string {
	return []string{"red", "blue", "yellow", "green", "pink", "orange"}
}

// ColourTable resolves colour names to RGB values.
type ColourTable map[string]RGB

// NewColourTable builds a table from CSS colour names, with hex overrides
// taking precedence.
func NewColourTable(overrides map[string]string) (ColourTable, error) {
	table := make(ColourTable, len(colornames.Map)+len(overrides))
	for name, c := range colornames.Map {
		table[name] = RGB{R: c.R, G: c.G, B: c.B}
	}
	for name, hex := range overrides {
		rgb, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("colour table entry %q: %w", name, err)
		}
		table[strings.ToLower(name)] = rgb
	}
	return table, nil
}

// Resolve looks up every name, failing on the first unknown one.
func (t ColourTable) Resolve(names []string) ([]NamedColour, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("happy colour set cannot be empty")
	}
	out := make([]NamedColour, 0, len(names))
	for _, name := range names {
		rgb, ok := t[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown colour name: %s", name)
		}
		out = append(out, NamedColour{Name: name, RGB: rgb})
	}
	return out, nil
}

// ColourPicker supplies replacement colours for sad colours.
type ColourPicker interface {
	Pick() NamedColour
}

// RandomPicker draws uniformly from a fixed colour set.
type RandomPicker struct {
	colours []NamedColour
	rng     *rand.Rand
}

// NewRandomPicker creates a picker over colours. A zero seed seeds from the
// clock.
func NewRandomPicker(colours []NamedColour, seed uint64) (*RandomPicker, error) {
	if len(colours) == 0 {
		return nil, fmt.Errorf("random picker needs at least one colour")
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomPicker{
		colours: colours,
		rng:     rand.New(rand.NewPCG(seed, seed>>1|1)),
	}, nil
}

// Pick returns a random colour from the set.
func (p *RandomPicker) Pick() NamedColour {
	return p.colours[p.rng.IntN(len(p.colours))]
}

// SequencePicker returns colours in a fixed order, wrapping around.
type SequencePicker struct {
	colours []NamedColour
	next    int
}

// NewSequencePicker creates a picker cycling through colours.
func NewSequencePicker(colours ...NamedColour) *SequencePicker {
	return &SequencePicker{colours: colours}
}

// Pick returns the next colour of the sequence.
func (p *SequencePicker) Pick() NamedColour {
	c := p.colours[p.next%len(p.colours)]
	p.next++
	return c
}

// RemapEntry pairs a sad colour with its replacement.
type RemapEntry struct {
	Sad         RGB
	Replacement NamedColour
}

// RemapTable is an ordered list of replacements.
type RemapTable []RemapEntry

// Lookup returns the replacement for c. When c appears more than once the
// last entry wins.
func (t RemapTable) Lookup(c RGB) (RGB, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Sad == c {
			return t[i].Replacement.RGB, true
		}
	}
	return RGB{}, false
}

// String formats the table as "sad->replacement" pairs.
func (t RemapTable) String() string {
	parts := make([]string, len(t))
	for i, e := range t {
		parts[i] = fmt.Sprintf("%s->%s", e.Sad.Hex(), e.Replacement.Name)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// RemapSadColours draws a replacement for every colour of p the classifier
// rejects. Each draw is independent.
func RemapSadColours(p *Palette, cl Classifier, picker ColourPicker) RemapTable {
	var table RemapTable
	for _, c := range p.Colors {
		if cl.IsHappy(c) {
			continue
		}
		table = append(table, RemapEntry{Sad: c, Replacement: picker.Pick()})
	}
	return table
}

// ApplyRemap recolours img in place. Visible pixels whose colour is in the
// table become the opaque replacement. Pixels outside the circle, and
// transparent black pixels inside it, become transparent white.
// It returns the number of recoloured pixels.
func ApplyRemap(img *image.NRGBA, table RemapTable, circle Circle) (int, error) {
	if err := checkCanvas(img, circle); err != nil {
		return 0, err
	}

	lookup := make(map[RGB]RGB, len(table))
	for _, e := range table {
		lookup[e.Sad] = e.Replacement.RGB
	}

	recoloured := 0
	for y := 0; y < circle.Size; y++ {
		for x := 0; x < circle.Size; x++ {
			px := img.NRGBAAt(x, y)
			if !circle.Contains(x, y) || px == transparentBlack {
				img.SetNRGBA(x, y, transparentWhite)
				continue
			}
			if rep, ok := lookup[RGB{R: px.R, G: px.G, B: px.B}]; ok {
				img.SetNRGBA(x, y, rep.Opaque())
				recoloured++
			}
		}
	}
	return recoloured, nil
}
