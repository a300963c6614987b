// Package sentiment runs the palette sentiment pipeline on a circular avatar:
// extraction, optional dominant reduction, classification and, for sad
// palettes, recolouring.
package sentiment

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/happyavatar/internal/colour"
	"github.com/jmylchreest/happyavatar/internal/logging"
)

// DefaultDominantThreshold is the palette size above which the palette is
// reduced before classification.
const DefaultDominantThreshold = 15

// RemapPolicy decides when a sad palette is recoloured.
type RemapPolicy string

const (
	// PolicyStrict only recolours palettes with fewer than two colours.
	PolicyStrict RemapPolicy = "strict"

	// PolicyAlways recolours every sad palette that was not reduced.
	PolicyAlways RemapPolicy = "always"
)

// ValidPolicies returns the known remap policies.
func ValidPolicies() []RemapPolicy {
	return []RemapPolicy{PolicyStrict, PolicyAlways}
}

// ParsePolicy converts a policy name.
func ParsePolicy(s string) (RemapPolicy, error) {
	for _, p := range ValidPolicies() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown remap policy: %s (valid policies: %v)", s, ValidPolicies())
}

// Result is the outcome of a sentiment run.
type Result struct {
	IsHappy bool
	// Palette holds the distinct visible colours in scan order.
	Palette *colour.Palette
	// Dominants is the palette that was classified. It is Palette itself
	// unless the palette was reduced.
	Dominants *colour.Palette
	// DominantMap is empty unless the palette was reduced.
	DominantMap colour.DominantMap
	// Remap lists the replacements applied, if any.
	Remap    colour.RemapTable
	Remapped bool
	// Recoloured is the number of pixels changed by the remap.
	Recoloured int
	Extract    colour.ExtractStats
}

// Options configures an Analyser. Zero values select the defaults.
type Options struct {
	CanvasSize        int
	DominantThreshold int
	Reducer           colour.Reducer
	Classifier        colour.Classifier
	Picker            colour.ColourPicker
	Policy            RemapPolicy
	Logger            hclog.Logger
}

// Analyser runs the sentiment pipeline. It holds no per-image state; each
// call works on the image it is given.
type Analyser struct {
	circle     colour.Circle
	threshold  int
	reducer    colour.Reducer
	classifier colour.Classifier
	picker     colour.ColourPicker
	policy     RemapPolicy
	log        hclog.Logger
}

// NewAnalyser creates an Analyser. A Picker is required since remapping
// needs a source of replacement colours.
func NewAnalyser(opts Options) (*Analyser, error) {
	if opts.Picker == nil {
		return nil, fmt.Errorf("analyser needs a colour picker")
	}
	if opts.CanvasSize == 0 {
		opts.CanvasSize = colour.DefaultCanvasSize
	}
	if opts.CanvasSize < 2 {
		return nil, fmt.Errorf("canvas size must be at least 2, got %d", opts.CanvasSize)
	}
	if opts.DominantThreshold == 0 {
		opts.DominantThreshold = DefaultDominantThreshold
	}
	if opts.Reducer == nil {
		opts.Reducer = colour.NewKMeansReducer(colour.DefaultReducerColours)
	}
	if opts.Policy == "" {
		opts.Policy = PolicyStrict
	}
	if _, err := ParsePolicy(string(opts.Policy)); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	return &Analyser{
		circle:     colour.NewCircle(opts.CanvasSize),
		threshold:  opts.DominantThreshold,
		reducer:    opts.Reducer,
		classifier: opts.Classifier,
		picker:     opts.Picker,
		policy:     opts.Policy,
		log:        opts.Logger,
	}, nil
}

// Circle returns the mask the analyser applies.
func (a *Analyser) Circle() colour.Circle {
	return a.circle
}

// GetPaletteSentiment extracts the palette of img, classifies it and, when it
// is sad and the remap gate opens, recolours img in place.
//
// Under every policy a sad palette with fewer than two colours is
// recoloured. PolicyAlways additionally recolours larger sad palettes that
// were not reduced.
func (a *Analyser) GetPaletteSentiment(img *image.NRGBA) (Result, error) {
	defer logging.Timed(a.log, "palette sentiment")()
	a.log.Info("checking whether the palette colours are happy")

	palette, stats, err := colour.ExtractPalette(img, a.circle)
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract palette: %w", err)
	}
	if stats.OpaqueOutside {
		a.log.Info("non-transparent pixel found outside the circle", "pixel", stats.FirstOpaque, "masked", stats.Masked)
	} else {
		a.log.Info("no non-transparent pixels outside the circle")
	}
	a.log.Info("palette colours found", "count", palette.Len())

	result := Result{
		Palette:     palette,
		Dominants:   palette,
		DominantMap: colour.DominantMap{},
		Extract:     stats,
	}

	if palette.Len() > a.threshold {
		reduced, mapping, err := a.reducer.Reduce(palette)
		if err != nil {
			return Result{}, fmt.Errorf("failed to reduce palette of %d colours: %w", palette.Len(), err)
		}
		a.log.Debug("palette reduced", "from", palette.Len(), "to", reduced.Len())
		result.Dominants = reduced
		result.DominantMap = mapping
	}

	result.IsHappy = colour.Aggregate(a.classifier.Verdicts(result.Dominants))
	a.log.Info("palette classified", "happy", result.IsHappy)

	if result.IsHappy {
		return result, nil
	}

	switch {
	case palette.Len() < 2:
		a.log.Info("sad palette with a single colour, remapping")
		if err := a.remap(img, &result); err != nil {
			return Result{}, err
		}
	case a.policy == PolicyAlways:
		if err := a.MakeHappy(img, &result); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}

// MakeHappy recolours the sad colours of a previous result. Reduced palettes
// are left untouched.
func (a *Analyser) MakeHappy(img *image.NRGBA, result *Result) error {
	if len(result.DominantMap) > 0 {
		a.log.Info("clustering was applied, leaving dominant colours untouched")
		return nil
	}
	return a.remap(img, result)
}

// HappyOrSwap runs GetPaletteSentiment and, if the palette is still sad and
// nothing was recoloured, applies MakeHappy.
func (a *Analyser) HappyOrSwap(img *image.NRGBA) (Result, error) {
	result, err := a.GetPaletteSentiment(img)
	if err != nil {
		return Result{}, err
	}
	a.log.Debug("dominant colours", "palette", result.Dominants.ToHex())

	if !result.IsHappy && !result.Remapped {
		a.log.Info("image is not happy")
		if err := a.MakeHappy(img, &result); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

func (a *Analyser) remap(img *image.NRGBA, result *Result) error {
	table := colour.RemapSadColours(result.Palette, a.classifier, a.picker)
	a.log.Info("swapping colours", "map", table.String())

	n, err := colour.ApplyRemap(img, table, a.circle)
	if err != nil {
		return fmt.Errorf("failed to apply remap: %w", err)
	}
	a.log.Debug("pixels recoloured", "count", n)

	result.Remap = table
	result.Remapped = true
	result.Recoloured = n
	return nil
}
