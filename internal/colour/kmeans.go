package colour

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KMeansReducer reduces a palette using k-means clustering in Lab space.
type KMeansReducer struct {
	k int
}

// NewKMeansReducer creates a KMeansReducer keeping at most k colours.
func NewKMeansReducer(k int) *KMeansReducer {
	return &KMeansReducer{k: k}
}

// Reduce clusters the palette colours. Each colour maps to the centre of the
// cluster it is nearest to.
func (r *KMeansReducer) Reduce(p *Palette) (*Palette, DominantMap, error) {
	if p.Len() == 0 {
		return nil, nil, fmt.Errorf("cannot reduce an empty palette")
	}

	dataset := make(clusters.Observations, 0, p.Len())
	for _, c := range p.Colors {
		l, a, b := toColorful(c).Lab()
		dataset = append(dataset, clusters.Coordinates{l, a, b})
	}

	k := min(r.k, len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, nil, fmt.Errorf("kmeans partition failed: %w", err)
	}
	if len(cc) == 0 {
		return nil, nil, fmt.Errorf("kmeans returned no clusters")
	}

	centres := make([]RGB, len(cc))
	for i, cluster := range cc {
		centre := cluster.Center
		if len(centre) < 3 {
			return nil, nil, fmt.Errorf("kmeans cluster %d has %d dimensions, want 3", i, len(centre))
		}
		centres[i] = fromColorful(colorful.Lab(centre[0], centre[1], centre[2]))
	}

	reduced := NewPalette()
	mapping := make(DominantMap, p.Len())
	for i, c := range p.Colors {
		rep := centres[cc.Nearest(dataset[i])]
		reduced.Add(rep)
		mapping[c] = rep
	}

	return reduced, mapping, nil
}
