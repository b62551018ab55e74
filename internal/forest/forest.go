// Package forest implements a seeded random forest of CART decision trees
// with Gini splitting. It exposes the two things the eligibility contract
// needs from an ensemble and that off-the-shelf Go implementations do not
// provide together: per-class vote probabilities and impurity-decrease
// feature importances.
package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrSingleClass is returned when the training labels contain one class.
// A forest fitted on degenerate labels cannot produce a meaningful
// probability, so fitting fails instead.
var ErrSingleClass = errors.New("training labels contain a single class")

// Config controls forest growth. The zero value gets the defaults applied.
type Config struct {
	// Trees is the ensemble size. Defaults to 100.
	Trees int

	// MaxDepth bounds tree depth. Defaults to 12.
	MaxDepth int

	// MinLeaf is the minimum number of samples in a leaf. Defaults to 1.
	MinLeaf int

	// Subfeatures is the number of features considered per split.
	// Defaults to floor(sqrt(total features)), minimum 1.
	Subfeatures int

	// Seed makes growth reproducible: the same data and seed always grow
	// the same forest.
	Seed int64
}

func (c *Config) applyDefaults(features int) {
	if c.Trees <= 0 {
		c.Trees = 100
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 12
	}
	if c.MinLeaf <= 0 {
		c.MinLeaf = 1
	}
	if c.Subfeatures <= 0 || c.Subfeatures > features {
		c.Subfeatures = int(math.Sqrt(float64(features)))
		if c.Subfeatures < 1 {
			c.Subfeatures = 1
		}
	}
}

// node is one tree node. A leaf carries its class distribution; an internal
// node routes row[feature] < threshold to left, the rest to right.
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	dist      []float64
}

// Forest is a fitted ensemble. Immutable after Grow; safe for concurrent
// Vote calls.
type Forest struct {
	trees       []*node
	classes     int
	features    int
	importances []float64
}

// Grow fits a forest on x (one feature row per sample) against integer
// class labels y. Growth is single-threaded and fully determined by
// cfg.Seed.
func Grow(x [][]float64, y []int, cfg Config) (*Forest, error) {
	if len(x) == 0 {
		return nil, errors.New("no training samples")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("got %d samples but %d labels", len(x), len(y))
	}

	features := len(x[0])
	classes := 0
	seen := map[int]bool{}
	for i, row := range x {
		if len(row) != features {
			return nil, fmt.Errorf("sample %d has %d features, want %d", i, len(row), features)
		}
		if y[i] < 0 {
			return nil, fmt.Errorf("sample %d has negative label %d", i, y[i])
		}
		seen[y[i]] = true
		if y[i]+1 > classes {
			classes = y[i] + 1
		}
	}
	if len(seen) < 2 {
		return nil, ErrSingleClass
	}

	cfg.applyDefaults(features)

	g := &grower{
		x:           x,
		y:           y,
		cfg:         cfg,
		classes:     classes,
		features:    features,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		importances: make([]float64, features),
	}

	trees := make([]*node, cfg.Trees)
	for t := range trees {
		trees[t] = g.grow(g.bootstrap(), 0)
	}

	return &Forest{
		trees:       trees,
		classes:     classes,
		features:    features,
		importances: g.importances,
	}, nil
}

// Vote returns the ensemble's class probability distribution for one row:
// the mean of the leaf distributions the row lands in. The result has one
// entry per class and sums to 1.
func (f *Forest) Vote(row []float64) ([]float64, error) {
	if len(row) != f.features {
		return nil, fmt.Errorf("got %d features, forest fitted on %d", len(row), f.features)
	}
	dist := make([]float64, f.classes)
	for _, root := range f.trees {
		leaf := root
		for leaf.dist == nil {
			if row[leaf.feature] < leaf.threshold {
				leaf = leaf.left
			} else {
				leaf = leaf.right
			}
		}
		for c, p := range leaf.dist {
			dist[c] += p
		}
	}
	for c := range dist {
		dist[c] /= float64(len(f.trees))
	}
	return dist, nil
}

// Importances returns per-feature importance scores: accumulated Gini
// impurity decrease, normalized to sum to 1.
func (f *Forest) Importances() []float64 {
	out := make([]float64, len(f.importances))
	copy(out, f.importances)
	total := 0.0
	for _, v := range out {
		total += v
	}
	if total > 0 {
		for i := range out {
			out[i] /= total
		}
	}
	return out
}

// NumFeatures returns the feature-vector width the forest was fitted on.
func (f *Forest) NumFeatures() int {
	return f.features
}
