package forest

import (
	"math/rand"
	"sort"
)

// grower carries the shared state of one Grow call. Trees are grown
// sequentially from a single seeded rng, which is what makes the whole
// ensemble reproducible.
type grower struct {
	x           [][]float64
	y           []int
	cfg         Config
	classes     int
	features    int
	rng         *rand.Rand
	importances []float64
}

// bootstrap samples len(x) row indices with replacement.
func (g *grower) bootstrap() []int {
	n := len(g.x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = g.rng.Intn(n)
	}
	return idx
}

// grow builds one subtree over the given sample indices.
func (g *grower) grow(idx []int, depth int) *node {
	counts := g.classCounts(idx)

	if depth >= g.cfg.MaxDepth || len(idx) < 2*g.cfg.MinLeaf || isPure(counts) {
		return leaf(counts, len(idx))
	}

	best, ok := g.bestSplit(idx, counts)
	if !ok {
		return leaf(counts, len(idx))
	}

	var left, right []int
	for _, i := range idx {
		if g.x[i][best.feature] < best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		// Midpoint rounded onto a sample value; no usable separation.
		return leaf(counts, len(idx))
	}

	// Weighted impurity decrease, scaled by the node's share of the
	// training set, accumulates into the feature's importance.
	g.importances[best.feature] += float64(len(idx)) / float64(len(g.x)) * best.gain

	return &node{
		feature:   best.feature,
		threshold: best.threshold,
		left:      g.grow(left, depth+1),
		right:     g.grow(right, depth+1),
	}
}

type split struct {
	feature   int
	threshold float64
	gain      float64
}

// bestSplit scans a random feature subset for the threshold with the
// largest Gini impurity decrease. Returns false when no split separates
// the node while respecting MinLeaf.
func (g *grower) bestSplit(idx []int, counts []int) (split, bool) {
	n := len(idx)
	parent := gini(counts, n)

	best := split{gain: 1e-12}
	found := false

	vals := make([]int, n)
	for _, f := range g.featureSubset() {
		copy(vals, idx)
		sort.Slice(vals, func(a, b int) bool {
			return g.x[vals[a]][f] < g.x[vals[b]][f]
		})

		leftCounts := make([]int, g.classes)
		rightCounts := make([]int, g.classes)
		copy(rightCounts, counts)

		for i := 0; i < n-1; i++ {
			c := g.y[vals[i]]
			leftCounts[c]++
			rightCounts[c]--

			nl := i + 1
			nr := n - nl
			if nl < g.cfg.MinLeaf || nr < g.cfg.MinLeaf {
				continue
			}
			lo := g.x[vals[i]][f]
			hi := g.x[vals[i+1]][f]
			if hi <= lo {
				continue
			}

			weighted := (float64(nl)*gini(leftCounts, nl) + float64(nr)*gini(rightCounts, nr)) / float64(n)
			gain := parent - weighted
			if gain > best.gain {
				best = split{feature: f, threshold: lo + (hi-lo)/2, gain: gain}
				found = true
			}
		}
	}
	return best, found
}

// featureSubset draws cfg.Subfeatures distinct feature indices.
func (g *grower) featureSubset() []int {
	return g.rng.Perm(g.features)[:g.cfg.Subfeatures]
}

func (g *grower) classCounts(idx []int) []int {
	counts := make([]int, g.classes)
	for _, i := range idx {
		counts[g.y[i]]++
	}
	return counts
}

func leaf(counts []int, n int) *node {
	dist := make([]float64, len(counts))
	for c, k := range counts {
		dist[c] = float64(k) / float64(n)
	}
	return &node{dist: dist}
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, k := range counts {
		if k > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// gini computes Gini impurity of a class-count vector over n samples.
func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, k := range counts {
		p := float64(k) / float64(n)
		sum += p * p
	}
	return 1 - sum
}
