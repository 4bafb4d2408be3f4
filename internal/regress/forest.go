package regress

import (
	"fmt"
	"math"
	"math/rand"
)

// Forest is a random forest regressor: bagged variance-reduction trees over
// bootstrap samples with a random feature subset per split node.
type Forest struct {
	Trees       int
	MaxDepth    int
	MinSplit    int
	FeatureFrac float64
	Seed        int64

	trees       []*treeNode
	importances []float64
}

func newForest(p Params) (Regressor, error) {
	f := &Forest{
		Trees:       int(p.Get("trees", 100)),
		MaxDepth:    int(p.Get("max_depth", 12)),
		MinSplit:    int(p.Get("min_split", 2)),
		FeatureFrac: p.Get("feature_frac", 1.0/3.0),
		Seed:        int64(p.Get("seed", 1)),
	}
	if f.Trees < 1 {
		return nil, fmt.Errorf("forest: trees must be positive, got %d", f.Trees)
	}
	if f.FeatureFrac <= 0 || f.FeatureFrac > 1 {
		return nil, fmt.Errorf("forest: feature_frac %v out of range (0,1]", f.FeatureFrac)
	}
	return f, nil
}

func (m *Forest) Fit(X [][]float64, y []float64) error {
	n, d, err := checkXY(X, y)
	if err != nil {
		return fmt.Errorf("forest fit: %w", err)
	}
	rng := rand.New(rand.NewSource(m.Seed))
	maxFeat := int(math.Max(1, math.Round(m.FeatureFrac*float64(d))))
	cfg := treeConfig{maxDepth: m.MaxDepth, minSplit: m.MinSplit, maxFeatures: maxFeat}

	m.trees = make([]*treeNode, 0, m.Trees)
	m.importances = make([]float64, d)
	idx := make([]int, n)
	for t := 0; t < m.Trees; t++ {
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		m.trees = append(m.trees, buildTree(X, y, idx, cfg, rng, 0, m.importances))
	}
	normalizeImportances(m.importances)
	return nil
}

func (m *Forest) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		var s float64
		for _, t := range m.trees {
			s += t.predict(row)
		}
		out[i] = s / float64(len(m.trees))
	}
	return out
}

// FeatureImportances returns normalized impurity-decrease scores, one per
// input feature.
func (m *Forest) FeatureImportances() []float64 {
	return m.importances
}
