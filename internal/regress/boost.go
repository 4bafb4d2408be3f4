package regress

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// boostModel is the shared gradient boosting machinery: shallow trees fit to
// the running residuals with shrinkage. The regularized variant layers leaf
// shrinkage (lambda) and a minimum split gain (gamma) on top.
type boostModel struct {
	trees        int
	maxDepth     int
	minSplit     int
	learningRate float64
	lambda       float64
	gamma        float64
	seed         int64

	init        float64
	stages      []*treeNode
	importances []float64
}

func (m *boostModel) fit(X [][]float64, y []float64) error {
	n, d, err := checkXY(X, y)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(m.seed))
	cfg := treeConfig{
		maxDepth: m.maxDepth,
		minSplit: m.minSplit,
		lambda:   m.lambda,
		minGain:  m.gamma,
	}

	m.init = stat.Mean(y, nil)
	m.stages = make([]*treeNode, 0, m.trees)
	m.importances = make([]float64, d)

	pred := make([]float64, n)
	resid := make([]float64, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
		pred[i] = m.init
	}
	for t := 0; t < m.trees; t++ {
		for i := range resid {
			resid[i] = y[i] - pred[i]
		}
		tree := buildTree(X, resid, idx, cfg, rng, 0, m.importances)
		m.stages = append(m.stages, tree)
		for i, row := range X {
			pred[i] += m.learningRate * tree.predict(row)
		}
	}
	normalizeImportances(m.importances)
	return nil
}

func (m *boostModel) predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		s := m.init
		for _, t := range m.stages {
			s += m.learningRate * t.predict(row)
		}
		out[i] = s
	}
	return out
}

// GBM is plain gradient boosting over depth-limited regression trees.
type GBM struct {
	boostModel
}

func newGBM(p Params) (Regressor, error) {
	m := &GBM{boostModel{
		trees:        int(p.Get("trees", 100)),
		maxDepth:     int(p.Get("max_depth", 3)),
		minSplit:     int(p.Get("min_split", 2)),
		learningRate: p.Get("learning_rate", 0.1),
		seed:         int64(p.Get("seed", 1)),
	}}
	if m.trees < 1 {
		return nil, fmt.Errorf("gbm: trees must be positive, got %d", m.trees)
	}
	if m.learningRate <= 0 || m.learningRate > 1 {
		return nil, fmt.Errorf("gbm: learning_rate %v out of range (0,1]", m.learningRate)
	}
	return m, nil
}

func (m *GBM) Fit(X [][]float64, y []float64) error {
	if err := m.fit(X, y); err != nil {
		return fmt.Errorf("gbm fit: %w", err)
	}
	return nil
}

func (m *GBM) Predict(X [][]float64) []float64 { return m.predict(X) }

// FeatureImportances returns normalized impurity-decrease scores.
func (m *GBM) FeatureImportances() []float64 { return m.importances }
