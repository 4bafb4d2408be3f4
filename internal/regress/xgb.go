package regress

import "fmt"

// XGB is the optional sixth candidate: gradient boosting with L2 leaf
// regularization and a minimum split gain, in the manner of extreme gradient
// boosting. Builds that leave it unregistered simply compare five candidates.
type XGB struct {
	boostModel
}

func newXGB(p Params) (Regressor, error) {
	m := &XGB{boostModel{
		trees:        int(p.Get("trees", 100)),
		maxDepth:     int(p.Get("max_depth", 3)),
		minSplit:     int(p.Get("min_split", 2)),
		learningRate: p.Get("learning_rate", 0.1),
		lambda:       p.Get("lambda", 1.0),
		gamma:        p.Get("gamma", 0),
		seed:         int64(p.Get("seed", 1)),
	}}
	if m.trees < 1 {
		return nil, fmt.Errorf("xgb: trees must be positive, got %d", m.trees)
	}
	if m.lambda < 0 {
		return nil, fmt.Errorf("xgb: lambda must be non-negative, got %v", m.lambda)
	}
	if m.learningRate <= 0 || m.learningRate > 1 {
		return nil, fmt.Errorf("xgb: learning_rate %v out of range (0,1]", m.learningRate)
	}
	return m, nil
}

func (m *XGB) Fit(X [][]float64, y []float64) error {
	if err := m.fit(X, y); err != nil {
		return fmt.Errorf("xgb fit: %w", err)
	}
	return nil
}

func (m *XGB) Predict(X [][]float64) []float64 { return m.predict(X) }

// FeatureImportances returns normalized impurity-decrease scores.
func (m *XGB) FeatureImportances() []float64 { return m.importances }
