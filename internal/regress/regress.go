// Package regress provides the regression models compared by the evaluation
// harness, behind a single Fit/Predict contract and an explicit provider
// registry.
package regress

// Regressor is the capability set the evaluation harness relies on. Fit
// trains the receiver in place; Predict must only be called after a
// successful Fit.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
}

// Importancer is implemented by tree-ensemble regressors that can attribute
// normalized importance scores to input features.
type Importancer interface {
	FeatureImportances() []float64
}

// Params carries hyper-parameters by name. Models read what they understand
// and fall back to defaults for the rest.
type Params map[string]float64

// Get returns the named parameter if present and dflt otherwise.
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
