package eval

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/spendloom-cli/internal/regress"
)

// Split is a fixed train/test partition of the encoded feature matrix.
type Split struct {
	XTrain [][]float64
	YTrain []float64
	XTest  [][]float64
	YTest  []float64

	Features []string
}

// Result couples a candidate name with its scored metrics. Result order in a
// comparison is candidate enumeration order, never ranked.
type Result struct {
	Name    string
	Family  regress.Family
	Metrics Metrics
}

// Evaluate fits a fresh model from the provider, scores it on the held-out
// test rows, and adds a cvFolds-fold cross-validated RMSE computed on the
// training rows alone. The returned model is the one trained on the full
// training split.
func Evaluate(p regress.Provider, params regress.Params, sp Split, cvFolds int) (Result, regress.Regressor, error) {
	model, err := p.New(params)
	if err != nil {
		return Result{}, nil, fmt.Errorf("construct %s: %w", p.Name, err)
	}
	if err := model.Fit(sp.XTrain, sp.YTrain); err != nil {
		return Result{}, nil, fmt.Errorf("fit %s: %w", p.Name, err)
	}
	m, err := TestMetrics(sp.YTest, model.Predict(sp.XTest))
	if err != nil {
		return Result{}, nil, fmt.Errorf("score %s: %w", p.Name, err)
	}
	cv, err := CrossValRMSE(p, params, sp.XTrain, sp.YTrain, cvFolds)
	if err != nil {
		return Result{}, nil, fmt.Errorf("cross-validate %s: %w", p.Name, err)
	}
	m.CVRMSE = cv
	return Result{Name: p.Name, Family: p.Family, Metrics: m}, model, nil
}

// CrossValRMSE runs k-fold cross-validation, fitting a fresh model per fold
// and returning sqrt of the mean fold MSE. Folds are contiguous over the
// given rows; rows reach this point already shuffled by the split step.
func CrossValRMSE(p regress.Provider, params regress.Params, X [][]float64, y []float64, folds int) (float64, error) {
	n := len(X)
	if folds < 2 {
		return 0, fmt.Errorf("need at least 2 folds, got %d", folds)
	}
	if n < folds {
		return 0, fmt.Errorf("cannot fold %d rows into %d parts", n, folds)
	}
	var total float64
	for k := 0; k < folds; k++ {
		lo := k * n / folds
		hi := (k + 1) * n / folds

		trX := make([][]float64, 0, n-(hi-lo))
		trY := make([]float64, 0, n-(hi-lo))
		trX = append(trX, X[:lo]...)
		trX = append(trX, X[hi:]...)
		trY = append(trY, y[:lo]...)
		trY = append(trY, y[hi:]...)

		model, err := p.New(params)
		if err != nil {
			return 0, err
		}
		if err := model.Fit(trX, trY); err != nil {
			return 0, fmt.Errorf("fold %d: %w", k, err)
		}
		pred := model.Predict(X[lo:hi])
		var se float64
		for i, t := range y[lo:hi] {
			d := pred[i] - t
			se += d * d
		}
		total += se / float64(hi-lo)
	}
	return math.Sqrt(total / float64(folds)), nil
}
