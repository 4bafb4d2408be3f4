// Package eval fits candidate regressors on a fixed split, scores them with
// held-out and cross-validated error metrics, and selects the winner.
package eval

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics is one model's scored record. CVRMSE comes from k-fold
// cross-validation on the training split only; the rest are held-out test
// metrics.
type Metrics struct {
	MSE    float64
	RMSE   float64
	MAE    float64
	R2     float64
	CVRMSE float64
}

// TestMetrics computes MSE, RMSE (=sqrt MSE), MAE and R2 from predictions
// against the held-out truth.
func TestMetrics(truth, pred []float64) (Metrics, error) {
	if len(truth) == 0 || len(truth) != len(pred) {
		return Metrics{}, fmt.Errorf("metrics: %d truth values vs %d predictions", len(truth), len(pred))
	}
	var se, ae float64
	for i, t := range truth {
		d := pred[i] - t
		se += d * d
		ae += math.Abs(d)
	}
	n := float64(len(truth))
	mse := se / n

	mean := stat.Mean(truth, nil)
	var tot float64
	for _, t := range truth {
		d := t - mean
		tot += d * d
	}
	r2 := math.Inf(-1)
	if tot > 0 {
		r2 = 1 - se/tot
	}
	return Metrics{
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		MAE:  ae / n,
		R2:   r2,
	}, nil
}
