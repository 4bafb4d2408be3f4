package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Lasso is L1-regularized least squares fit by cyclic coordinate descent on
// centered, scaled features. The intercept is recovered from the feature
// means after descent converges.
type Lasso struct {
	Alpha   float64
	MaxIter int
	Tol     float64

	coef      []float64
	intercept float64
}

func newLasso(p Params) (Regressor, error) {
	alpha := p.Get("alpha", 1.0)
	if alpha < 0 {
		return nil, fmt.Errorf("lasso: alpha must be non-negative, got %v", alpha)
	}
	return &Lasso{
		Alpha:   alpha,
		MaxIter: int(p.Get("max_iter", 1000)),
		Tol:     p.Get("tol", 1e-6),
	}, nil
}

// Coefficients returns the fitted feature weights.
func (m *Lasso) Coefficients() []float64 { return m.coef }

func (m *Lasso) Fit(X [][]float64, y []float64) error {
	n, d, err := checkXY(X, y)
	if err != nil {
		return fmt.Errorf("lasso fit: %w", err)
	}

	// center y, center and scale each feature column
	yc := make([]float64, n)
	copy(yc, y)
	yMean := stat.Mean(yc, nil)
	for i := range yc {
		yc[i] -= yMean
	}

	colMean := make([]float64, d)
	colScale := make([]float64, d)
	cols := make([][]float64, d)
	for j := 0; j < d; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = X[i][j]
		}
		colMean[j] = stat.Mean(col, nil)
		for i := range col {
			col[i] -= colMean[j]
		}
		s := math.Sqrt(floats.Dot(col, col) / float64(n))
		if s == 0 {
			s = 1
		}
		colScale[j] = s
		for i := range col {
			col[i] /= s
		}
		cols[j] = col
	}

	w := make([]float64, d)
	resid := make([]float64, n)
	copy(resid, yc)

	lam := m.Alpha * float64(n)
	for iter := 0; iter < m.MaxIter; iter++ {
		maxDelta := 0.0
		for j := 0; j < d; j++ {
			col := cols[j]
			// rho = x_j . (resid + w_j x_j)
			rho := floats.Dot(col, resid) + w[j]*float64(n)
			next := softThreshold(rho, lam) / float64(n)
			if next == w[j] {
				continue
			}
			delta := next - w[j]
			floats.AddScaled(resid, -delta, col)
			w[j] = next
			if a := math.Abs(delta); a > maxDelta {
				maxDelta = a
			}
		}
		if maxDelta < m.Tol {
			break
		}
	}

	m.coef = make([]float64, d)
	m.intercept = yMean
	for j := 0; j < d; j++ {
		m.coef[j] = w[j] / colScale[j]
		m.intercept -= m.coef[j] * colMean[j]
	}
	return nil
}

func (m *Lasso) Predict(X [][]float64) []float64 {
	return linearPredict(X, m.coef, m.intercept)
}

func softThreshold(x, lam float64) float64 {
	switch {
	case x > lam:
		return x - lam
	case x < -lam:
		return x + lam
	default:
		return 0
	}
}
