package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Linear is ordinary least squares with an intercept, solved by QR
// factorization of the design matrix.
type Linear struct {
	coef      []float64
	intercept float64
	fitted    bool
}

func newLinear(Params) (Regressor, error) {
	return &Linear{}, nil
}

// Coefficients returns the fitted feature weights.
func (m *Linear) Coefficients() []float64 { return m.coef }

// Intercept returns the fitted intercept.
func (m *Linear) Intercept() float64 { return m.intercept }

func (m *Linear) Fit(X [][]float64, y []float64) error {
	n, d, err := checkXY(X, y)
	if err != nil {
		return fmt.Errorf("linear fit: %w", err)
	}
	if n <= d {
		return fmt.Errorf("linear fit: %d rows cannot determine %d coefficients", n, d+1)
	}
	a := designMatrix(X, n, d)
	b := mat.NewVecDense(n, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(a)
	beta := mat.NewVecDense(d+1, nil)
	if err := qr.SolveVecTo(beta, false, b); err != nil {
		return fmt.Errorf("linear fit: solve: %w", err)
	}
	m.intercept = beta.AtVec(0)
	m.coef = make([]float64, d)
	for j := 0; j < d; j++ {
		m.coef[j] = beta.AtVec(j + 1)
	}
	m.fitted = true
	return nil
}

func (m *Linear) Predict(X [][]float64) []float64 {
	return linearPredict(X, m.coef, m.intercept)
}

// designMatrix builds the row-major design matrix with a leading intercept
// column of ones.
func designMatrix(X [][]float64, n, d int) *mat.Dense {
	a := mat.NewDense(n, d+1, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, 1)
		for j := 0; j < d; j++ {
			a.Set(i, j+1, X[i][j])
		}
	}
	return a
}

func linearPredict(X [][]float64, coef []float64, intercept float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		s := intercept
		for j, w := range coef {
			s += w * row[j]
		}
		out[i] = s
	}
	return out
}

func checkXY(X [][]float64, y []float64) (n, d int, err error) {
	n = len(X)
	if n == 0 {
		return 0, 0, fmt.Errorf("empty feature matrix")
	}
	if n != len(y) {
		return 0, 0, fmt.Errorf("feature matrix has %d rows, target has %d", n, len(y))
	}
	d = len(X[0])
	if d == 0 {
		return 0, 0, fmt.Errorf("feature matrix has no columns")
	}
	for i, row := range X {
		if len(row) != d {
			return 0, 0, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), d)
		}
	}
	return n, d, nil
}
