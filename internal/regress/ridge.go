package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge is L2-regularized least squares solved in closed form,
// (XᵀX + λI)β = Xᵀy, with the intercept left unpenalized.
type Ridge struct {
	Alpha float64

	coef      []float64
	intercept float64
}

func newRidge(p Params) (Regressor, error) {
	alpha := p.Get("alpha", 1.0)
	if alpha < 0 {
		return nil, fmt.Errorf("ridge: alpha must be non-negative, got %v", alpha)
	}
	return &Ridge{Alpha: alpha}, nil
}

// Coefficients returns the fitted feature weights.
func (m *Ridge) Coefficients() []float64 { return m.coef }

func (m *Ridge) Fit(X [][]float64, y []float64) error {
	n, d, err := checkXY(X, y)
	if err != nil {
		return fmt.Errorf("ridge fit: %w", err)
	}
	a := designMatrix(X, n, d)
	b := mat.NewVecDense(n, append([]float64(nil), y...))

	var ata mat.Dense
	ata.Mul(a.T(), a)
	// penalize every coefficient except the intercept
	for j := 1; j <= d; j++ {
		ata.Set(j, j, ata.At(j, j)+m.Alpha)
	}
	var atb mat.VecDense
	atb.MulVec(a.T(), b)

	beta := mat.NewVecDense(d+1, nil)
	if err := beta.SolveVec(&ata, &atb); err != nil {
		return fmt.Errorf("ridge fit: solve: %w", err)
	}
	m.intercept = beta.AtVec(0)
	m.coef = make([]float64, d)
	for j := 0; j < d; j++ {
		m.coef[j] = beta.AtVec(j + 1)
	}
	return nil
}

func (m *Ridge) Predict(X [][]float64) []float64 {
	return linearPredict(X, m.coef, m.intercept)
}
