package tuning

import (
	"math"
	"testing"

	"github.com/KaramelBytes/spendloom-cli/internal/eval"
	"github.com/KaramelBytes/spendloom-cli/internal/regress"
)

// constModel predicts a fixed value everywhere, so its CV error is a pure
// function of its parameter.
type constModel struct {
	c float64
}

func (m *constModel) Fit(X [][]float64, y []float64) error { return nil }

func (m *constModel) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = m.c
	}
	return out
}

func constProvider() regress.Provider {
	return regress.Provider{
		Name:   "const",
		Family: regress.FamilyTree,
		New: func(p regress.Params) (regress.Regressor, error) {
			return &constModel{c: p.Get("c", 0)}, nil
		},
	}
}

func constSplit(n int, target float64) eval.Split {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range X {
		X[i] = []float64{float64(i)}
		y[i] = target
	}
	return eval.Split{
		XTrain: X[:n-6], YTrain: y[:n-6],
		XTest: X[n-6:], YTest: y[n-6:],
		Features: []string{"x"},
	}
}

func TestCombinationsCartesianProduct(t *testing.T) {
	g := Grid{"a": {1, 2}, "b": {10, 20, 30}}
	combos := Combinations(g)
	if len(combos) != 6 {
		t.Fatalf("expected 6 combinations, got %d", len(combos))
	}
	// names walk in sorted order, values in declaration order
	want := []regress.Params{
		{"a": 1, "b": 10}, {"a": 1, "b": 20}, {"a": 1, "b": 30},
		{"a": 2, "b": 10}, {"a": 2, "b": 20}, {"a": 2, "b": 30},
	}
	for i, w := range want {
		for k, v := range w {
			if combos[i][k] != v {
				t.Errorf("combination %d: %s=%v, want %v", i, k, combos[i][k], v)
			}
		}
	}
}

func TestSearchFindsGlobalMinimum(t *testing.T) {
	sp := constSplit(36, 5)
	g := Grid{"c": {0, 2, 5, 8}}
	out, err := Search(constProvider(), g, sp, 3, 4, 10)
	if err != nil {
		t.Fatal(err)
	}
	if out.Best["c"] != 5 {
		t.Errorf("best c: got %v, want 5", out.Best["c"])
	}
	if out.CVRMSE != 0 {
		t.Errorf("winning CV RMSE: got %v, want 0", out.CVRMSE)
	}
	if out.TestMetrics.RMSE != 0 {
		t.Errorf("tuned test RMSE: got %v, want 0", out.TestMetrics.RMSE)
	}
	if math.Abs(out.ImprovementPct-100) > 1e-9 {
		t.Errorf("improvement: got %v%%, want 100%%", out.ImprovementPct)
	}
}

func TestSearchBestMatchesSequentialArgmin(t *testing.T) {
	sp := constSplit(36, 5)
	g := Grid{"c": {1, 3, 4, 9, 5.5, 4.8}}
	for _, workers := range []int{1, 2, 8} {
		out, err := Search(constProvider(), g, sp, 3, workers, 0)
		if err != nil {
			t.Fatal(err)
		}
		if out.Best["c"] != 4.8 {
			t.Errorf("workers=%d: best c %v, want 4.8", workers, out.Best["c"])
		}
	}
}

func TestSearchTieGoesToEarlierCombination(t *testing.T) {
	sp := constSplit(36, 5)
	// 4 and 6 sit at equal distance from the target
	g := Grid{"c": {4, 6}}
	out, err := Search(constProvider(), g, sp, 3, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Best["c"] != 4 {
		t.Errorf("exact tie selected c=%v, want the earlier combination 4", out.Best["c"])
	}
}

func TestSearchRejectsLinearFamily(t *testing.T) {
	p := regress.Provider{Name: "linear", Family: regress.FamilyLinear}
	if _, err := Search(p, Grid{"c": {1}}, constSplit(36, 5), 3, 1, 0); err == nil {
		t.Fatal("expected error for linear-family candidate")
	}
}

func TestGridForFamilies(t *testing.T) {
	for _, name := range []string{"forest", "gbm", "xgb"} {
		if _, ok := GridFor(name); !ok {
			t.Errorf("%s should have a search grid", name)
		}
	}
	for _, name := range []string{"linear", "ridge", "lasso", "unknown"} {
		if _, ok := GridFor(name); ok {
			t.Errorf("%s should not have a search grid", name)
		}
	}
}
