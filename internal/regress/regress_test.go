package regress

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

const tol = 1e-8

// noisyLinearData builds y = 3 + 2*x0 - 1.5*x1 (+ optional noise).
func noisyLinearData(n int, noise float64, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0 := rng.Float64() * 10
		x1 := rng.Float64() * 10
		X[i] = []float64{x0, x1}
		y[i] = 3 + 2*x0 - 1.5*x1 + rng.NormFloat64()*noise
	}
	return X, y
}

func TestLinearRecoversCoefficients(t *testing.T) {
	X, y := noisyLinearData(200, 0, 1)
	m := &Linear{}
	if err := m.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Intercept()-3) > 1e-6 {
		t.Errorf("intercept: got %v, want 3", m.Intercept())
	}
	coef := m.Coefficients()
	if math.Abs(coef[0]-2) > 1e-6 || math.Abs(coef[1]+1.5) > 1e-6 {
		t.Errorf("coefficients: got %v, want [2 -1.5]", coef)
	}
	pred := m.Predict([][]float64{{1, 1}})
	if math.Abs(pred[0]-3.5) > 1e-6 {
		t.Errorf("prediction: got %v, want 3.5", pred[0])
	}
}

func TestLinearRejectsMismatchedRows(t *testing.T) {
	m := &Linear{}
	if err := m.Fit([][]float64{{1}, {2}}, []float64{1}); err == nil {
		t.Fatal("expected error for mismatched rows")
	}
	if err := m.Fit(nil, nil); err == nil {
		t.Fatal("expected error for empty matrix")
	}
}

func TestRidgeMatchesOLSAtZeroAlpha(t *testing.T) {
	X, y := noisyLinearData(150, 0.5, 2)
	ols := &Linear{}
	if err := ols.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	ridge := &Ridge{Alpha: 0}
	if err := ridge.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	for j := range ols.Coefficients() {
		if d := math.Abs(ols.Coefficients()[j] - ridge.Coefficients()[j]); d > 1e-6 {
			t.Errorf("coefficient %d differs by %v", j, d)
		}
	}
}

func TestRidgeShrinksCoefficients(t *testing.T) {
	X, y := noisyLinearData(150, 0.5, 3)
	small := &Ridge{Alpha: 0.001}
	big := &Ridge{Alpha: 1e6}
	if err := small.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if err := big.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	for j := range small.Coefficients() {
		if math.Abs(big.Coefficients()[j]) >= math.Abs(small.Coefficients()[j]) {
			t.Errorf("coefficient %d did not shrink under heavy regularization", j)
		}
	}
}

func TestLassoZeroesIrrelevantFeature(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	n := 300
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0 := rng.NormFloat64()
		junk := rng.NormFloat64()
		X[i] = []float64{x0, junk}
		y[i] = 5 * x0
	}
	m, err := newLasso(Params{"alpha": 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	coef := m.(*Lasso).Coefficients()
	if math.Abs(coef[1]) > 0.05 {
		t.Errorf("irrelevant feature weight %v, want ~0", coef[1])
	}
	if coef[0] < 3 {
		t.Errorf("relevant feature weight %v, want near 5", coef[0])
	}
}

func TestTreeEnsemblesBeatTheMean(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := 400
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0 := rng.Float64() * 10
		x1 := rng.Float64() * 10
		X[i] = []float64{x0, x1}
		// nonlinear target a linear model cannot capture
		y[i] = math.Sin(x0)*40 + x1*x1
	}
	var meanSSE float64
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	for _, v := range y {
		meanSSE += (v - mean) * (v - mean)
	}

	for _, name := range []string{"forest", "gbm", "xgb"} {
		p := providerByName(t, name)
		m, err := p.New(nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := m.Fit(X, y); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		pred := m.Predict(X)
		var sse float64
		for i := range y {
			sse += (pred[i] - y[i]) * (pred[i] - y[i])
		}
		if sse >= meanSSE/2 {
			t.Errorf("%s: training SSE %v not better than half the mean baseline %v", name, sse, meanSSE)
		}
		imp := m.(Importancer).FeatureImportances()
		if len(imp) != 2 {
			t.Fatalf("%s: expected 2 importances, got %d", name, len(imp))
		}
		sum := imp[0] + imp[1]
		if math.Abs(sum-1) > tol {
			t.Errorf("%s: importances sum to %v, want 1", name, sum)
		}
	}
}

func TestForestDeterministicForSeed(t *testing.T) {
	X, y := noisyLinearData(120, 2, 6)
	fit := func() []float64 {
		m, err := newForest(Params{"trees": 20, "seed": 9})
		if err != nil {
			t.Fatal(err)
		}
		if err := m.Fit(X, y); err != nil {
			t.Fatal(err)
		}
		return m.Predict(X[:10])
	}
	a, b := fit(), fit()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("prediction %d differs across identical fits", i)
		}
	}
}

func TestParamsGet(t *testing.T) {
	p := Params{"trees": 50}
	if p.Get("trees", 100) != 50 {
		t.Error("present parameter not returned")
	}
	if p.Get("max_depth", 12) != 12 {
		t.Error("default not returned for absent parameter")
	}
	var nilParams Params
	if nilParams.Get("anything", 7) != 7 {
		t.Error("nil params must fall back to default")
	}
}

func TestConstructorRejectsBadParams(t *testing.T) {
	cases := []struct {
		name   string
		params Params
	}{
		{"ridge", Params{"alpha": -1}},
		{"lasso", Params{"alpha": -1}},
		{"forest", Params{"trees": -5}},
		{"forest", Params{"feature_frac": 2}},
		{"gbm", Params{"learning_rate": 0}},
		{"xgb", Params{"lambda": -1}},
	}
	for _, c := range cases {
		p := providerByName(t, c.name)
		if _, err := p.New(c.params); err == nil {
			t.Errorf("%s: expected constructor error for %v", c.name, c.params)
		}
	}
}

func TestRegistryDistinguishesAbsenceFromFailure(t *testing.T) {
	r := NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		t.Fatal(err)
	}
	if !r.Available("xgb") {
		t.Error("extended candidate should be registered")
	}
	if r.Available("catboost") {
		t.Error("unregistered candidate reported available")
	}
	// a registered provider whose construction fails is an error, not absence
	p, ok := r.Lookup("forest")
	if !ok {
		t.Fatal("forest not registered")
	}
	if _, err := p.New(Params{"trees": -1}); err == nil {
		t.Error("expected construction failure for invalid params")
	}
}

func TestRegistryOrderAndDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		t.Fatal(err)
	}
	want := []string{"linear", "ridge", "lasso", "forest", "gbm", "xgb"}
	got := r.Providers()
	if len(got) != len(want) {
		t.Fatalf("got %d providers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, want[i])
		}
	}
	if err := r.Register(Provider{Name: "linear", New: newLinear}); err == nil {
		t.Error("duplicate registration should fail")
	}
}

func providerByName(t *testing.T, name string) Provider {
	t.Helper()
	r := NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		t.Fatal(err)
	}
	p, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("provider %q not registered", name)
	}
	return p
}

func ExampleParams_Get() {
	p := Params{"max_depth": 4}
	fmt.Println(p.Get("max_depth", 3), p.Get("trees", 100))
	// Output: 4 100
}
