// Package tuning exhaustively searches a small fixed hyper-parameter grid for
// tree-ensemble winners under k-fold cross-validation.
package tuning

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/KaramelBytes/spendloom-cli/internal/eval"
	"github.com/KaramelBytes/spendloom-cli/internal/regress"
)

// Grid maps a hyper-parameter name to its candidate values.
type Grid map[string][]float64

// GridFor returns the fixed search grid of a tree-ensemble candidate.
// Linear-family candidates have no grid and skip tuning entirely.
func GridFor(name string) (Grid, bool) {
	switch name {
	case "forest":
		return Grid{
			"trees":     {50, 100, 200},
			"max_depth": {8, 12, 16},
			"min_split": {2, 5, 10},
		}, true
	case "gbm":
		return Grid{
			"trees":         {50, 100, 200},
			"max_depth":     {2, 3, 4},
			"learning_rate": {0.05, 0.1, 0.2},
		}, true
	case "xgb":
		return Grid{
			"trees":         {50, 100, 200},
			"max_depth":     {2, 3, 4},
			"learning_rate": {0.05, 0.1, 0.2},
		}, true
	default:
		return nil, false
	}
}

// Combinations expands a grid into the Cartesian product of its values.
// Parameter names are walked in sorted order so the expansion is stable.
func Combinations(g Grid) []regress.Params {
	names := make([]string, 0, len(g))
	for k := range g {
		names = append(names, k)
	}
	sort.Strings(names)

	combos := []regress.Params{{}}
	for _, name := range names {
		next := make([]regress.Params, 0, len(combos)*len(g[name]))
		for _, base := range combos {
			for _, v := range g[name] {
				p := base.Clone()
				p[name] = v
				next = append(next, p)
			}
		}
		combos = next
	}
	return combos
}

// Outcome reports the winning combination together with its tuned test
// performance and the percent RMSE reduction over the untuned baseline.
type Outcome struct {
	Best           regress.Params
	CVRMSE         float64
	TestMetrics    eval.Metrics
	BaselineRMSE   float64
	ImprovementPct float64
}

// Search scores every combination by folds-fold cross-validated MSE on the
// training rows, fanning the fits across workers. Which combination is fitted
// first is unspecified; the reported best is the globally minimal score, with
// exact ties going to the earlier combination in expansion order. The winner
// is then refitted on the full training split and scored on the test rows.
func Search(p regress.Provider, g Grid, sp eval.Split, folds, workers int, baselineRMSE float64) (*Outcome, error) {
	if p.Family != regress.FamilyTree {
		return nil, fmt.Errorf("no search grid defined for %s candidate %q", p.Family, p.Name)
	}
	combos := Combinations(g)
	if len(combos) == 0 {
		return nil, fmt.Errorf("empty grid for %q", p.Name)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	scores := make([]float64, len(combos))
	errs := make([]error, len(combos))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cv, err := eval.CrossValRMSE(p, combos[i], sp.XTrain, sp.YTrain, folds)
				scores[i], errs[i] = cv, err
			}
		}()
	}
	for i := range combos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	bestIdx := -1
	bestScore := math.Inf(1)
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("grid combination %d: %w", i, err)
		}
		if scores[i] < bestScore {
			bestScore = scores[i]
			bestIdx = i
		}
	}

	best := combos[bestIdx]
	model, err := p.New(best)
	if err != nil {
		return nil, fmt.Errorf("construct tuned %s: %w", p.Name, err)
	}
	if err := model.Fit(sp.XTrain, sp.YTrain); err != nil {
		return nil, fmt.Errorf("fit tuned %s: %w", p.Name, err)
	}
	m, err := eval.TestMetrics(sp.YTest, model.Predict(sp.XTest))
	if err != nil {
		return nil, fmt.Errorf("score tuned %s: %w", p.Name, err)
	}

	out := &Outcome{
		Best:         best,
		CVRMSE:       bestScore,
		TestMetrics:  m,
		BaselineRMSE: baselineRMSE,
	}
	if baselineRMSE > 0 {
		out.ImprovementPct = (baselineRMSE - m.RMSE) / baselineRMSE * 100
	}
	return out, nil
}
