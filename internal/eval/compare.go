package eval

import (
	"fmt"

	"github.com/KaramelBytes/spendloom-cli/internal/regress"
)

// Comparison is the outcome of running the harness over every candidate.
// Results keep enumeration order; Models holds the trained instance per
// candidate name for downstream reporting.
type Comparison struct {
	Results []Result
	Models  map[string]regress.Regressor
}

// Compare evaluates each provider against the split in enumeration order.
// Any single evaluation failure aborts the comparison; there are no retries
// and no partial results.
func Compare(providers []regress.Provider, sp Split, cvFolds int) (*Comparison, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("no candidates to compare")
	}
	cmp := &Comparison{Models: make(map[string]regress.Regressor, len(providers))}
	for _, p := range providers {
		res, model, err := Evaluate(p, nil, sp, cvFolds)
		if err != nil {
			return nil, err
		}
		cmp.Results = append(cmp.Results, res)
		cmp.Models[p.Name] = model
	}
	return cmp, nil
}

// Selection is the immutable winner record handed to tuning and reporting.
type Selection struct {
	Result
	Model regress.Regressor
}

// SelectBest picks the candidate with the numerically smallest RMSE. An exact
// tie goes to the earlier candidate in enumeration order.
func (c *Comparison) SelectBest() (Selection, error) {
	if len(c.Results) == 0 {
		return Selection{}, fmt.Errorf("empty comparison")
	}
	best := c.Results[0]
	for _, r := range c.Results[1:] {
		if r.Metrics.RMSE < best.Metrics.RMSE {
			best = r
		}
	}
	return Selection{Result: best, Model: c.Models[best.Name]}, nil
}
