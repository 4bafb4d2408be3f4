// Package eda computes descriptive statistics over a purchase table. It is
// purely computational: chart artifacts are emitted by the report package
// from the summaries produced here.
package eda

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/spendloom-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// CategoryCount pairs a categorical level with its row count.
type CategoryCount struct {
	Value string
	Count int
}

// ColumnSummary captures per-column statistics.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical
	NonNull int
	Missing int
	Unique  int
	// numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// categorical top values
	TopValues []CategoryCount
}

// TargetSummary describes the purchase distribution.
type TargetSummary struct {
	Min, Max, Mean, Std float64
	Q25, Median, Q75    float64
	Values              []float64 // non-missing, for histogram rendering
}

// GroupMeans is the mean target per level of one categorical column, levels
// sorted ascending.
type GroupMeans struct {
	Column string
	Levels []string
	Means  []float64
	Counts []int
}

// CorrMatrix is a symmetric Pearson matrix over numeric columns; each pair is
// computed over rows where both values are present.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Summary is the full exploratory report of one table.
type Summary struct {
	Rows   int
	Cols   []ColumnSummary
	Target TargetSummary
	Groups []GroupMeans
	Corr   *CorrMatrix
}

// Summarize analyzes a raw (pre-encoding) purchase table.
func Summarize(f *dataset.Frame, target string) (*Summary, error) {
	tc := f.Col(target)
	if tc == nil || tc.Kind != dataset.Numeric {
		return nil, fmt.Errorf("numeric target column %q not found", target)
	}

	s := &Summary{Rows: f.Len()}
	var numeric []*dataset.Column
	for _, c := range f.Columns() {
		cs := summarizeColumn(c)
		s.Cols = append(s.Cols, cs)
		if c.Kind == dataset.Numeric {
			numeric = append(numeric, c)
		}
		if c.Kind == dataset.Categorical && c.Name != dataset.ColUserID && c.Name != dataset.ColProductID {
			s.Groups = append(s.Groups, groupMeans(c, tc))
		}
	}
	s.Target = targetSummary(tc)
	s.Corr = correlations(numeric)
	return s, nil
}

func summarizeColumn(c *dataset.Column) ColumnSummary {
	cs := ColumnSummary{Name: c.Name, Missing: c.Missing()}
	cs.NonNull = c.Len() - cs.Missing
	if c.Kind == dataset.Numeric {
		cs.Kind = "numeric"
		vals := present(c.Floats)
		if len(vals) > 0 {
			cs.Min, cs.Max = vals[0], vals[0]
			for _, v := range vals {
				cs.Min = math.Min(cs.Min, v)
				cs.Max = math.Max(cs.Max, v)
			}
			cs.Mean, cs.Std = stat.MeanStdDev(vals, nil)
			if math.IsNaN(cs.Std) {
				cs.Std = 0
			}
		}
		return cs
	}
	cs.Kind = "categorical"
	counts := make(map[string]int)
	for _, v := range c.Strings {
		if v != "" {
			counts[v]++
		}
	}
	cs.Unique = len(counts)
	tops := make([]CategoryCount, 0, len(counts))
	for k, n := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: n})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > 8 {
		tops = tops[:8]
	}
	cs.TopValues = tops
	return cs
}

func targetSummary(c *dataset.Column) TargetSummary {
	vals := present(c.Floats)
	ts := TargetSummary{Values: vals}
	if len(vals) == 0 {
		return ts
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	ts.Min = sorted[0]
	ts.Max = sorted[len(sorted)-1]
	ts.Mean, ts.Std = stat.MeanStdDev(vals, nil)
	if math.IsNaN(ts.Std) {
		ts.Std = 0
	}
	ts.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	ts.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	ts.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return ts
}

func groupMeans(c *dataset.Column, target *dataset.Column) GroupMeans {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, lv := range c.Strings {
		if lv == "" || math.IsNaN(target.Floats[i]) {
			continue
		}
		sums[lv] += target.Floats[i]
		counts[lv]++
	}
	levels := make([]string, 0, len(sums))
	for lv := range sums {
		levels = append(levels, lv)
	}
	sort.Strings(levels)
	g := GroupMeans{Column: c.Name, Levels: levels}
	for _, lv := range levels {
		g.Means = append(g.Means, sums[lv]/float64(counts[lv]))
		g.Counts = append(g.Counts, counts[lv])
	}
	return g
}

func correlations(cols []*dataset.Column) *CorrMatrix {
	if len(cols) < 2 {
		return nil
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	n := len(cols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pairCorr(cols[i].Floats, cols[j].Floats)
			mat[i][j] = r
			mat[j][i] = r
		}
	}
	return &CorrMatrix{Columns: names, Values: mat}
}

// pairCorr is the Pearson correlation over rows where both values are
// present. Degenerate pairs yield zero.
func pairCorr(a, b []float64) float64 {
	var xs, ys []float64
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

func present(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
