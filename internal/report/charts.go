// Package report turns computed summaries into artifacts: PNG charts and a
// console transcript. It never computes statistics itself.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/spendloom-cli/internal/eda"
	"github.com/KaramelBytes/spendloom-cli/internal/eval"
	"github.com/KaramelBytes/spendloom-cli/internal/utils"
	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Emitter writes chart files into a directory. Every emitter carries a run ID
// that the transcript records alongside the artifact paths.
type Emitter struct {
	Dir   string
	RunID string
}

// NewEmitter creates the charts directory and assigns a fresh run ID.
func NewEmitter(dir string) (*Emitter, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("charts dir: %w", err)
	}
	return &Emitter{Dir: dir, RunID: uuid.NewString()}, nil
}

func (e *Emitter) save(p *plot.Plot, name string) (string, error) {
	path := filepath.Join(e.Dir, name)
	if err := p.Save(7*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return path, nil
}

// TargetHistogram renders the purchase amount distribution.
func (e *Emitter) TargetHistogram(t eda.TargetSummary) (string, error) {
	p := plot.New()
	p.Title.Text = "Purchase amount distribution"
	p.X.Label.Text = "Purchase"
	p.Y.Label.Text = "Count"
	h, err := plotter.NewHist(plotter.Values(t.Values), 20)
	if err != nil {
		return "", fmt.Errorf("histogram: %w", err)
	}
	p.Add(h)
	return e.save(p, "target_distribution.png")
}

// GroupBars renders mean purchase per level of one categorical column.
func (e *Emitter) GroupBars(g eda.GroupMeans) (string, error) {
	p := plot.New()
	p.Title.Text = "Mean purchase by " + g.Column
	p.Y.Label.Text = "Mean purchase"
	bars, err := plotter.NewBarChart(plotter.Values(g.Means), vg.Points(24))
	if err != nil {
		return "", fmt.Errorf("bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(g.Levels...)
	name := "purchase_by_" + strings.ToLower(g.Column) + ".png"
	return e.save(p, name)
}

// corrGrid adapts a correlation matrix to the heat map grid interface.
type corrGrid struct {
	m *eda.CorrMatrix
}

func (g corrGrid) Dims() (c, r int)   { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrHeatmap renders the numeric-column correlation matrix.
func (e *Emitter) CorrHeatmap(m *eda.CorrMatrix) (string, error) {
	p := plot.New()
	p.Title.Text = "Correlation matrix"
	hm := plotter.NewHeatMap(corrGrid{m: m}, palette.Heat(12, 1))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)
	ticks := make([]plot.Tick, len(m.Columns))
	for i, c := range m.Columns {
		ticks[i] = plot.Tick{Value: float64(i), Label: c}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 0.6
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return e.save(p, "correlation_matrix.png")
}

// ModelComparison renders per-candidate RMSE bars in enumeration order.
func (e *Emitter) ModelComparison(results []eval.Result) (string, error) {
	p := plot.New()
	p.Title.Text = "Model comparison (test RMSE)"
	p.Y.Label.Text = "RMSE"
	vals := make(plotter.Values, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		vals[i] = r.Metrics.RMSE
		names[i] = r.Name
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(28))
	if err != nil {
		return "", fmt.Errorf("bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)
	return e.save(p, "model_comparison.png")
}

// ImportanceBars renders the top-ranked feature importances.
func (e *Emitter) ImportanceBars(ranked []Importance) (string, error) {
	p := plot.New()
	p.Title.Text = "Feature importances"
	p.Y.Label.Text = "Importance"
	vals := make(plotter.Values, len(ranked))
	names := make([]string, len(ranked))
	for i, r := range ranked {
		vals[i] = r.Score
		names[i] = r.Feature
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return "", fmt.Errorf("bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.6
	return e.save(p, "feature_importance.png")
}
