package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/spendloom-cli/internal/config"
	"github.com/KaramelBytes/spendloom-cli/internal/dataset"
	"github.com/KaramelBytes/spendloom-cli/internal/eda"
	"github.com/KaramelBytes/spendloom-cli/internal/eval"
	"github.com/KaramelBytes/spendloom-cli/internal/regress"
	"github.com/KaramelBytes/spendloom-cli/internal/report"
	"github.com/KaramelBytes/spendloom-cli/internal/tuning"
	"github.com/spf13/cobra"
)

var (
	runRows     int
	runSeed     int64
	runCharts   string
	runNoCharts bool
	runTopFeat  int
)

var runCmd = &cobra.Command{
	Use:   "run [csv]",
	Short: "Run the full pipeline: explore, prepare, compare, tune, report",
	Long: `Run loads the purchase dataset at the given path (synthesizing one when
the file is absent), explores it, prepares features, compares the registered
regression candidates, grid-tunes tree-ensemble winners, and prints the
report. Chart artifacts land in the charts directory unless --no-charts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		if runRows > 0 {
			c.SynthRows = runRows
		}
		if cmd.Flags().Changed("seed") {
			c.Seed = runSeed
		}
		if runCharts != "" {
			c.ChartsDir = runCharts
		}
		if runTopFeat > 0 {
			c.TopFeatures = runTopFeat
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runPipeline(path, c, !runNoCharts)
	},
}

func init() {
	runCmd.Flags().IntVar(&runRows, "rows", 0, "rows to synthesize when the CSV is absent (overrides config)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 42, "random seed for synthesis and splitting (overrides config)")
	runCmd.Flags().StringVar(&runCharts, "charts-dir", "", "directory for chart artifacts (overrides config)")
	runCmd.Flags().BoolVar(&runNoCharts, "no-charts", false, "skip chart emission")
	runCmd.Flags().IntVar(&runTopFeat, "top-features", 0, "feature importances to report (overrides config)")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(path string, c *cfgpkg.Global, charts bool) error {
	w := os.Stdout

	// 1. acquire
	frame, synthesized, err := dataset.Acquire(path, c.SynthRows, c.Seed)
	if err != nil {
		return err
	}
	if synthesized {
		fmt.Fprintf(w, "No input file; synthesized %d rows (seed %d)\n\n", frame.Len(), c.Seed)
	} else {
		fmt.Fprintf(w, "Loaded %d rows from %s\n\n", frame.Len(), path)
	}

	// 2. explore
	if c.SampleRows > 0 {
		fmt.Fprintf(w, "[SAMPLE ROWS]\n%s\n", frame.Head(c.SampleRows))
	}
	summary, err := eda.Summarize(frame, dataset.ColPurchase)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, summary.Markdown())

	var emitter *report.Emitter
	if charts {
		emitter, err = report.NewEmitter(c.ChartsDir)
		if err != nil {
			return err
		}
		if err := emitExploratoryCharts(emitter, summary); err != nil {
			return err
		}
	}

	// 3. prepare
	prepared, err := dataset.Prepare(frame)
	if err != nil {
		return err
	}
	train, test, err := dataset.Split(prepared, c.TestFraction, c.Seed)
	if err != nil {
		return err
	}
	sp, err := buildSplit(train, test)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nPrepared %d features; train %d rows, test %d rows\n\n",
		len(sp.Features), len(sp.XTrain), len(sp.XTest))

	// 4. compare and select
	cmp, err := eval.Compare(regress.Default.Providers(), sp, c.CVFolds)
	if err != nil {
		return err
	}
	report.WriteComparison(w, cmp.Results)
	sel, err := cmp.SelectBest()
	if err != nil {
		return err
	}
	report.WriteSelection(w, sel)
	if emitter != nil {
		if _, err := emitter.ModelComparison(cmp.Results); err != nil {
			return err
		}
	}

	// 5. tune tree winners
	var outcome *tuning.Outcome
	if grid, ok := tuning.GridFor(sel.Name); ok {
		p, _ := regress.Default.Lookup(sel.Name)
		outcome, err = tuning.Search(p, grid, sp, c.GridFolds, c.GridWorkers, sel.Metrics.RMSE)
		if err != nil {
			return err
		}
	}
	report.WriteTuning(w, sel, outcome)

	// 6. importances and conclusions
	var ranked []report.Importance
	if imp, ok := sel.Model.(regress.Importancer); ok {
		ranked = report.RankImportances(sp.Features, imp.FeatureImportances(), c.TopFeatures)
		report.WriteImportances(w, ranked)
		if emitter != nil {
			if _, err := emitter.ImportanceBars(ranked); err != nil {
				return err
			}
		}
	}
	report.WriteConclusions(w, summary, sel, outcome, ranked)
	if emitter != nil {
		fmt.Fprintf(w, "\nCharts written to %s (run %s)\n", c.ChartsDir, emitter.RunID)
	}
	return nil
}

func emitExploratoryCharts(e *report.Emitter, s *eda.Summary) error {
	if _, err := e.TargetHistogram(s.Target); err != nil {
		return err
	}
	for _, g := range s.Groups {
		if _, err := e.GroupBars(g); err != nil {
			return err
		}
	}
	if s.Corr != nil {
		if _, err := e.CorrHeatmap(s.Corr); err != nil {
			return err
		}
	}
	return nil
}

func buildSplit(train, test *dataset.Frame) (eval.Split, error) {
	xtr, ytr, features, err := train.Matrix(dataset.ColPurchase)
	if err != nil {
		return eval.Split{}, err
	}
	xte, yte, _, err := test.Matrix(dataset.ColPurchase)
	if err != nil {
		return eval.Split{}, err
	}
	return eval.Split{XTrain: xtr, YTrain: ytr, XTest: xte, YTest: yte, Features: features}, nil
}
