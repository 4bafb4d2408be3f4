package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/spendloom-cli/internal/dataset"
	"github.com/KaramelBytes/spendloom-cli/internal/eda"
	"github.com/KaramelBytes/spendloom-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	anaCharts   string
	anaNoCharts bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <csv>",
	Short: "Explore a purchase dataset and print its summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		if anaCharts != "" {
			c.ChartsDir = anaCharts
		}
		frame, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		if c.SampleRows > 0 {
			fmt.Fprintf(os.Stdout, "[SAMPLE ROWS]\n%s\n", frame.Head(c.SampleRows))
		}
		summary, err := eda.Summarize(frame, dataset.ColPurchase)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, summary.Markdown())
		if anaNoCharts {
			return nil
		}
		e, err := report.NewEmitter(c.ChartsDir)
		if err != nil {
			return err
		}
		if err := emitExploratoryCharts(e, summary); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Charts written to %s (run %s)\n", c.ChartsDir, e.RunID)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&anaCharts, "charts-dir", "", "directory for chart artifacts (overrides config)")
	analyzeCmd.Flags().BoolVar(&anaNoCharts, "no-charts", false, "skip chart emission")
	rootCmd.AddCommand(analyzeCmd)
}
