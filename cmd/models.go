package cmd

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/spendloom-cli/internal/regress"
	"github.com/KaramelBytes/spendloom-cli/internal/tuning"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the regression candidates registered at startup",
	Example: `  spendloom models
  spendloom models --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		for _, p := range regress.Default.Providers() {
			grid, tunable := tuning.GridFor(p.Name)
			note := ""
			if tunable {
				note = ", tunable"
			}
			fmt.Printf("- %s (%s%s)\n", p.Name, p.Family, note)
			if verbose && tunable {
				names := make([]string, 0, len(grid))
				for name := range grid {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("    %s: %v\n", name, grid[name])
				}
			}
		}
		if !regress.Default.Available("xgb") {
			fmt.Println("(regularized boosting candidate not registered in this build)")
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().Bool("verbose", false, "show search grids of tunable candidates")
	rootCmd.AddCommand(modelsCmd)
}
