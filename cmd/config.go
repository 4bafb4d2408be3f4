package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/spendloom-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set SpendLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		fmt.Printf("seed: %d\n", c.Seed)
		fmt.Printf("test_fraction: %.3f\n", c.TestFraction)
		fmt.Printf("cv_folds: %d\n", c.CVFolds)
		fmt.Printf("grid_folds: %d\n", c.GridFolds)
		fmt.Printf("grid_workers: %d\n", c.GridWorkers)
		fmt.Printf("synth_rows: %d\n", c.SynthRows)
		fmt.Printf("charts_dir: %s\n", c.ChartsDir)
		fmt.Printf("top_features: %d\n", c.TopFeatures)
		fmt.Printf("sample_rows: %d\n", c.SampleRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		switch key {
		case "seed":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("seed must be an integer: %w", err)
			}
			c.Seed = n
		case "test_fraction":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f >= 1 {
				return fmt.Errorf("test_fraction must be a fraction in (0,1)")
			}
			c.TestFraction = f
		case "cv_folds":
			n, err := strconv.Atoi(val)
			if err != nil || n < 2 {
				return fmt.Errorf("cv_folds must be an integer >= 2")
			}
			c.CVFolds = n
		case "grid_folds":
			n, err := strconv.Atoi(val)
			if err != nil || n < 2 {
				return fmt.Errorf("grid_folds must be an integer >= 2")
			}
			c.GridFolds = n
		case "grid_workers":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("grid_workers must be a non-negative integer")
			}
			c.GridWorkers = n
		case "synth_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("synth_rows must be a positive integer")
			}
			c.SynthRows = n
		case "charts_dir":
			c.ChartsDir = val
		case "top_features":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("top_features must be a positive integer")
			}
			c.TopFeatures = n
		case "sample_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("sample_rows must be a non-negative integer")
			}
			c.SampleRows = n
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
