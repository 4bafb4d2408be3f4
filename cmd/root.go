package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/spendloom-cli/internal/config"
	"github.com/KaramelBytes/spendloom-cli/internal/regress"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "spendloom",
	Short: "SpendLoom CLI: explore purchase data and compare regression models",
	Long: `SpendLoom is a CLI tool that analyzes a customer purchase dataset,
trains several regression models to predict the purchase amount, tunes the
best one, and reports feature importances and conclusions.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.spendloom/config.yaml)")
	// the provider registry is fixed at startup; comparisons only ever see
	// what got registered here
	if err := regress.RegisterBuiltins(regress.Default); err != nil {
		panic(err)
	}
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// ensureConfig falls back to defaults when startup config loading failed.
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	return cfgpkg.Load("")
}
