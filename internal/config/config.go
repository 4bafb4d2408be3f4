package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/spendloom-cli/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Seed         int64   `mapstructure:"seed" yaml:"seed"`
	TestFraction float64 `mapstructure:"test_fraction" yaml:"test_fraction"`
	CVFolds      int     `mapstructure:"cv_folds" yaml:"cv_folds"`
	GridFolds    int     `mapstructure:"grid_folds" yaml:"grid_folds"`
	GridWorkers  int     `mapstructure:"grid_workers" yaml:"grid_workers"`
	SynthRows    int     `mapstructure:"synth_rows" yaml:"synth_rows"`
	ChartsDir    string  `mapstructure:"charts_dir" yaml:"charts_dir"`
	TopFeatures  int     `mapstructure:"top_features" yaml:"top_features"`
	SampleRows   int     `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.spendloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".spendloom")
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SPENDLOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("seed", 42)
	v.SetDefault("test_fraction", 0.2)
	v.SetDefault("cv_folds", 5)
	v.SetDefault("grid_folds", 3)
	v.SetDefault("grid_workers", 0) // 0 = one per CPU
	v.SetDefault("synth_rows", 1000)
	v.SetDefault("charts_dir", "./charts")
	v.SetDefault("top_features", 10)
	v.SetDefault("sample_rows", 5)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".spendloom"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// missing config file falls back to defaults; anything else is real
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if cfgFile != "" {
				return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return nil, fmt.Errorf("test_fraction %v out of range (0,1)", c.TestFraction)
	}
	if c.CVFolds < 2 || c.GridFolds < 2 {
		return nil, fmt.Errorf("fold counts must be at least 2")
	}
	if c.SampleRows < 0 {
		return nil, fmt.Errorf("sample_rows must be non-negative, got %d", c.SampleRows)
	}
	return &c, nil
}
