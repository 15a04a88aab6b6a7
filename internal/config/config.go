// Package config provides configuration loading for the agent.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (CYBERSHIELDX_*) > config file
// (~/.cybershieldx.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all agent configuration options.
type Config struct {
	ClientID     string        `mapstructure:"client_id" yaml:"client_id"`
	ReportsDir   string        `mapstructure:"reports_dir" yaml:"reports_dir"`
	OutputFormat string        `mapstructure:"output_format" yaml:"output_format"`
	Concurrency  int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	DeepScan     bool          `mapstructure:"deep_scan" yaml:"deep_scan"`
	ServerAddr   string        `mapstructure:"server_addr" yaml:"server_addr"`
	Verbose      bool          `mapstructure:"verbose" yaml:"verbose"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		ReportsDir:   "reports",
		OutputFormat: "table",
		Concurrency:  10,
		Timeout:      15 * time.Second,
		ServerAddr:   ":8090",
	}
}

// Load reads configuration from ~/.cybershieldx.yaml and environment
// variables. It does NOT apply CLI flag overrides — call ApplyFlags
// for that.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".cybershieldx")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("CYBERSHIELDX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("CYBERSHIELDX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were
// explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("client-id") {
		val, _ := flags.GetString("client-id")
		cfg.ClientID = val
	}
	if flags.Changed("reports-dir") {
		val, _ := flags.GetString("reports-dir")
		cfg.ReportsDir = val
	}
	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
	if flags.Changed("concurrency") {
		val, _ := flags.GetInt("concurrency")
		cfg.Concurrency = val
	}
	if flags.Changed("timeout") {
		val, _ := flags.GetDuration("timeout")
		cfg.Timeout = val
	}
	if flags.Changed("deep") {
		val, _ := flags.GetBool("deep")
		cfg.DeepScan = val
	}
	if flags.Changed("verbose") {
		val, _ := flags.GetBool("verbose")
		cfg.Verbose = val
	}
}

// ConfigFilePath returns the default config file path
// (~/.cybershieldx.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cybershieldx.yaml"
	}
	return filepath.Join(home, ".cybershieldx.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reports_dir", "reports")
	v.SetDefault("output_format", "table")
	v.SetDefault("concurrency", 10)
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("server_addr", ":8090")
}
