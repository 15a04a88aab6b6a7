// Package cli defines the agent's command-line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/config"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/report"
)

var version = "dev"

var configFileFlag string

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "cybershieldx",
	Short: "CyberShieldX agent — host and network security scanning",
	Long: `CyberShieldX is a security agent that scans the host and its local
network for misconfigurations, missing updates, and exposed services,
and produces a risk report with remediation guidance.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var (
			cfg *config.Config
			err error
		)
		if configFileFlag != "" {
			cfg, err = config.LoadFromFile(configFileFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		appConfig = cfg
		report.Version = version
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "config file (default ~/.cybershieldx.yaml)")
	rootCmd.PersistentFlags().String("client-id", "", "client identifier stamped into reports")
	rootCmd.PersistentFlags().String("reports-dir", "reports", "directory for persisted report JSON files")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, markdown, html")
	rootCmd.PersistentFlags().IntP("concurrency", "c", 10, "max concurrent network probes")
	rootCmd.PersistentFlags().Duration("timeout", 15*time.Second, "per-check command timeout")
	rootCmd.PersistentFlags().Bool("deep", false, "deep network scan (ports 1-1024 per device)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose (debug) logging")
}
