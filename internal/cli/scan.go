package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/config"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/output"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/pipeline"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a security scan and print the report",
	Long: `Run one of the four scan types against this host:

  quick    basic system facts plus a port snapshot of the primary interface
  system   detailed host scan with security configuration checks
  network  discover and probe devices on the local subnet
  full     system and network scans combined`,
}

// runPipeline executes one scan. Extracted as a variable so CLI tests
// can substitute a canned report without touching the host.
var runPipeline = func(ctx context.Context, cfg *config.Config, scanType types.ScanType) (*types.Report, error) {
	pctx := pipeline.NewContext(cfg)
	return pipeline.New(pctx).Run(ctx, scanType)
}

func runScan(cmd *cobra.Command, scanType types.ScanType) error {
	formatter, err := output.GetFormatter(appConfig.OutputFormat)
	if err != nil {
		return err
	}

	rep, err := runPipeline(cmd.Context(), appConfig, scanType)
	if err != nil {
		return err
	}

	return formatter.Format(cmd.OutOrStdout(), rep)
}

func scanSubcommand(use, short string, scanType types.ScanType) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, scanType)
		},
	}
}

func init() {
	scanCmd.AddCommand(
		scanSubcommand("quick", "Basic system facts and a port snapshot", types.ScanQuick),
		scanSubcommand("system", "Detailed host scan with configuration checks", types.ScanSystem),
		scanSubcommand("network", "Discover and probe devices on the local subnet", types.ScanNetwork),
		scanSubcommand("full", "Combined system and network scan", types.ScanFull),
	)
	rootCmd.AddCommand(scanCmd)
}
