package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/pipeline"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agent's HTTP API server",
	Long:  "Serves a REST API for starting scans and retrieving reports.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (host:port), overrides server_addr")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		appConfig.ServerAddr = addr
	}

	pctx := pipeline.NewContext(appConfig)
	s := web.NewServer(pctx)
	fmt.Fprintf(cmd.OutOrStdout(), "cybershieldx API listening on %s\n", appConfig.ServerAddr)
	return s.Start()
}
