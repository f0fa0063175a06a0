package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/server"
)

// Serve command flags.
var (
	serveFlagAddr    string
	serveFlagPIDFile string
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the store over HTTP",
	Long: `Serve the record namespaces, daily tasks, journal, letter, attributes,
notifications and blobs as a JSON API on a local address.

Only one server runs at a time; a PID file guards the address.

Examples:
  chronos serve
  chronos serve --addr 127.0.0.1:9000
  chronos serve status`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a server is running",
	Args:  cobra.NoArgs,
	RunE:  runServeStatus,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "", "Listen address (default from CHRONOS_ADDR or 127.0.0.1:7788)")
	serveCmd.PersistentFlags().StringVar(&serveFlagPIDFile, "pid-file", "", "PID file path")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveFlagAddr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	srv := server.New(ctx, Version)
	return srv.Run(cmd.Context(), server.RunOptions{
		Addr:            addr,
		ShutdownTimeout: ctx.Config.Server.ShutdownTimeout,
		PIDFile:         server.NewPIDFile(serveFlagPIDFile),
		Ready: func(bound string) {
			if ctx.IsJSON() {
				_ = ctx.JSONFormatter().PrintData(map[string]string{"addr": bound})
				return
			}
			cli := ctx.CLIFormatter()
			cli.Success("Serving on http://" + bound)
			cli.Muted("Press Ctrl+C to stop")
		},
	})
}

func runServeStatus(cmd *cobra.Command, args []string) error {
	pf := server.NewPIDFile(serveFlagPIDFile)
	pid := pf.RunningPID()

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(map[string]any{"running": pid != 0, "pid": pid, "pidFile": pf.Path()})
	}

	cli := ctx.CLIFormatter()
	if pid == 0 {
		cli.Muted("No server running")
		return nil
	}
	cli.Printf("Server running (pid %d)\n", pid)
	return nil
}
