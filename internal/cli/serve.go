package cli

import (
	"github.com/spf13/cobra"

	"pentu/internal/results"
	"pentu/internal/system"
	"pentu/internal/tools"
	"pentu/internal/webui/server"
)

var serveOpen bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8787)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the browser")
	_ = v.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved reports over a local read-only web UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := &server.Server{
			Addr:    conf.Serve.Addr,
			Reports: results.NewStore(conf.ResultsDir),
			Tools:   tools.NewRegistry(),
		}
		if serveOpen {
			if err := server.OpenBrowser("http://" + srv.Addr); err != nil {
				system.Logger.Warn("could not open browser", "err", err)
			}
		}
		return srv.Start(cmd.Context())
	},
}
