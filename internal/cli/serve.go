package cli

import (
	"github.com/spf13/cobra"
	"mediascribe/internal/core/config"
	"mediascribe/internal/core/logger"
	"mediascribe/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP chat service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		srv, err := server.NewServer(cfg, logger.New())
		if err != nil {
			return err
		}
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config)")
}
