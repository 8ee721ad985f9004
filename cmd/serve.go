package cmd

import (
	"chartrender/apiserver"
	"chartrender/logger"

	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr from config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chart renders over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, assets, err := newRenderer()
		if err != nil {
			return err
		}
		client, err := newClient(assets)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}
		s := apiserver.New(r, client, cfg.Server.AllowedOrigins, logger.GetLogger())
		return s.Run(cmd.Context(), addr)
	},
}
