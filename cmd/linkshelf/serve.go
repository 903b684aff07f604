package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/app"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web app",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			cfg.ListenPort = listenAddr
		}

		a, err := app.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		return a.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address, ex: :8080 (env LINKSHELF_LISTEN_PORT)")
}
