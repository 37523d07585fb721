package main

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the http server.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		address, err := cmd.Flags().GetString("address")
		if err != nil {
			return err
		}
		if address != "" {
			cfg.Server.Address = address
		}
		svc, _, err := newBlog(cfg)
		if err != nil {
			return err
		}
		return svc.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringP("address", "a", "", "overrides the configured listen address i.e. ':8080'")
}
