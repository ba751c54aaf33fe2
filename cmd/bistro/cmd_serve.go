package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bistro/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}
