package cmd

import (
	"context"

	"github.com/kasuboski/showtrack/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the json api",
	Long:  `serve the json api`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a := newApp(context.Background())
		defer a.close()

		s := server.New(a.log, a.manager)
		return s.Serve(a.cfg.Server.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
