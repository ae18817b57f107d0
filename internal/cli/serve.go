package cli

import (
	"log"

	"github.com/ironsheep/rtfimage/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(newLoader loaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Runs the MCP server. Requests are read from stdin one per line and
responses are written to stdout; logs go to stderr.

Layout options a tool call leaves out are taken from the image section of
the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newLoader.load()
			if err != nil {
				return err
			}
			if cfg.Debug() {
				log.Printf("rtfimage MCP server %s", version)
			}
			return server.NewWithConfig(cfg).Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
