// Package cli implements the rtfimage command line.
package cli

import (
	"fmt"

	"github.com/ironsheep/rtfimage/internal/config"
	"github.com/ironsheep/rtfimage/internal/server"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// SetVersion sets the version reported by the CLI and the MCP handshake.
func SetVersion(v string) {
	version = v
	server.Version = v
}

// SetBuildInfo records the build time and commit shown by the version command.
func SetBuildInfo(time, commit string) {
	buildTime = time
	gitCommit = commit
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call returns fresh commands with
// their own flag state.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "rtfimage",
		Short: "Embed images in RTF documents",
		Long: `rtfimage turns PNG, JPEG and GIF images into RTF picture blocks.

Without a subcommand it runs the MCP server on stdin/stdout.

Environment variables:
  RTFIMAGE_CONFIG=path       Configuration file
  RTFIMAGE_LOG_LEVEL=debug   Enable debug logging
  RTFIMAGE_DEBUG=1           Force debug logging`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default $RTFIMAGE_CONFIG or ~/.rtfimage/config.yaml)")

	newLoader := loaderFunc(func() (*config.Loader, error) {
		if configPath != "" {
			return config.NewLoaderWithPath(configPath), nil
		}
		return config.NewLoader()
	})

	serve := newServeCmd(newLoader)
	root.RunE = serve.RunE

	root.AddCommand(
		serve,
		newRenderCmd(newLoader),
		newInfoCmd(),
		newConfigCmd(newLoader),
		newVersionCmd(),
	)
	return root
}

type loaderFunc func() (*config.Loader, error)

func (f loaderFunc) load() (*config.Config, error) {
	loader, err := f()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rtfimage %s\n", version)
			fmt.Fprintf(out, "  Build time: %s\n", buildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", gitCommit)
		},
	}
}
