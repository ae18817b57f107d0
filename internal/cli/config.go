package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ironsheep/rtfimage/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(newLoader loaderFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manages the rtfimage configuration.

Configuration file: ~/.rtfimage/config.yaml (or $RTFIMAGE_CONFIG)

Subcommands:
  show    Show the effective configuration
  init    Write a default configuration file
  path    Print the configuration file path`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Writes the default configuration to the configuration file path.

Fails if the file already exists unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader()
			if err != nil {
				return fmt.Errorf("failed to initialise config loader: %w", err)
			}
			if loader.Exists() && !force {
				return fmt.Errorf("config file already exists: %s\nuse --force to overwrite", loader.ConfigPath())
			}
			if err := loader.Save(config.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", loader.ConfigPath())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Shows the configuration in effect, including environment overrides.
Defaults are shown when no configuration file exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader()
			if err != nil {
				return fmt.Errorf("failed to initialise config loader: %w", err)
			}
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return showConfig(cmd, loader, cfg)
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
			return nil
		},
	}

	cmd.AddCommand(showCmd, initCmd, pathCmd)
	return cmd
}

func showConfig(cmd *cobra.Command, loader *config.Loader, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	if loader.Exists() {
		fmt.Fprintf(out, "Config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "Config file: (defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(out, string(data))

	fmt.Fprintln(out, "Environment:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.EnvConfigPath, "configuration file"},
		{config.EnvLogLevel, "log level override"},
		{config.EnvDebug, "force debug logging"},
	}
	for _, ev := range envVars {
		value := os.Getenv(ev.key)
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, value)
	}
	return w.Flush()
}
