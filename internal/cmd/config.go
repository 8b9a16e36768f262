package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/skim/internal/config"
	"github.com/Iron-Ham/skim/internal/errors"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or create the skim configuration",
		Long: `View or create the skim configuration.

Without arguments, displays the effective configuration.
To page a file named "config", use ./config.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long:  `Create a default config file at ~/.config/skim/config.yaml with all available options.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if configReadErr != nil {
		return configReadErr
	}
	if _, err := config.Load(); err != nil {
		return errors.Wrap(err, "load config")
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	_, err = out.Write(data)
	return err
}

const defaultConfigContent = `# skim configuration

pager:
  # Columns per tab stop (1-16)
  tab_width: 8
  # Show "line/total pct%" at the right of the prompt row
  show_position: true

# Colors are "#rgb", "#rrggbb", or an ANSI color number 0-255.
theme:
  match:
    foreground: "0"
    background: "3"
  current:
    foreground: "0"
    background: "208"
    bold: true
  message:
    reverse: true

# Rebind commands per mode. The listed keys replace the defaults.
# keys:
#   normal:
#     scroll_down: [j, down, ctrl+e]
#     quit: [q, ctrl+c]
#   search:
#     cancel_search: [esc]

logging:
  # Write debug logs (to file, or <config dir>/skim.log)
  enabled: false
  level: info
  max_size_mb: 5
  max_backups: 2
  compress: false
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}
	fmt.Fprintln(out, "Environment variables: SKIM_* (e.g., SKIM_PAGER_TAB_WIDTH)")
	return nil
}
