package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configSettings holds the effective configuration values
type configSettings struct {
	DownloadDir string `json:"download_dir"`
	BaseURL     string `json:"base_url"`
	Timeout     string `json:"timeout"`
	UserAgent   string `json:"user_agent"`
	ConfigFile  string `json:"config_file,omitempty"`
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View modseek configuration settings.

Settings come from ~/.config/modseek/config.yaml, MODSEEK_* environment
variables and built-in defaults, in that order of precedence.`,
		Example: `  # View effective configuration
  modseek config show

  # Show configuration file path
  modseek config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(NewConfigShowCommand())
	cmd.AddCommand(NewConfigPathCommand())

	return cmd
}

// NewConfigShowCommand creates the config show subcommand
func NewConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Display the configuration values modseek will use, after merging the
config file, environment variables and defaults.`,
		Example: `  # View effective configuration
  modseek config show

  # Output in JSON format
  modseek config show --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}
}

// NewConfigPathCommand creates the config path subcommand
func NewConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long: `Print the path of the configuration file in use. If no file was found,
the default location is printed.`,
		Example: `  # Show configuration file path
  modseek config path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath(cmd.OutOrStdout())
		},
	}
}

// runConfigShow executes the config show command
func runConfigShow(stdout io.Writer) error {
	settings := configSettings{
		DownloadDir: viper.GetString("download_dir"),
		BaseURL:     viper.GetString("api.base_url"),
		Timeout:     viper.GetDuration("api.timeout").String(),
		UserAgent:   viper.GetString("api.user_agent"),
		ConfigFile:  viper.ConfigFileUsed(),
	}

	if IsJSONOutput() {
		output := struct {
			Status string         `json:"status"`
			Data   configSettings `json:"data"`
		}{
			Status: "success",
			Data:   settings,
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return fmt.Errorf("encode JSON output: %w", err)
		}

		return nil
	}

	fmt.Fprintf(stdout, "Download dir: %s\n", settings.DownloadDir)
	fmt.Fprintf(stdout, "API base URL: %s\n", settings.BaseURL)
	fmt.Fprintf(stdout, "API timeout:  %s\n", settings.Timeout)
	fmt.Fprintf(stdout, "User agent:   %s\n", settings.UserAgent)

	if settings.ConfigFile != "" {
		fmt.Fprintf(stdout, "Config file:  %s\n", settings.ConfigFile)
	} else {
		fmt.Fprintf(stdout, "Config file:  (none, using defaults)\n")
	}

	return nil
}

// runConfigPath executes the config path command
func runConfigPath(stdout io.Writer) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get user home directory: %w", err)
		}

		path = filepath.Join(home, ".config", "modseek", "config.yaml")
	}

	if IsJSONOutput() {
		output := struct {
			Status string `json:"status"`
			Data   struct {
				Path string `json:"path"`
			} `json:"data"`
		}{Status: "success"}
		output.Data.Path = path

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return fmt.Errorf("encode JSON output: %w", err)
		}

		return nil
	}

	fmt.Fprintln(stdout, path)

	return nil
}
