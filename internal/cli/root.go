package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steviee/modseek/internal/download"
	"github.com/steviee/modseek/internal/modrinth"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger *slog.Logger
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modseek",
		Short: "Search Modrinth and download release files",
		Long: `modseek searches Modrinth for mods, plugins, data packs, shaders and
other content, and downloads release files with their metadata recorded.

It provides:
  - A query language with include/exclude filters and sorting rules
  - An interactive browser for paging results and release listings
  - One-shot search and download commands for scripting
  - A per-directory manifest so a jar on disk can be traced to its release`,
		Example: `  # Browse interactively
  modseek browse

  # Search once, with filters and a sorting rule
  modseek search sodium +fabric +v1.21.1 /downloads

  # Download the best matching release of a project
  modseek get sodium v1.21.1 fabric`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if err := initConfig(); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/modseek/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewBrowseCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// initLogger initializes the global logger based on flags. Logs go to
// stderr so stdout stays parseable in JSON mode.
func initLogger() error {
	var level slog.Level
	var handler slog.Handler

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if jsonOut {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	viper.SetDefault("download_dir", "downloads")
	viper.SetDefault("api.base_url", modrinth.DefaultBaseURL)
	viper.SetDefault("api.timeout", modrinth.DefaultTimeout)
	viper.SetDefault("api.user_agent", modrinth.UserAgent)

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get user home directory: %w", err)
		}

		// Search config in ~/.config/modseek directory
		configDir := filepath.Join(home, ".config", "modseek")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match, MODSEEK_API_BASE_URL and
	// the like
	viper.SetEnvPrefix("MODSEEK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	return nil
}

// newAPIClient builds a Modrinth client from the effective configuration.
func newAPIClient() *modrinth.Client {
	return modrinth.NewClient(&modrinth.Config{
		BaseURL:   viper.GetString("api.base_url"),
		Timeout:   viper.GetDuration("api.timeout"),
		UserAgent: viper.GetString("api.user_agent"),
	})
}

// newDownloader builds a downloader writing below the configured download
// directory.
func newDownloader() *download.Downloader {
	return download.NewDownloader(viper.GetString("download_dir"))
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
