package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point. Running it without a subcommand
// opens the editor.
var rootCmd = &cobra.Command{
	Use:   "termsui",
	Short: "Terminal editor for the account configuration store",
	Long: `Termsui is a terminal editor for the account configuration store: a
document of groups, each holding RPC profiles and key identities. It edits
names, endpoints, and active selections in place and persists every accepted
change.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.termsui.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// initConfig loads the app's own settings from file and environment. The
// account configuration document is separate and addressed by --document.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".termsui")
	}

	viper.SetEnvPrefix("TERMSUI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

// setupLogging sends slog to a file: the TUI owns the terminal, so logs
// cannot go to stderr while the screen is up.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = io.Discard
	if path := logFilePath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = file
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func logFilePath() string {
	if path := viper.GetString("log_file"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termsui", "termsui.log")
}

// defaultDocumentPath resolves the account document location: flag, then
// settings file, then $HOME/.termsui/termsui.yaml.
func defaultDocumentPath() (string, error) {
	if path := viper.GetString("document"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".termsui", "termsui.yaml"), nil
}
