package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/termsui-dev/termsui/internal/infrastructure/config"
	"github.com/termsui-dev/termsui/internal/infrastructure/keys"
	"github.com/termsui-dev/termsui/internal/tui"
)

// editCmd opens the editor explicitly; the bare root command does the same.
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration editor",
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringP("document", "d", "", "path to the configuration document")
	rootCmd.AddCommand(editCmd)
	rootCmd.Flags().StringP("document", "d", "", "path to the configuration document")
}

func runEdit(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("document")
	if path == "" {
		var err error
		path, err = defaultDocumentPath()
		if err != nil {
			return err
		}
	}
	slog.Info("starting editor", "document", path, "settings", viper.ConfigFileUsed())

	app := tui.New(config.NewStore(path), keys.NewGenerator())
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
