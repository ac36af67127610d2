// Package main is the entry point for the mindppt CLI. With no subcommand it
// starts the terminal app.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sant0-9/mindppt/internal/config"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/logger"
	"github.com/sant0-9/mindppt/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mindppt",
	Short: "Turn text into a structured presentation",
	Long: `mindppt analyzes a piece of text, drafts an enriched outline in one of
the built-in presentation styles and renders it as a .pptx deck.

Run without a subcommand for the interactive terminal app, or use "serve" for
the JSON API and "generate" for a one-shot headless run.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/mindppt/config.yaml)")
	rootCmd.Flags().StringP("file", "f", "", "prefill the input with a .txt or .md file")
	rootCmd.Flags().StringP("out", "o", ".", "directory for saved decks and mind maps")
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var src *document.Source
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		if src, err = document.LoadSource(file); err != nil {
			return err
		}
	}
	out, _ := cmd.Flags().GetString("out")

	log := logger.Nop()
	if dir, err := config.ConfigDir(); err == nil {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			if l, err := logger.NewFile(cfg.LogMode, filepath.Join(dir, "mindppt.log")); err == nil {
				log = l
			}
		}
	}
	defer log.Sync()

	needsSetup := cfgPath == "" && !config.Exists() && cfg.Credential() == ""
	log.Info("starting terminal app", "version", version, "provider", cfg.Provider, "setup", needsSetup)

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		NeedsSetup: needsSetup,
		Logger:     log,
		Source:     src,
		OutputDir:  out,
	})
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal app: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
