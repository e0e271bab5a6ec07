package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"

	"folio/internal/adapters/autosave"
	"folio/internal/adapters/browser"
	"folio/internal/adapters/editor"
	"folio/internal/adapters/site"
	"folio/internal/adapters/storage"
	"folio/internal/adapters/tui"
	"folio/internal/application"
	"folio/internal/config"
	"folio/internal/logging"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default ./folio.yaml)")
	flag.Parse()

	if err := run(*cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// the alt screen owns the terminal, so logs go to a file
	logger, logFile, err := logging.OpenFile(cfg.LogFile(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := storage.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	doc, err := store.Repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}
	ws := application.NewWorkspace(doc)

	saver := autosave.New(store.Repo, cfg.AutosaveWait, logger)
	saver.Attach(ws)
	defer func() {
		if err := saver.Close(ctx); err != nil {
			logger.Error("final save failed", "error", err)
		}
	}()

	builder, err := site.NewBuilder(cfg.OutputDir, cfg.SiteTitle, logger)
	if err != nil {
		return err
	}

	app := tui.NewApp(ws, tui.Options{
		Composer: editor.NewComposer(""),
		Opener:   browser.NewOpener(cfg.OutputDir),
		Site:     builder,
	})

	logger.Info("dashboard started", "store", cfg.Store, "path", store.Path)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
