package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/jaskgrid/internal/config"
	"github.com/jask/jaskgrid/internal/store"
	"github.com/jask/jaskgrid/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := store.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sheet := store.NewSheetStore(db)
	if err := sheet.SeedSampleData(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}

	app, err := tui.New(ctx, cfg, sheet, logger)
	if err != nil {
		log.Fatalf("tui: %v", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// openLogger writes structured logs next to the database. Stdout belongs to
// the alt screen, so nothing may log there while the program runs.
func openLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	path := filepath.Join(filepath.Dir(cfg.Database.Path), "jaskgrid.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}
