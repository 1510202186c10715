package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/exploration/internal/config"
	"github.com/jwebster45206/exploration/internal/logger"
	"github.com/jwebster45206/exploration/internal/storage"
)

func main() {
	cfg := config.Load()

	// The alt screen owns the terminal, so logs only go to LOG_FILE.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close() // Ignore error in defer
		}()
		logOut = f
	}
	log := logger.Setup(cfg, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, worldName, err := storage.FromConfig(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open world source: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	b := newBridge()
	p := tea.NewProgram(NewConsoleUI(ctx, cfg, store, worldName, log, b),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	b.program = p

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
