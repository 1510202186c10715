package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwebster45206/exploration/internal/config"
	"github.com/jwebster45206/exploration/internal/console"
	"github.com/jwebster45206/exploration/internal/logger"
	"github.com/jwebster45206/exploration/internal/storage"
	"github.com/jwebster45206/exploration/pkg/reality"
	"github.com/jwebster45206/exploration/pkg/worlddoc"
)

func main() {
	cfg := config.Load()

	logOut, closeLog, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log := logger.Setup(cfg, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// A second signal falls through to the default handler.
		<-ctx.Done()
		stop()
	}()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r, err := newReality(ctx, cfg, log, os.Stdin, os.Stdout, cancel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED TO LOAD DATA FILE: %v\n", err)
		os.Exit(1)
	}

	if err := r.Run(ctx); err != nil {
		logger.WithError(log, err).Error("Turn loop failed")
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// newReality loads the configured world and wires it to a line console.
// onEOF runs when the input runs dry.
func newReality(ctx context.Context, cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer, onEOF func()) (*reality.Reality, error) {
	src, name, err := storage.FromConfig(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	if name == "" {
		return nil, fmt.Errorf("WORLD_PATH %s is a directory, not a world", cfg.WorldPath)
	}

	w, st, err := worlddoc.LoadFrom(ctx, src, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load world %s: %w", name, err)
	}
	log.Info("World loaded", "source", cfg.WorldSource, "name", name, "events", w.Len())

	prompter := console.NewLinePrompter(ctx, in, out)
	prompter.OnEOF = onEOF

	return reality.New(w, st, prompter, out,
		reality.WithLogger(log),
		reality.WithLeaveAtRoot(cfg.LeaveAtRoot),
	), nil
}

func openLog(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.LogFile == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
