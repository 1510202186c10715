package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jwebster45206/exploration/internal/config"
	"github.com/jwebster45206/exploration/internal/logger"
	"github.com/jwebster45206/exploration/internal/storage"
	"github.com/jwebster45206/exploration/pkg/worlddoc"
)

func main() {
	publish := flag.Bool("publish", false, "store the document in Redis under its file name")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-publish] <world.json|world.yaml>\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	filename := flag.Arg(0)
	validator := &WorldValidator{}

	data, err := validator.validateFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	for _, w := range validator.warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Println("World file is valid!")

	if !*publish {
		return
	}
	cfg := config.Load()
	log := logger.Setup(cfg, os.Stderr)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	key := filepath.Base(filename)
	if err := publishWorld(ctx, cfg.RedisURL, key, data, log); err != nil {
		fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Published as %q\n", key)
}

// WorldValidator checks a world document the way the game would load it, but
// rejects unknown fields and collects authoring warnings.
type WorldValidator struct {
	warnings []string
}

func (v *WorldValidator) validateFile(filename string) ([]byte, error) {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(baseName))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("world file must have a .json, .yaml or .yml extension: %s", baseName)
	}
	if !isValidWorldFilename(strings.TrimSuffix(baseName, filepath.Ext(baseName))) {
		return nil, fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., dark_forest.json, not dark-forest.json or DarkForest.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	doc, err := worlddoc.DecodeStrict(data, worlddoc.FormatFromName(baseName))
	if err != nil {
		return nil, fmt.Errorf("file %s failed strict unmarshaling: %w", filename, err)
	}
	w, start, err := worlddoc.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("file %s does not build: %w", filename, err)
	}
	v.warnings = worlddoc.Warnings(w, start)
	return data, nil
}

func publishWorld(ctx context.Context, redisURL, key string, data []byte, log *slog.Logger) error {
	store, err := storage.NewRedisStorage(redisURL, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()
	if err := store.WaitForConnection(ctx, 3, time.Second); err != nil {
		return err
	}
	return store.PutWorldDocument(ctx, key, data)
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
