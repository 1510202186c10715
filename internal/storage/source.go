package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jwebster45206/exploration/internal/config"
	"github.com/jwebster45206/exploration/pkg/storage"
)

// FromConfig opens the world source named by cfg and returns it with the
// name of the world to load. The name is empty when cfg points at a
// directory of worlds rather than a single one.
func FromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, string, error) {
	switch cfg.WorldSource {
	case config.WorldSourceFile:
		if info, err := os.Stat(cfg.WorldPath); err == nil && info.IsDir() {
			return NewFileStorage(cfg.WorldPath, logger), "", nil
		}
		return NewFileStorage(filepath.Dir(cfg.WorldPath), logger), filepath.Base(cfg.WorldPath), nil

	case config.WorldSourceRedis:
		rs, err := NewRedisStorage(cfg.RedisURL, logger)
		if err != nil {
			return nil, "", err
		}
		if err := rs.WaitForConnection(ctx, 5, time.Second); err != nil {
			_ = rs.Close()
			return nil, "", err
		}
		// Worlds are published under their file name, so data/world.json and
		// world.json name the same key.
		return rs, filepath.Base(cfg.WorldPath), nil

	default:
		return nil, "", fmt.Errorf("unknown world source %q", cfg.WorldSource)
	}
}
