package storage

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/jwebster45206/exploration/pkg/storage"
)

// FileStorage serves world documents from a directory on disk.
type FileStorage struct {
	dataDir string
	logger  *slog.Logger
}

var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates a file storage rooted at dataDir.
func NewFileStorage(dataDir string, logger *slog.Logger) *FileStorage {
	if dataDir == "" {
		dataDir = "./data"
	}
	return &FileStorage{
		dataDir: dataDir,
		logger:  logger,
	}
}

func (f *FileStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(f.dataDir)
	if err != nil {
		return fmt.Errorf("data dir unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", f.dataDir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) GetWorldDocument(ctx context.Context, name string) ([]byte, error) {
	path := filepath.Join(f.dataDir, filepath.Clean("/"+name))
	f.logger.Debug("Loading world", "name", name, "full_path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Error("World file not found", "path", path, "error", err)
			return nil, fmt.Errorf("%w: %s", storage.ErrWorldNotFound, name)
		}
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return data, nil
}

// ListWorlds returns every .json, .yaml and .yml file below the data dir,
// relative to it.
func (f *FileStorage) ListWorlds(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(f.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			f.logger.Warn("Failed to read world path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".json", ".yaml", ".yml":
		default:
			return nil
		}
		rel, err := filepath.Rel(f.dataDir, path)
		if err != nil {
			return nil
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		f.logger.Error("Failed to walk data directory", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	slices.Sort(names)
	return names, nil
}
