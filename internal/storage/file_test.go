package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/exploration/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileStorage_GetWorldDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "world.json"), `{"events":[]}`)
	fs := NewFileStorage(dir, testLogger())
	ctx := context.Background()

	require.NoError(t, fs.Ping(ctx))

	data, err := fs.GetWorldDocument(ctx, "world.json")
	require.NoError(t, err)
	assert.Equal(t, `{"events":[]}`, string(data))

	_, err = fs.GetWorldDocument(ctx, "missing.json")
	assert.ErrorIs(t, err, storage.ErrWorldNotFound)

	_, err = fs.GetWorldDocument(ctx, "../world.json")
	assert.NoError(t, err, "names cannot escape the data dir")
}

func TestFileStorage_ListWorlds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"), "events: []")
	writeFile(t, filepath.Join(dir, "a.json"), "{}")
	writeFile(t, filepath.Join(dir, "nested", "c.yml"), "events: []")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	names, err := NewFileStorage(dir, testLogger()).ListWorlds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.yaml", "nested/c.yml"}, names)
}

func TestFileStorage_PingMissingDir(t *testing.T) {
	fs := NewFileStorage(filepath.Join(t.TempDir(), "nope"), testLogger())
	assert.Error(t, fs.Ping(context.Background()))
	assert.NoError(t, fs.Close())
}
