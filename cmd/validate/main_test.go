package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorld(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateFile_ShippedWorlds(t *testing.T) {
	for _, name := range []string{"world.json", "world.yaml"} {
		t.Run(name, func(t *testing.T) {
			v := &WorldValidator{}
			data, err := v.validateFile(filepath.Join("..", "..", "data", name))
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			assert.Empty(t, v.warnings)
		})
	}
}

func TestValidateFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  string
	}{
		{"bad extension", "world.txt", `{}`, "extension"},
		{"bad filename", "Dark-Forest.json", `{}`, "snake_case"},
		{"unknown field", "world.json", `{"events": [], "monsters": []}`, "strict"},
		{"missing preview", "world.json", `{"events": [{"x": 0, "y": 0, "tree": {}}]}`, "does not build"},
		{"bad yaml", "world.yaml", "events: [\n", "strict"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &WorldValidator{}
			_, err := v.validateFile(writeWorld(t, tt.filename, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFile_Warnings(t *testing.T) {
	v := &WorldValidator{}
	_, err := v.validateFile(writeWorld(t, "x.locked_door.json", `{
		"events": [{"x": 0, "y": 1, "preview": "A locked door",
			"tree": {"branches": [{"on": 9, "text": "It opens."}]}}]
	}`))
	require.NoError(t, err)
	require.Len(t, v.warnings, 1)
	assert.Contains(t, v.warnings[0], "needs item 9")
}

func TestPublishWorld(t *testing.T) {
	mr := miniredis.RunT(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := publishWorld(context.Background(), "redis://"+mr.Addr(), "meadow.json", []byte(`{"events": []}`), log)
	require.NoError(t, err)

	got, err := mr.Get("world:meadow.json")
	require.NoError(t, err)
	assert.Equal(t, `{"events": []}`, got)
}

func TestPublishWorld_BadURL(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := publishWorld(context.Background(), "not a url", "meadow.json", nil, log)
	assert.Error(t, err)
}
