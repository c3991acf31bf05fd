package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benoitkugler/roomplanner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const canvas = `{
	"width": 400, "height": 300,
	"objects": [
		{"type": "rect", "id": "Room-1", "left": 20, "top": 20, "width": 100, "height": 200, "fill": "#dde", "stroke": "#000"},
		{"type": "text", "id": "Room-1-widthLabel", "left": 20, "top": 5, "text": "2m"},
		{"type": "text", "id": "Room-1-heightLabel", "left": 125, "top": 100, "text": "4m"},
		{"type": "image", "id": "Sofa", "left": 200, "top": 50, "width": 60, "height": 30},
		{"type": "text", "id": "Sofa-widthLabel", "left": 200, "top": 35, "text": "1.2m"}
	]
}`

func testConfig(t *testing.T) *config.Config {
	return &config.Config{OutputDir: t.TempDir(), AssetTimeout: 10 * time.Second}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(canvas), 0o644))

	err := run(context.Background(), cfg, zap.NewNop(), path, "both")
	require.NoError(t, err)

	for _, name := range []string{"RoomPlanner.png", "RoomPlanner.pdf"} {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestRunMode(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(canvas), 0o644))

	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), path, "pdf"))
	_, err := os.Stat(filepath.Join(cfg.OutputDir, "RoomPlanner.png"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, run(context.Background(), cfg, zap.NewNop(), path, "svg"))
}

func TestRunWithoutCanvas(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), "", "both"))
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunMissingCanvas(t *testing.T) {
	err := run(context.Background(), testConfig(t), zap.NewNop(), "does-not-exist.json", "both")
	assert.Error(t, err)
}
