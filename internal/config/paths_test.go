package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	paths := NewPaths(PathsConfig{
		Root:       root,
		DataDir:    "data-python",
		ImagesDir:  abs,
		ReportsDir: "reports",
		LogsDir:    "logs",
	})

	assert.Equal(t, filepath.Join(root, "data-python"), paths.DataDir)
	assert.Equal(t, abs, paths.ImagesDir, "absolute directories are kept")
	assert.Equal(t, filepath.Join(root, "reports"), paths.ReportsDir)

	assert.Equal(t, filepath.Join(root, "data-python", "employment", "1410020201-eng.csv"),
		paths.DataFile("employment/1410020201-eng.csv"))
	assert.Equal(t, filepath.Join(abs, "tariff_timeline.png"), paths.ImagePath("tariff_timeline.png"))
	assert.Equal(t, filepath.Join(root, "reports", "summary.txt"), paths.ReportPath("summary.txt"))
	assert.Equal(t, filepath.Join(root, "logs", "run.log"), paths.LogPath("run.log"))
}

func TestPaths_EnsureDirectories(t *testing.T) {
	root := t.TempDir()
	paths := NewPaths(PathsConfig{
		Root:       root,
		DataDir:    "data",
		ImagesDir:  "out/images",
		ReportsDir: "out/reports",
		LogsDir:    "logs",
	})

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.ImagesDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.False(t, FileExists(paths.DataDir), "data directory is never created")

	paths.LogPathResolution(nil)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "absent.csv")))
}
