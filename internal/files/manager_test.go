package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/config"
)

func newTestManager(t *testing.T) (*Manager, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(config.PathsConfig{
		Root:       t.TempDir(),
		DataDir:    "data-python",
		ImagesDir:  "images",
		ReportsDir: "reports",
		LogsDir:    "logs",
	})
	return NewManager(paths), paths
}

func TestManager_ResolvePath(t *testing.T) {
	manager, paths := newTestManager(t)

	tests := []struct {
		path string
		want string
	}{
		{"images/employment.png", filepath.Join(paths.ImagesDir, "employment.png")},
		{"reports/employment.csv", filepath.Join(paths.ReportsDir, "employment.csv")},
		{"logs/run.log", filepath.Join(paths.LogsDir, "run.log")},
		{"employment/1410020201-eng.csv", filepath.Join(paths.DataDir, "employment", "1410020201-eng.csv")},
		{"/abs/file.csv", "/abs/file.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, manager.resolvePath(tt.path))
		})
	}

	rel, err := manager.GetRelativePath(paths.ImagePath("a.png"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("images", "a.png"), rel)
}

func TestManager_AtomicWrite(t *testing.T) {
	manager, paths := newTestManager(t)

	require.NoError(t, manager.AtomicWrite("images/chart.png", func(w io.Writer) error {
		_, err := w.Write([]byte("png bytes"))
		return err
	}))

	content, err := os.ReadFile(paths.ImagePath("chart.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(content))
	assert.True(t, manager.FileExists("images/chart.png"))

	info, err := os.Stat(paths.ImagePath("chart.png"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(paths.ImagesDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestManager_AtomicWriteFailureKeepsOriginal(t *testing.T) {
	manager, paths := newTestManager(t)
	require.NoError(t, manager.WriteFile("reports/summary.txt", []byte("original")))

	boom := errors.New("render failed")
	err := manager.AtomicWrite("reports/summary.txt", func(w io.Writer) error {
		w.Write([]byte("half"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	content, err := manager.ReadFile(paths.ReportPath("summary.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))

	entries, err := os.ReadDir(paths.ReportsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestManager_EnsureDirectory(t *testing.T) {
	manager, paths := newTestManager(t)

	require.NoError(t, manager.EnsureDirectory("images/nested"))
	info, err := os.Stat(filepath.Join(paths.ImagesDir, "nested"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.False(t, manager.FileExists("missing.csv"))
}
