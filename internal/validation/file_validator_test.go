package validation

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/shared/testutil"
)

func errorType(t *testing.T, err error) apperrors.ErrorType {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	return appErr.Type
}

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	v := NewFileValidator(nil)
	assert.NoError(t, v.ValidateInputDirectory(dir))
	assert.Equal(t, apperrors.ErrTypeNotFound, errorType(t, v.ValidateInputDirectory(filepath.Join(dir, "missing"))))
	assert.Equal(t, apperrors.ErrTypeValidation, errorType(t, v.ValidateInputDirectory(file)))
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	dir := filepath.Join(t.TempDir(), "images", "nested")
	require.NoError(t, v.ValidateOutputDirectory(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is removed")
	testutil.AssertNoErrors(t, logs)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	err = v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	assert.Equal(t, apperrors.ErrTypeStorage, errorType(t, err))
	testutil.AssertLogContains(t, logs, slog.LevelError, "Failed to create output directory")
}

func TestFileValidator_ValidateDataFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.csv"), 0755))

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{"csv", write("employment.csv", "a,b\n"), ""},
		{"xlsx", write("ippi.xlsx", "PK"), ""},
		{"upper case extension", write("RAW.CSV", "a"), ""},
		{"missing", filepath.Join(dir, "absent.csv"), apperrors.ErrTypeNotFound},
		{"empty", write("empty.csv", ""), apperrors.ErrTypeValidation},
		{"directory", filepath.Join(dir, "folder.csv"), apperrors.ErrTypeValidation},
		{"lock file", write("~$ippi.xlsx", "lock"), apperrors.ErrTypeValidation},
		{"wrong extension", write("notes.txt", "text"), apperrors.ErrTypeValidation},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDataFile(tt.path)
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantType, errorType(t, err))
		})
	}

	assert.NoError(t, v.ValidateDataFiles(tests[0].path, tests[1].path))
	assert.Error(t, v.ValidateDataFiles(tests[0].path, tests[3].path))
}

func TestFileValidator_CountFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv", "c.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.csv"), 0755))

	v := NewFileValidator(nil)
	count, err := v.CountFiles(dir, "*.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = v.CountFiles(dir, "[")
	assert.Error(t, err)
}
