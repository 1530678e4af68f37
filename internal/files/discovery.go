package files

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Rel     string // slash-separated, relative to the discovery base
	Name    string
	Size    int64
	ModTime time.Time
}

// datasetExtensions are the table formats the loaders understand
var datasetExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xlsm": true,
}

// Discovery provides file discovery operations under a base directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDatasets walks the base directory and returns every CSV or Excel
// file, sorted by relative path. Excel lock files ("~$...") are skipped.
func (d *Discovery) FindDatasets() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(d.basePath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") || !datasetExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(d.basePath, path)
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:    path,
			Rel:     filepath.ToSlash(rel),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", d.basePath, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Rel < files[j].Rel
	})

	return files, nil
}
