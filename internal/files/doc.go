// Package files provides file system operations and discovery utilities
// for the chart batch.
//
// Discovery lists the dataset files (CSV and Excel) under the data
// directory. Manager resolves paths against the configured directories and
// writes outputs atomically.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.DataDir)
//	datasets, err := discovery.FindDatasets()
//
//	manager := files.NewManager(paths)
//	err = manager.AtomicWrite("images/employment.png", func(w io.Writer) error {
//		_, err := canvas.WriteTo(w)
//		return err
//	})
package files
