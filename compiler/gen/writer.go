package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// RenderedFile is one fully rendered output file, held in memory until
// the whole run succeeds.
type RenderedFile struct {
	// Name is the output path relative to the target directory.
	Name string
	// Content is the rendered Go source.
	Content []byte
}

// Writer persists rendered files to the target directory with parallel
// writes and goimports post-processing.
type Writer struct {
	outDir  string
	workers int

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks what a write pass produced.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a writer for the given target directory.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the number of parallel write workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the metrics of the last write pass.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteAll writes the rendered files beneath the target directory.
func (w *Writer) WriteAll(ctx context.Context, files []*RenderedFile) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.write(f)
			}
		})
	}
	return eg.Wait()
}

// write formats and writes a single file.
func (w *Writer) write(f *RenderedFile) error {
	fullPath := filepath.Join(w.outDir, f.Name)

	// Run goimports over the rendered source. Jennifer manages imports
	// itself, so this normally only normalizes grouping; a failure here
	// means the rendered source is broken, and the raw output is kept
	// next to the target for inspection.
	formatted, err := imports.Process(fullPath, f.Content, nil)
	if err != nil {
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, f.Content, 0o644)
		return fmt.Errorf("format %s: %w (unformatted written to %s)", f.Name, err, debugPath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Name, err)
	}
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(formatted))
	w.mu.Unlock()
	return nil
}
