package compiler

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// generatedRe matches the conventional header of generated Go files.
var generatedRe = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// isGenerated reports whether the file carries a generated-code header
// within its first lines. Generated files are skipped while watching,
// otherwise every run would re-trigger itself.
func isGenerated(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for i := 0; s.Scan() && i < 5; i++ {
		if generatedRe.MatchString(s.Text()) {
			return true
		}
	}
	return false
}

// Watch watches the directory tree rooted at dir and calls fn after Go
// source files change. Bursts of events within the debounce window
// coalesce into a single call. Watch blocks until the context is
// canceled or the watcher fails.
func Watch(ctx context.Context, dir string, debounce time.Duration, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			if pending {
				pending = false
				fn()
			}
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New directories join the watch.
			if ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.Add(ev.Name)
					continue
				}
			}
			if !strings.HasSuffix(ev.Name, ".go") || strings.HasSuffix(ev.Name, "_test.go") {
				continue
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
				if isGenerated(ev.Name) {
					continue
				}
			}
			pending = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
