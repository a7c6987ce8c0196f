package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/modelc/compiler"
)

// debounce coalesces the bursts of events editors produce on save.
const debounce = 100 * time.Millisecond

// watch compiles the declaration files once and again after each change,
// passing every successful result to emit. Compilation errors are logged and
// watching continues. It returns when ctx is done.
func (c *config) watch(ctx context.Context, emit func(*compiler.Result) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("modelc: watch: %w", err)
	}
	defer w.Close()

	// Directories are watched rather than files, so that editors replacing
	// a file by rename keep being observed.
	files := make(map[string]bool, len(c.Files))
	dirs := make(map[string]bool)
	for _, f := range c.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("modelc: watch %s: %w", dir, err)
		}
	}

	run := func() error {
		res, err := c.compile(ctx)
		if err != nil {
			c.logger.Error("compile failed", "err", err)
			return nil
		}
		return emit(res)
	}
	if err := run(); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !files[abs] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				c.logger.Debug("declaration changed", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watch error", "err", err)
		case <-timer.C:
			if err := run(); err != nil {
				return err
			}
		}
	}
}
