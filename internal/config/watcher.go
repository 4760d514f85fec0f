package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the changed file whenever one of files is written or
// recreated. The parent directories are watched, so editors replacing a file by
// rename are noticed as well. Call the returned stop function to clean up.
func Watch(files []string, logger *slog.Logger, onChange func(file string)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("data watcher: %w", err)
	}

	watched := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("data watcher %s: %w", file, err)
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("data watcher add %s: %w", dir, err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				name, err := filepath.Abs(ev.Name)
				if err != nil {
					continue
				}
				if _, ok := watched[name]; ok {
					onChange(name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("data watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}
