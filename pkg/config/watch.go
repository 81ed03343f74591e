package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the global configuration whenever the config file changes
// and invokes onReload with the fresh config. It blocks until stop is
// closed. The watch covers the config directory rather than the file so
// that atomic rename-style rewrites are picked up.
func Watch(stop <-chan struct{}, onReload func(*AccessdConfig)) error {
	cfg := Get()
	dir := filepath.Dir(cfg.ConfigFilePath())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != ConfigFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "config: reload failed: %v\n", err)
				continue
			}
			if onReload != nil {
				onReload(Get())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "config: watcher error: %v\n", err)
		case <-stop:
			return nil
		}
	}
}
