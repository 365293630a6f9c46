package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

// DefaultDebounce is how long a file must be quiet before it is reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the record whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file by rename
// are picked up. Reload failures are logged and the previous snapshot kept.
func (s *Source) Watch(ctx context.Context, debounce time.Duration) error {
	if s.path == "" {
		return fmt.Errorf("watch: record has no file path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: creating watcher: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(s.path)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch: adding %s: %w", filepath.Dir(target), err)
	}

	log := logger.FromContext(ctx).With("path", target)
	log.Info("watching record file")

	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < debounce {
				continue
			}
			pending = time.Time{}
			if err := s.Reload(ctx); err != nil {
				log.Warn("record reload failed, keeping previous snapshot", "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("record watcher error", "error", err)
		}
	}
}
