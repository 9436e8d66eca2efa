package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	fsnotify "gopkg.in/fsnotify.v1"
)

// settle lets editors finish a save before the file is re-read
const settle = 200 * time.Millisecond

// Watch calls onChange whenever the file at path is written, created or
// replaced, until ctx is done. Bursts of events are coalesced.
func Watch(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher init failed: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	// Watch the directory so atomic replace-on-save is seen too
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	timer := time.NewTimer(settle)
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
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Config watcher error: %v", err)
		case <-timer.C:
			log.Infof("Config file %s changed", path)
			onChange()
		}
	}
}
