package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher reloads selected fields of a Config when its backing file
// changes on disk. It never touches cfg.Port: the listener is already
// bound by the time a watcher exists, so rebinding isn't possible.
type Watcher struct {
	fsw *fsnotify.Watcher
	cfg *Config
}

// WatchFile starts watching cfg's ConfigPath for writes, calling onReload
// with the newly loaded config whenever the file changes and still passes
// validation. It returns nil, nil if ConfigPath is empty (nothing to watch).
func WatchFile(cfg *Config, onReload func(*Config)) (*Watcher, error) {
	if cfg.ConfigPath == "" {
		return nil, nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(cfg.ConfigPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, cfg: cfg}

	go func() {
		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(cfg.ConfigPath) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				reloaded, err := Load(cfg.ConfigPath)
				if err != nil {
					log.WithError(err).Warn("config reload failed, keeping previous configuration")
					continue
				}
				reloaded.Port = cfg.Port
				log.WithFields(log.Fields{
					"selection_policy":  reloaded.SelectionPolicy,
					"failure_threshold": reloaded.FailureThreshold,
					"log_level":         reloaded.LogLevel,
				}).Info("configuration reloaded from disk")
				onReload(reloaded)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("config watcher error")
			}
		}
	}()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	if w == nil || w.fsw == nil {
		return nil
	}
	return w.fsw.Close()
}
