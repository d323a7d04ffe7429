package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Manager keeps the last valid document of a configuration file, reloading it when the file
// changes.
type Manager struct {
	path string
	doc  atomic.Pointer[Document]

	log *slog.Logger
}

type options struct {
	log *slog.Logger
}

// Options represents an optional function to override Manager default values.
type Options func(*options)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Options {
	return func(o *options) {
		o.log = l
	}
}

// NewManager returns a manager for the configuration file at path. Nothing is read before Load
// or Watch.
func NewManager(path string, args ...Options) *Manager {
	opts := options{log: slog.Default()}
	for _, opt := range args {
		opt(&opts)
	}

	return &Manager{
		path: filepath.Clean(path),
		log:  opts.log,
	}
}

// Load reads the configuration file. The current document is only replaced when the file is valid.
func (cm *Manager) Load() error {
	doc, err := Load(cm.path)
	if err != nil {
		return err
	}
	cm.doc.Store(&doc)
	cm.log.Debug("Loaded configuration", "path", cm.path)
	return nil
}

// Document returns the last valid document, or an empty one if none was loaded.
func (cm *Manager) Document() Document {
	if doc := cm.doc.Load(); doc != nil {
		return *doc
	}
	return Document{}
}

// Watch loads the configuration file and reloads it on every change until ctx is done.
//
// A value is sent on changes after every successful reload; invalid files are logged and skipped.
// errs only carries the failure which stopped the watcher. Both channels are closed once
// watching stops.
func (cm *Manager) Watch(ctx context.Context) (changes <-chan struct{}, errs <-chan error, err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("could not create configuration watcher: %v", err)
	}

	// The directory is watched, as editors and atomic writes replace the file.
	dir := filepath.Dir(cm.path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("could not watch %s: %v", dir, err)
	}
	cm.log.Info("Watching configuration", "path", cm.path)

	if err := cm.Load(); err != nil {
		cm.log.Warn("Failed to load configuration", "path", cm.path, "error", err)
	}

	changesCh := make(chan struct{}, 1)
	errorsCh := make(chan error, 1)
	go func() {
		defer close(changesCh)
		defer close(errorsCh)
		defer w.Close()

		if err := cm.watch(ctx, w, changesCh); err != nil {
			errorsCh <- err
		}
	}()

	return changesCh, errorsCh, nil
}

// watch handles the events of w until ctx is done or w stops.
func (cm *Manager) watch(ctx context.Context, w *fsnotify.Watcher, changes chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			cm.log.Debug("Stopped watching configuration", "path", cm.path)
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("configuration watcher stopped")
			}
			if !cm.concerns(ev) {
				continue
			}

			if err := cm.Load(); err != nil {
				cm.log.Warn("Ignoring invalid configuration", "path", cm.path, "error", err)
				continue
			}
			// A pending notification already covers this reload.
			select {
			case changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("configuration watcher stopped")
			}
			cm.log.Warn("Configuration watcher error", "error", err)
		}
	}
}

// concerns returns true if ev may have changed the content of the configuration file.
func (cm *Manager) concerns(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != cm.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
