package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ChangeEvent reports that the watched config file settled after a write.
type ChangeEvent struct {
	Path string
	Time time.Time
}

// Watcher monitors one config file. It watches the parent directory so that
// editors which save by rename are still seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      zerolog.Logger
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: 100 * time.Millisecond,
		log:      log.With().Str("component", "config-watcher").Logger(),
	}, nil
}

// Watch starts watching and returns a channel of change events. Rapid writes
// are coalesced into one event per debounce window. The channel is closed when
// ctx is cancelled or the underlying watcher is closed.
func (w *Watcher) Watch(ctx context.Context) <-chan ChangeEvent {
	out := make(chan ChangeEvent, 4)

	go func() {
		defer close(out)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(ev) {
					continue
				}
				pending = true
				timer.Reset(w.debounce)

			case <-timer.C:
				if !pending {
					continue
				}
				pending = false
				select {
				case out <- ChangeEvent{Path: w.path, Time: time.Now()}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn().Err(err).Msg("watch error")
			}
		}
	}()

	return out
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and cleans up resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
