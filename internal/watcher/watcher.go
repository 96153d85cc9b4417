package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"noteagent/internal/config"
	"noteagent/internal/domain/faults"
	"noteagent/pkg/logging"
)

// Watcher observes the note data directory and signals the reindex channel
// when something under it changes. Events are debounced so a burst of writes
// triggers one rebuild, and a signal is dropped when a rebuild request is
// already pending.
type Watcher struct {
	dir      string
	reindex  chan<- struct{}
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *logging.Logger
}

func New(dir string, reindex chan<- struct{}) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, faults.Configuration(err)
	}

	w := &Watcher{
		dir:      dir,
		reindex:  reindex,
		debounce: config.WatchDebounce,
		fsw:      fsw,
		logger:   logging.NewLogger("Watcher"),
	}
	if err := w.addRecursive(dir); err != nil {
		fsw.Close()
		return nil, faults.Configuration(err)
	}
	return w, nil
}

// Run blocks until ctx is cancelled, forwarding debounced change signals.
func (w *Watcher) Run(ctx context.Context) {
	log := w.logger
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			// new directories must be watched too
			if event.Op.Has(fsnotify.Create) {
				_ = w.addRecursive(event.Name)
			}
			log.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.reindex <- struct{}{}:
				log.Info("Reindex requested after file changes")
			default:
				log.Debug("Reindex already pending, change signal dropped")
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("Watch error", "error", err)
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// relevant filters out noise such as editor temp files and pure chmods.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return true
}
