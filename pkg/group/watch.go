package group

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors emit when saving.
const DefaultDebounce = 150 * time.Millisecond

// ReloadFunc receives the freshly loaded groups after the file changed.
type ReloadFunc func(groups []*Group)

// Watcher reloads a group file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	onReload ReloadFunc
}

// NewWatcher watches the directory holding path, since editors often
// replace files instead of writing them in place.
func NewWatcher(path string, debounce time.Duration, onReload ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		onReload: onReload,
	}, nil
}

// Run processes file events until ctx is done. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("Group file watcher error: %v", err)

		case <-fire:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	groups, err := LoadFile(w.path)
	if err != nil {
		// keep the previous groups; a half-written file will trigger another event
		log.Warnf("Ignoring group file change: %v", err)
		return
	}
	log.Debugf("Group file %s reloaded", w.path)
	w.onReload(groups)
}
