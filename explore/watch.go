package explore

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// watcher follows one tree file on disk. It watches the parent
// directory rather than the file itself, because editors and the
// grow command replace the file instead of writing it in place.
type watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	events chan struct{}
}

func newWatcher(path string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching %s: %v", path, err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %v", dir, err)
	}
	w := &watcher{fsw: fsw, path: filepath.Clean(path), events: make(chan struct{}, 1)}
	go w.run()
	return w, nil
}

func (w *watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				close(w.events)
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Collapse event bursts: one pending reload is enough.
			select {
			case w.events <- struct{}{}:
			default:
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				close(w.events)
				return
			}
		}
	}
}

// wait returns a command that delivers a treeChangedMsg for the
// next change of the watched file.
func (w *watcher) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.events; !ok {
			return nil
		}
		return treeChangedMsg{}
	}
}

func (w *watcher) close() error {
	return w.fsw.Close()
}
