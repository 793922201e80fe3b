package builder

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/debuglog"
)

// datasetReloadedMsg is sent when the dataset file changed on disk.
type datasetReloadedMsg struct {
	pool *data.Pool
	err  error
}

// datasetWatcher reloads the pool when the dataset file is rewritten, so
// edits to a custom dataset show up without restarting the shell.
type datasetWatcher struct {
	w      *fsnotify.Watcher
	path   string
	jailed []string
}

func newDatasetWatcher(path string, jailed []string) (*datasetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors typically replace the file, which drops
	// a watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &datasetWatcher{w: w, path: filepath.Clean(path), jailed: jailed}, nil
}

// wait blocks until the dataset changes, then reloads it.
func (d *datasetWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-d.w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != d.path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debuglog.L().Debug().Str("event", ev.Op.String()).Msg("dataset changed")

				// Editors write in bursts; let the file settle and drain
				// the follow-up events.
				time.Sleep(100 * time.Millisecond)
				d.drain()

				pool, err := data.Load(d.path, d.jailed)
				return datasetReloadedMsg{pool: pool, err: err}

			case err, ok := <-d.w.Errors:
				if !ok {
					return nil
				}
				return datasetReloadedMsg{err: err}
			}
		}
	}
}

func (d *datasetWatcher) drain() {
	for {
		select {
		case <-d.w.Events:
		default:
			return
		}
	}
}

func (d *datasetWatcher) Close() error {
	return d.w.Close()
}
