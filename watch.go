package notepub

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/gommon/log"
)

// Watcher reports changes anywhere below a notes directory. Directories the
// walker skips are not watched.
type Watcher struct {
	root   string
	walker *Walker
	logger *log.Logger
	fsw    *fsnotify.Watcher
}

// NewWatcher starts watching root and every directory below it.
func NewWatcher(root string, walker *Walker, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if logger == nil {
		logger = discardLogger()
	}
	w := &Watcher{root: root, walker: walker, logger: logger, fsw: fsw}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and its non-skipped subdirectories.
func (w *Watcher) addTree(dir string) error {
	dirs, err := w.walker.Dirs(os.DirFS(dir))
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	for _, d := range dirs {
		p := filepath.Join(dir, filepath.FromSlash(d))
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}
	return nil
}

// Run calls onChange for every relevant event until ctx is done or the
// underlying watcher fails.
func (w *Watcher) Run(ctx context.Context, onChange func(fsnotify.Event)) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			rel, err := filepath.Rel(w.root, ev.Name)
			if err != nil {
				rel = ev.Name
			}
			if w.walker.Skipped(filepath.ToSlash(rel)) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warnf("%v", err)
					}
				}
			}
			w.logger.Infof("File %s changed [%s]", rel, ev.Op)
			onChange(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			w.logger.Errorf("watch error: %v", err)
		}
	}
}
