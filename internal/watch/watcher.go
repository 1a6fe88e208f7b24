package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/logfields"
)

// Watcher requests a rebuild whenever something under root changes. New
// folders are watched as they appear.
type Watcher struct {
	root   string
	fs     *fsnotify.Watcher
	deb    *Debouncer
	logger *slog.Logger
}

// NewWatcher watches root and every folder below it.
func NewWatcher(root string, deb *Debouncer, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	w := &Watcher{root: root, fs: fw, deb: deb, logger: logger}
	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to scan watched tree").
				WithContext("path", p).Build()
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && ignored(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(p); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to watch directory").
				WithContext("path", p).Build()
		}
		return nil
	})
}

// Run forwards file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("Watching export", logfields.Path(w.root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod || ignored(filepath.Base(ev.Name)) {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		// Folders created after startup need their own watch.
		if err := w.addTree(ev.Name); err != nil {
			w.logger.Debug("Not watching new entry", logfields.Path(ev.Name), logfields.Error(err))
		}
	}
	w.logger.Debug("Export changed", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.deb.Request("fs:" + ev.Op.String())
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fs.Close() }

// ignored reports editor swap files and hidden entries such as .obsidian or .git.
func ignored(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp")
}
