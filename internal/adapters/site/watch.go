package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"folio/internal/domain"
)

// DefaultDebounce is the quiet period between a change and the rebuild
const DefaultDebounce = 500 * time.Millisecond

// LoadFunc reads the current document
type LoadFunc func(ctx context.Context) (*domain.Portfolio, error)

// Watcher rebuilds the site whenever the watched document file changes
type Watcher struct {
	builder  *Builder
	load     LoadFunc
	path     string
	debounce time.Duration

	// built receives the result of every rebuild; nil when unset
	built func([]string, error)
}

// NewWatcher watches path (a document file or database) and rebuilds
// through b with documents read by load
func NewWatcher(b *Builder, path string, load LoadFunc) *Watcher {
	return &Watcher{builder: b, load: load, path: path, debounce: DefaultDebounce}
}

// OnBuild registers fn to be called after every rebuild
func (w *Watcher) OnBuild(fn func(pages []string, err error)) {
	w.built = fn
}

// Run builds once, then rebuilds on change until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors and sqlite replace files, so watch the directory and filter
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.rebuild(ctx)

	rebuild := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case <-rebuild:
			w.rebuild(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.builder.logger.Error("watch error", "error", err)
		}
	}
}

// relevant matches writes to the document and its sqlite journal files
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	target := filepath.Clean(w.path)
	return name == target || name == target+"-wal"
}

func (w *Watcher) rebuild(ctx context.Context) {
	p, err := w.load(ctx)
	var pages []string
	if err == nil {
		pages, err = w.builder.Build(p)
	}
	if err != nil {
		w.builder.logger.Error("rebuild failed", "error", err)
	} else {
		w.builder.logger.Info("rebuilt site", "pages", len(pages))
	}
	if w.built != nil {
		w.built(pages, err)
	}
}
