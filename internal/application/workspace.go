package application

import (
	"context"
	"sync"

	"folio/internal/domain"
	"folio/internal/ports"
)

// Change describes a committed mutation of the workspace document
type Change struct {
	Revision  int
	Portfolio *domain.Portfolio // a copy owned by the listener
	Cleared   bool
}

// Workspace is the explicit state container for the document being edited.
// Reads and writes exchange deep copies; every Save or Clear is announced to
// the subscribers synchronously, after the lock is released.
type Workspace struct {
	mu        sync.RWMutex
	doc       *domain.Portfolio
	revision  int
	nextID    int
	listeners map[int]func(Change)
}

// Ensure Workspace implements PortfolioRepository
var _ ports.PortfolioRepository = (*Workspace)(nil)

// NewWorkspace creates a workspace holding a copy of initial (or an empty
// document when initial is nil)
func NewWorkspace(initial *domain.Portfolio) *Workspace {
	if initial == nil {
		initial = domain.NewPortfolio()
	}
	return &Workspace{
		doc:       initial.Clone(),
		listeners: make(map[int]func(Change)),
	}
}

// Load returns a copy of the current document
func (w *Workspace) Load(ctx context.Context) (*domain.Portfolio, error) {
	return w.Snapshot(), nil
}

// Snapshot returns a copy of the current document
func (w *Workspace) Snapshot() *domain.Portfolio {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.doc.Clone()
}

// Save replaces the document and notifies subscribers
func (w *Workspace) Save(ctx context.Context, p *domain.Portfolio) error {
	w.commit(p.Clone(), false)
	return nil
}

// Clear resets the document to an empty one and notifies subscribers
func (w *Workspace) Clear(ctx context.Context) error {
	w.commit(domain.NewPortfolio(), true)
	return nil
}

// Revision counts committed changes since the workspace was created
func (w *Workspace) Revision() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.revision
}

// Subscribe registers fn for every committed change and returns a function
// that removes it
func (w *Workspace) Subscribe(fn func(Change)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, id)
	}
}

func (w *Workspace) commit(doc *domain.Portfolio, cleared bool) {
	w.mu.Lock()
	w.doc = doc
	w.revision++
	rev := w.revision
	listeners := make([]func(Change), 0, len(w.listeners))
	for _, fn := range w.listeners {
		listeners = append(listeners, fn)
	}
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(Change{Revision: rev, Portfolio: doc.Clone(), Cleared: cleared})
	}
}
