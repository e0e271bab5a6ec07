// Package autosave persists workspace changes after a quiet period
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"folio/internal/application"
	"folio/internal/ports"
)

// DefaultDelay is the quiet period before a change is written
const DefaultDelay = time.Second

// Saver writes the latest workspace change to a repository once no further
// change arrived for Delay. Writes are best effort: failures are logged and
// the next change tries again.
type Saver struct {
	repo   ports.PortfolioRepository
	delay  time.Duration
	logger *slog.Logger

	mu          sync.Mutex
	timer       *time.Timer
	pending     *application.Change
	unsubscribe func()
	saved       int

	// writeMu serializes repository writes; written is the last revision
	// that reached the repository
	writeMu sync.Mutex
	written int
}

// New creates a saver writing to repo
func New(repo ports.PortfolioRepository, delay time.Duration, logger *slog.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Saver{repo: repo, delay: delay, logger: logger}
}

// Attach subscribes the saver to ws
func (s *Saver) Attach(ws *application.Workspace) {
	unsubscribe := ws.Subscribe(s.Notify)
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
}

// Notify records a change and restarts the quiet period. A change older
// than the pending one is ignored.
func (s *Saver) Notify(c application.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil && c.Revision < s.pending.Revision {
		return
	}
	s.pending = &c
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.Flush(context.Background())
	})
}

// Flush writes the pending change now, if any. Concurrent flushes write one
// at a time and never replace a newer revision with an older one.
func (s *Saver) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	c := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if c == nil {
		return nil
	}
	if c.Revision < s.written {
		s.logger.Debug("skipping stale autosave", "revision", c.Revision, "written", s.written)
		return nil
	}

	var err error
	if c.Cleared {
		err = s.repo.Clear(ctx)
	} else {
		err = s.repo.Save(ctx, c.Portfolio)
	}
	if err != nil {
		s.logger.Error("autosave failed", "revision", c.Revision, "error", err)
		return err
	}
	s.written = c.Revision

	s.mu.Lock()
	s.saved++
	s.mu.Unlock()
	s.logger.Debug("autosaved", "revision", c.Revision, "cleared", c.Cleared)
	return nil
}

// Pending reports whether a change is waiting to be written
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Saved counts successful writes
func (s *Saver) Saved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

// Close detaches from the workspace and writes anything still pending
func (s *Saver) Close(ctx context.Context) error {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	return s.Flush(ctx)
}
