package ports

import (
	"context"

	"folio/internal/domain"
)

// PortfolioRepository persists the whole portfolio document under a single
// key. Load returns an empty document when nothing has been stored yet.
type PortfolioRepository interface {
	Load(ctx context.Context) (*domain.Portfolio, error)
	Save(ctx context.Context, p *domain.Portfolio) error
	// Clear removes the stored document
	Clear(ctx context.Context) error
}

// Revision is one stored version of the document
type Revision struct {
	ID      int64
	SavedAt int64 // Unix seconds
	Size    int   // encoded bytes
}

// RevisionLog is implemented by repositories that keep previous versions
type RevisionLog interface {
	Revisions(ctx context.Context, limit int) ([]Revision, error)
	Restore(ctx context.Context, id int64) (*domain.Portfolio, error)
}
