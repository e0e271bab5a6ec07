package commands

import (
	"context"
	"fmt"

	"folio/internal/domain"
	"folio/internal/ports"
)

// mutate loads the document, applies fn and saves the result. When fn fails
// nothing is saved.
func mutate(ctx context.Context, repo ports.PortfolioRepository, fn func(*domain.Portfolio) error) (*domain.Portfolio, error) {
	doc, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	if err := fn(doc); err != nil {
		return nil, err
	}

	if err := repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return doc, nil
}
