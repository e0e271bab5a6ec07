package commands

import (
	"context"
	"fmt"

	"folio/internal/application"
	"folio/internal/ports"
)

// ListRevisionsCommand lists stored document versions, newest first
type ListRevisionsCommand struct {
	log   ports.RevisionLog
	Limit int
}

// NewListRevisionsCommand creates a new ListRevisionsCommand
func NewListRevisionsCommand(log ports.RevisionLog, limit int) *ListRevisionsCommand {
	return &ListRevisionsCommand{log: log, Limit: limit}
}

// Execute runs the list revisions command
func (c *ListRevisionsCommand) Execute(ctx context.Context) ([]ports.Revision, error) {
	revs, err := c.log.Revisions(ctx, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return revs, nil
}

// RestoreRevisionResult contains the result of restoring a revision
type RestoreRevisionResult struct {
	ID      int64
	Message string
}

// RestoreRevisionCommand makes a stored revision the current document
type RestoreRevisionCommand struct {
	repo      ports.PortfolioRepository
	log       ports.RevisionLog
	ID        int64
	Confirmed bool
}

// NewRestoreRevisionCommand creates a new RestoreRevisionCommand
func NewRestoreRevisionCommand(repo ports.PortfolioRepository, log ports.RevisionLog, id int64, confirmed bool) *RestoreRevisionCommand {
	return &RestoreRevisionCommand{repo: repo, log: log, ID: id, Confirmed: confirmed}
}

// Execute runs the restore revision command
func (c *RestoreRevisionCommand) Execute(ctx context.Context) (*RestoreRevisionResult, error) {
	if !c.Confirmed {
		return nil, &application.ConfirmationError{Prompt: "Restoring replaces the current portfolio. Continue?"}
	}

	doc, err := c.log.Restore(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if err := c.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return &RestoreRevisionResult{
		ID:      c.ID,
		Message: fmt.Sprintf("Restored revision %d", c.ID),
	}, nil
}
