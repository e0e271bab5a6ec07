package commands

import (
	"context"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// SavePersonalCommand replaces the profile information
type SavePersonalCommand struct {
	repo     ports.PortfolioRepository
	Personal domain.Personal
}

// NewSavePersonalCommand creates a new SavePersonalCommand
func NewSavePersonalCommand(repo ports.PortfolioRepository, p domain.Personal) *SavePersonalCommand {
	return &SavePersonalCommand{
		repo:     repo,
		Personal: p,
	}
}

// Validate checks if the save operation is valid
func (c *SavePersonalCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Personal.Name); err != nil {
		return err
	}
	return nil
}

// Execute runs the save personal command
func (c *SavePersonalCommand) Execute(ctx context.Context) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if _, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		doc.Personal = c.Personal
		return nil
	}); err != nil {
		return "", err
	}
	return "Personal information saved!", nil
}
