package commands

import (
	"context"
	"fmt"
	"strings"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// SaveCategoryResult contains the result of saving a category
type SaveCategoryResult struct {
	Category domain.Category
	Message  string
}

// SaveCategoryCommand creates a category or updates an existing one
type SaveCategoryCommand struct {
	repo     ports.PortfolioRepository
	Category domain.Category
	Create   bool
}

// NewSaveCategoryCommand creates a new SaveCategoryCommand
func NewSaveCategoryCommand(repo ports.PortfolioRepository, c domain.Category, create bool) *SaveCategoryCommand {
	return &SaveCategoryCommand{
		repo:     repo,
		Category: c,
		Create:   create,
	}
}

// Validate checks if the save operation is valid
func (c *SaveCategoryCommand) Validate() error {
	if err := application.ValidateSlug("categoryKey", strings.TrimSpace(c.Category.Key)); err != nil {
		return err
	}
	return application.ValidateRequired("title", c.Category.Title)
}

// Execute runs the save category command
func (c *SaveCategoryCommand) Execute(ctx context.Context) (*SaveCategoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cat := c.Category
	cat.Key = strings.TrimSpace(cat.Key)
	cat.Title = strings.TrimSpace(cat.Title)
	if _, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		return doc.SaveCategory(cat, c.Create)
	}); err != nil {
		return nil, err
	}

	return &SaveCategoryResult{
		Category: cat,
		Message:  fmt.Sprintf("Saved category: %s %s", cat.Key, cat.Title),
	}, nil
}

// DeleteCategoryResult contains the result of deleting a category
type DeleteCategoryResult struct {
	Category domain.Category
	Message  string
}

// DeleteCategoryCommand removes a category and its projects. A category that
// still holds projects is only deleted with confirmation.
type DeleteCategoryCommand struct {
	repo      ports.PortfolioRepository
	Key       string
	Confirmed bool
}

// NewDeleteCategoryCommand creates a new DeleteCategoryCommand
func NewDeleteCategoryCommand(repo ports.PortfolioRepository, key string, confirmed bool) *DeleteCategoryCommand {
	return &DeleteCategoryCommand{
		repo:      repo,
		Key:       key,
		Confirmed: confirmed,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCategoryCommand) Validate() error {
	return application.ValidateRequired("categoryKey", c.Key)
}

// Execute runs the delete category command
func (c *DeleteCategoryCommand) Execute(ctx context.Context) (*DeleteCategoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var removed domain.Category
	_, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		cat := doc.Category(c.Key)
		if cat == nil {
			return &application.LookupError{Kind: "category", Key: c.Key}
		}
		if n := len(cat.Projects); n > 0 && !c.Confirmed {
			return &application.ConfirmationError{
				Prompt: fmt.Sprintf("This category has %d project(s). Delete anyway?", n),
			}
		}
		var err error
		removed, err = doc.RemoveCategory(c.Key)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &DeleteCategoryResult{
		Category: removed,
		Message:  fmt.Sprintf("Deleted category: %s (%d projects)", removed.Key, len(removed.Projects)),
	}, nil
}
