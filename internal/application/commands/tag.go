package commands

import (
	"context"
	"fmt"
	"strings"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// SaveTagResult contains the result of saving a tag
type SaveTagResult struct {
	Tag     domain.CategoryTag
	Message string
}

// SaveTagCommand creates or updates a timeline category tag
type SaveTagCommand struct {
	repo   ports.PortfolioRepository
	Tag    domain.CategoryTag
	Create bool
}

// NewSaveTagCommand creates a new SaveTagCommand
func NewSaveTagCommand(repo ports.PortfolioRepository, tag domain.CategoryTag, create bool) *SaveTagCommand {
	return &SaveTagCommand{
		repo:   repo,
		Tag:    tag,
		Create: create,
	}
}

// Validate checks if the save operation is valid
func (c *SaveTagCommand) Validate() error {
	if err := application.ValidateSlug("tagKey", strings.TrimSpace(c.Tag.Key)); err != nil {
		return err
	}
	if err := application.ValidateRequired("label", c.Tag.Label); err != nil {
		return err
	}
	return application.ValidateColor("color", strings.TrimSpace(c.Tag.Color))
}

// Execute runs the save tag command
func (c *SaveTagCommand) Execute(ctx context.Context) (*SaveTagResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tag := domain.CategoryTag{
		Key:   strings.TrimSpace(c.Tag.Key),
		Label: strings.TrimSpace(c.Tag.Label),
		Color: strings.TrimSpace(c.Tag.Color),
	}
	doc, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		return doc.SaveTag(tag, c.Create)
	})
	if err != nil {
		return nil, err
	}
	tag, _ = doc.Tag(tag.Key)

	return &SaveTagResult{
		Tag:     tag,
		Message: fmt.Sprintf("Saved tag: %s %s", tag.Key, tag.Color),
	}, nil
}

// DeleteTagCommand removes a tag. Events using it keep their category key.
type DeleteTagCommand struct {
	repo      ports.PortfolioRepository
	Key       string
	Confirmed bool
}

// NewDeleteTagCommand creates a new DeleteTagCommand
func NewDeleteTagCommand(repo ports.PortfolioRepository, key string, confirmed bool) *DeleteTagCommand {
	return &DeleteTagCommand{
		repo:      repo,
		Key:       key,
		Confirmed: confirmed,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteTagCommand) Validate() error {
	return application.ValidateRequired("tagKey", c.Key)
}

// Execute runs the delete tag command
func (c *DeleteTagCommand) Execute(ctx context.Context) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if !c.Confirmed {
		return "", &application.ConfirmationError{Prompt: "Are you sure you want to delete this category tag?"}
	}

	if _, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		return doc.RemoveTag(c.Key)
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted tag: %s", c.Key), nil
}
