package commands

import (
	"context"
	"fmt"

	"folio/internal/application"
	"folio/internal/application/draft"
	"folio/internal/domain"
	"folio/internal/ports"
)

// SaveProjectResult contains the result of saving a project
type SaveProjectResult struct {
	Project domain.Project
	Created bool
	Message string
}

// SaveProjectCommand commits a project draft into the portfolio
type SaveProjectCommand struct {
	repo  ports.PortfolioRepository
	Draft *draft.Draft
}

// NewSaveProjectCommand creates a new SaveProjectCommand
func NewSaveProjectCommand(repo ports.PortfolioRepository, d *draft.Draft) *SaveProjectCommand {
	return &SaveProjectCommand{
		repo:  repo,
		Draft: d,
	}
}

// Validate checks the draft's required fields
func (c *SaveProjectCommand) Validate() error {
	if c.Draft == nil {
		return &application.ValidationError{
			Field:   "project",
			Message: "no project to save",
		}
	}
	return c.Draft.Validate()
}

// Execute runs the save project command
func (c *SaveProjectCommand) Execute(ctx context.Context) (*SaveProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	created := c.Draft.IsNew()
	previousID := c.Draft.PreviousID
	if _, err := mutate(ctx, c.repo, c.Draft.Commit); err != nil {
		c.Draft.PreviousID = previousID
		return nil, err
	}

	proj := c.Draft.Project()
	verb := "Updated"
	if created {
		verb = "Created"
	}
	return &SaveProjectResult{
		Project: proj,
		Created: created,
		Message: fmt.Sprintf("%s project: %s", verb, proj.ID),
	}, nil
}

// DeleteProjectResult contains the result of deleting a project
type DeleteProjectResult struct {
	Project domain.Project
	Message string
}

// DeleteProjectCommand removes a project from its category
type DeleteProjectCommand struct {
	repo      ports.PortfolioRepository
	ProjectID string
	Confirmed bool
}

// NewDeleteProjectCommand creates a new DeleteProjectCommand
func NewDeleteProjectCommand(repo ports.PortfolioRepository, projectID string, confirmed bool) *DeleteProjectCommand {
	return &DeleteProjectCommand{
		repo:      repo,
		ProjectID: projectID,
		Confirmed: confirmed,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteProjectCommand) Validate() error {
	return application.ValidateRequired("projectID", c.ProjectID)
}

// Execute runs the delete project command
func (c *DeleteProjectCommand) Execute(ctx context.Context) (*DeleteProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.Confirmed {
		return nil, &application.ConfirmationError{Prompt: "Are you sure you want to delete this project?"}
	}

	var removed domain.Project
	_, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		var err error
		removed, err = doc.RemoveProject(c.ProjectID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	return &DeleteProjectResult{
		Project: removed,
		Message: fmt.Sprintf("Deleted project: %s %s", removed.ID, removed.Title),
	}, nil
}
