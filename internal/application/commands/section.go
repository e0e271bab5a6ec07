package commands

import (
	"context"
	"fmt"

	"folio/internal/application"
	"folio/internal/application/draft"
	"folio/internal/domain"
	"folio/internal/ports"
)

// editSections runs fn against a section editor over the project's sections
// and writes the resulting sequence back
func editSections(ctx context.Context, repo ports.PortfolioRepository, projectID string, fn func(*draft.SectionEditor) error) ([]domain.Section, error) {
	var sections []domain.Section
	_, err := mutate(ctx, repo, func(doc *domain.Portfolio) error {
		proj, ok := doc.ProjectByID(projectID)
		if !ok {
			return &application.LookupError{Kind: "project", Key: projectID}
		}
		categoryKey, _ := doc.CategoryOf(projectID)

		editor := draft.NewSectionEditor(proj.Sections)
		if err := fn(editor); err != nil {
			return err
		}
		proj = proj.Clone()
		proj.Sections = editor.Sections()
		sections = proj.Sections
		return doc.SaveProject(categoryKey, proj, projectID)
	})
	return sections, err
}

// SectionResult contains the sequence after a section command
type SectionResult struct {
	Sections []domain.Section
	Message  string
}

// AddSectionCommand appends a content block to a project
type AddSectionCommand struct {
	repo      ports.PortfolioRepository
	ProjectID string
	Block     domain.Block
}

// NewAddSectionCommand creates a new AddSectionCommand
func NewAddSectionCommand(repo ports.PortfolioRepository, projectID string, b domain.Block) *AddSectionCommand {
	return &AddSectionCommand{
		repo:      repo,
		ProjectID: projectID,
		Block:     b,
	}
}

// Validate checks if the add operation is valid
func (c *AddSectionCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	if c.Block == nil {
		return &application.ValidationError{Field: "type", Message: "section content is required"}
	}
	return domain.WithDefaults(c.Block).Validate()
}

// Execute runs the add section command
func (c *AddSectionCommand) Execute(ctx context.Context) (*SectionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sections, err := editSections(ctx, c.repo, c.ProjectID, func(e *draft.SectionEditor) error {
		e.ShowForm(c.Block.Kind())
		_, err := e.Submit(c.Block)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SectionResult{
		Sections: sections,
		Message:  fmt.Sprintf("Added %s section #%d to %s", c.Block.Kind(), len(sections), c.ProjectID),
	}, nil
}

// UpdateSectionCommand replaces the block of an existing section, keeping
// its ID and position
type UpdateSectionCommand struct {
	repo      ports.PortfolioRepository
	ProjectID string
	Index     int
	Block     domain.Block
}

// NewUpdateSectionCommand creates a new UpdateSectionCommand
func NewUpdateSectionCommand(repo ports.PortfolioRepository, projectID string, index int, b domain.Block) *UpdateSectionCommand {
	return &UpdateSectionCommand{
		repo:      repo,
		ProjectID: projectID,
		Index:     index,
		Block:     b,
	}
}

// Execute runs the update section command
func (c *UpdateSectionCommand) Execute(ctx context.Context) (*SectionResult, error) {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return nil, err
	}

	sections, err := editSections(ctx, c.repo, c.ProjectID, func(e *draft.SectionEditor) error {
		if _, err := e.BeginEdit(c.Index); err != nil {
			return err
		}
		_, err := e.Submit(c.Block)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SectionResult{
		Sections: sections,
		Message:  fmt.Sprintf("Updated section #%d of %s", c.Index+1, c.ProjectID),
	}, nil
}

// MoveSectionCommand swaps a section with its neighbor. Offset is -1 (up) or
// +1 (down); moving past either end leaves the sequence unchanged.
type MoveSectionCommand struct {
	repo      ports.PortfolioRepository
	ProjectID string
	Index     int
	Offset    int
}

// NewMoveSectionCommand creates a new MoveSectionCommand
func NewMoveSectionCommand(repo ports.PortfolioRepository, projectID string, index, offset int) *MoveSectionCommand {
	return &MoveSectionCommand{
		repo:      repo,
		ProjectID: projectID,
		Index:     index,
		Offset:    offset,
	}
}

// Validate checks if the move operation is valid
func (c *MoveSectionCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	if c.Offset != -1 && c.Offset != 1 {
		return &application.ValidationError{
			Field:   "offset",
			Message: fmt.Sprintf("sections move one step up (-1) or down (+1), got %d", c.Offset),
		}
	}
	return nil
}

// Execute runs the move section command
func (c *MoveSectionCommand) Execute(ctx context.Context) (*SectionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	moved := false
	sections, err := editSections(ctx, c.repo, c.ProjectID, func(e *draft.SectionEditor) error {
		if c.Index < 0 || c.Index >= e.Len() {
			return &application.LookupError{Kind: "section", Key: fmt.Sprint(c.Index)}
		}
		if c.Offset < 0 {
			moved = e.MoveUp(c.Index)
		} else {
			moved = e.MoveDown(c.Index)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Section #%d is already at the boundary", c.Index+1)
	if moved {
		msg = fmt.Sprintf("Moved section #%d to #%d", c.Index+1, c.Index+c.Offset+1)
	}
	return &SectionResult{Sections: sections, Message: msg}, nil
}

// RemoveSectionCommand deletes a section from a project
type RemoveSectionCommand struct {
	repo      ports.PortfolioRepository
	ProjectID string
	Index     int
	Confirmed bool
}

// NewRemoveSectionCommand creates a new RemoveSectionCommand
func NewRemoveSectionCommand(repo ports.PortfolioRepository, projectID string, index int, confirmed bool) *RemoveSectionCommand {
	return &RemoveSectionCommand{
		repo:      repo,
		ProjectID: projectID,
		Index:     index,
		Confirmed: confirmed,
	}
}

// Execute runs the remove section command
func (c *RemoveSectionCommand) Execute(ctx context.Context) (*SectionResult, error) {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return nil, err
	}

	sections, err := editSections(ctx, c.repo, c.ProjectID, func(e *draft.SectionEditor) error {
		return e.Remove(c.Index, c.Confirmed)
	})
	if err != nil {
		return nil, err
	}

	return &SectionResult{
		Sections: sections,
		Message:  fmt.Sprintf("Removed section #%d from %s", c.Index+1, c.ProjectID),
	}, nil
}
