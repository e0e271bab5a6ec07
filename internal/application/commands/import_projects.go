package commands

import (
	"context"
	"fmt"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// ImportProjectsResult contains the result of importing projects
type ImportProjectsResult struct {
	Created []string
	Updated []string
	Message string
}

// ImportProjectsCommand adds externally authored projects to a category.
// Existing IDs are rejected unless Replace is set, in which case the stored
// project is overwritten (and moved to CategoryKey if needed).
type ImportProjectsCommand struct {
	repo        ports.PortfolioRepository
	CategoryKey string
	Projects    []domain.Project
	Replace     bool
}

// NewImportProjectsCommand creates a new ImportProjectsCommand
func NewImportProjectsCommand(repo ports.PortfolioRepository, categoryKey string, projects []domain.Project, replace bool) *ImportProjectsCommand {
	return &ImportProjectsCommand{
		repo:        repo,
		CategoryKey: categoryKey,
		Projects:    projects,
		Replace:     replace,
	}
}

// Validate checks every project before anything is written
func (c *ImportProjectsCommand) Validate() error {
	if err := application.ValidateRequired("category", c.CategoryKey); err != nil {
		return err
	}
	if len(c.Projects) == 0 {
		return &application.ValidationError{Field: "projects", Message: "no projects to import"}
	}

	seen := map[string]bool{}
	for _, p := range c.Projects {
		if err := application.ValidateSlug("projectID", p.ID); err != nil {
			return err
		}
		if err := application.ValidateRequired("title", p.Title); err != nil {
			return fmt.Errorf("project %s: %w", p.ID, err)
		}
		if seen[p.ID] {
			return &application.ValidationError{Field: "projectID", Message: fmt.Sprintf("project %q appears more than once", p.ID)}
		}
		seen[p.ID] = true
		for i, s := range p.Sections {
			if err := s.Block.Validate(); err != nil {
				return fmt.Errorf("project %s section %d: %w", p.ID, i+1, err)
			}
		}
	}
	return nil
}

// Execute runs the import projects command. Either every project is stored
// or none is.
func (c *ImportProjectsCommand) Execute(ctx context.Context) (*ImportProjectsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ImportProjectsResult{}
	_, err := mutate(ctx, c.repo, func(doc *domain.Portfolio) error {
		for _, p := range c.Projects {
			previousID := ""
			if _, exists := doc.ProjectByID(p.ID); exists {
				if !c.Replace {
					return &application.ValidationError{Field: "projectID", Message: fmt.Sprintf("Project ID %q already exists", p.ID)}
				}
				previousID = p.ID
			}
			if err := doc.SaveProject(c.CategoryKey, p.Clone(), previousID); err != nil {
				return err
			}
			if previousID == "" {
				result.Created = append(result.Created, p.ID)
			} else {
				result.Updated = append(result.Updated, p.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Imported %d project(s) into %s (%d new, %d updated)",
		len(c.Projects), c.CategoryKey, len(result.Created), len(result.Updated))
	return result, nil
}
