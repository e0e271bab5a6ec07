package commands

import (
	"context"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// ListProjectsCommand lists the projects of a category, or all of them for
// an empty key or "all"
type ListProjectsCommand struct {
	repo        ports.PortfolioRepository
	CategoryKey string
}

// NewListProjectsCommand creates a new ListProjectsCommand
func NewListProjectsCommand(repo ports.PortfolioRepository, categoryKey string) *ListProjectsCommand {
	return &ListProjectsCommand{
		repo:        repo,
		CategoryKey: categoryKey,
	}
}

// Execute runs the list projects command
func (c *ListProjectsCommand) Execute(ctx context.Context) ([]domain.Project, error) {
	doc, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	key := c.CategoryKey
	if key == "" {
		key = domain.AllProjectsKey
	}
	return doc.ProjectsByCategory(key), nil
}

// ListCategoriesCommand lists the project categories in display order
type ListCategoriesCommand struct {
	repo ports.PortfolioRepository
}

// NewListCategoriesCommand creates a new ListCategoriesCommand
func NewListCategoriesCommand(repo ports.PortfolioRepository) *ListCategoriesCommand {
	return &ListCategoriesCommand{repo: repo}
}

// Execute runs the list categories command
func (c *ListCategoriesCommand) Execute(ctx context.Context) ([]domain.Category, error) {
	doc, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// ProjectDetails is a project with the context its detail view needs
type ProjectDetails struct {
	Project     domain.Project
	CategoryKey string
	Link        domain.ProjectLink
	Prev, Next  *domain.Project
}

// GetProjectCommand looks up one project by ID
type GetProjectCommand struct {
	repo      ports.PortfolioRepository
	ProjectID string
}

// NewGetProjectCommand creates a new GetProjectCommand
func NewGetProjectCommand(repo ports.PortfolioRepository, projectID string) *GetProjectCommand {
	return &GetProjectCommand{
		repo:      repo,
		ProjectID: projectID,
	}
}

// Execute runs the get project command
func (c *GetProjectCommand) Execute(ctx context.Context) (*ProjectDetails, error) {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return nil, err
	}
	doc, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	proj, ok := doc.ProjectByID(c.ProjectID)
	if !ok {
		return nil, &application.LookupError{Kind: "project", Key: c.ProjectID}
	}
	categoryKey, _ := doc.CategoryOf(c.ProjectID)
	link, _ := doc.ProjectLink(c.ProjectID)
	prev, next := doc.Neighbors(c.ProjectID)

	return &ProjectDetails{
		Project:     proj,
		CategoryKey: categoryKey,
		Link:        link,
		Prev:        prev,
		Next:        next,
	}, nil
}

// TimelineEntry is a timeline event with its resolved decorations. Missing
// tags and projects are left empty.
type TimelineEntry struct {
	Index int
	Event domain.TimelineEvent
	Tag   *domain.CategoryTag
	Link  *domain.ProjectLink
}

// TimelineCommand lists timeline events, optionally filtered by category
type TimelineCommand struct {
	repo     ports.PortfolioRepository
	Category string
}

// NewTimelineCommand creates a new TimelineCommand
func NewTimelineCommand(repo ports.PortfolioRepository, category string) *TimelineCommand {
	return &TimelineCommand{
		repo:     repo,
		Category: category,
	}
}

// Execute runs the timeline command
func (c *TimelineCommand) Execute(ctx context.Context) ([]TimelineEntry, error) {
	doc, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	var entries []TimelineEntry
	for i, e := range doc.Timeline {
		if c.Category != "" && e.Category != c.Category {
			continue
		}
		entry := TimelineEntry{Index: i, Event: e}
		if tag, ok := doc.Tag(e.Category); ok {
			entry.Tag = &tag
		}
		if e.ProjectID != "" {
			if link, ok := doc.ProjectLink(e.ProjectID); ok {
				entry.Link = &link
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// BuildTreeCommand builds the category/project tree
type BuildTreeCommand struct {
	repo ports.PortfolioRepository
}

// NewBuildTreeCommand creates a new BuildTreeCommand
func NewBuildTreeCommand(repo ports.PortfolioRepository) *BuildTreeCommand {
	return &BuildTreeCommand{repo: repo}
}

// Execute runs the build tree command
func (c *BuildTreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	doc, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildTree(doc), nil
}
