package draft

import (
	"fmt"
	"slices"
	"strings"

	"folio/internal/application"
	"folio/internal/domain"
)

// Draft is the working copy of a project open in the editor. Nothing reaches
// the portfolio until Commit.
type Draft struct {
	// PreviousID is the ID the project had when opened; empty for a new one
	PreviousID  string
	CategoryKey string

	ID          string
	Title       string
	Subtitle    string
	Description string
	Icon        string

	techStack []string
	links     []domain.Link

	Sections *SectionEditor
}

// New returns an empty draft for a project in categoryKey
func New(categoryKey string) *Draft {
	return &Draft{
		CategoryKey: categoryKey,
		Sections:    NewSectionEditor(nil),
	}
}

// Open loads the project with id into a draft
func Open(p *domain.Portfolio, id string) (*Draft, error) {
	proj, ok := p.ProjectByID(id)
	if !ok {
		return nil, &application.LookupError{Kind: "project", Key: id}
	}
	categoryKey, _ := p.CategoryOf(id)
	proj = proj.Clone()
	return &Draft{
		PreviousID:  proj.ID,
		CategoryKey: categoryKey,
		ID:          proj.ID,
		Title:       proj.Title,
		Subtitle:    proj.Subtitle,
		Description: proj.Description,
		Icon:        proj.Icon,
		techStack:   proj.TechStack,
		links:       proj.Links,
		Sections:    NewSectionEditor(proj.Sections),
	}, nil
}

// IsNew reports whether the draft has never been committed
func (d *Draft) IsNew() bool {
	return d.PreviousID == ""
}

// TechStack returns a copy of the technology list
func (d *Draft) TechStack() []string {
	return slices.Clone(d.techStack)
}

// AddTech appends a technology. Duplicates are allowed.
func (d *Draft) AddTech(tech string) error {
	tech = strings.TrimSpace(tech)
	if tech == "" {
		return &application.ValidationError{Field: "techStack", Message: "technology name is required"}
	}
	d.techStack = append(d.techStack, tech)
	return nil
}

// RemoveTech deletes the technology at index
func (d *Draft) RemoveTech(index int) error {
	if index < 0 || index >= len(d.techStack) {
		return &application.LookupError{Kind: "technology", Key: fmt.Sprint(index)}
	}
	d.techStack = slices.Delete(d.techStack, index, index+1)
	return nil
}

// Links returns a copy of the project links
func (d *Draft) Links() []domain.Link {
	return slices.Clone(d.links)
}

// AddLink appends a link; the URL is required, the label optional
func (d *Draft) AddLink(l domain.Link) error {
	l.URL = strings.TrimSpace(l.URL)
	l.Label = strings.TrimSpace(l.Label)
	if l.URL == "" {
		return &application.ValidationError{Field: "url", Message: "Please enter a URL"}
	}
	l.Type = domain.ParseLinkType(string(l.Type))
	d.links = append(d.links, l)
	return nil
}

// RemoveLink deletes the link at index
func (d *Draft) RemoveLink(index int) error {
	if index < 0 || index >= len(d.links) {
		return &application.LookupError{Kind: "link", Key: fmt.Sprint(index)}
	}
	d.links = slices.Delete(d.links, index, index+1)
	return nil
}

// Validate checks the required fields
func (d *Draft) Validate() error {
	for _, v := range []string{d.ID, d.Title, d.Subtitle, d.CategoryKey} {
		if strings.TrimSpace(v) == "" {
			return &application.ValidationError{
				Field:   "project",
				Message: "Please fill in all required fields: Project ID, Title, Subtitle, and Category",
			}
		}
	}
	return application.ValidateSlug("projectID", strings.TrimSpace(d.ID))
}

// Project builds the project value described by the draft
func (d *Draft) Project() domain.Project {
	return domain.Project{
		ID:          strings.TrimSpace(d.ID),
		Title:       strings.TrimSpace(d.Title),
		Subtitle:    strings.TrimSpace(d.Subtitle),
		Description: strings.TrimSpace(d.Description),
		Icon:        strings.TrimSpace(d.Icon),
		TechStack:   d.TechStack(),
		Links:       d.Links(),
		Sections:    d.Sections.Sections(),
	}
}

// Commit validates the draft and stores it in p, moving it when the category
// changed. After a successful commit the draft edits the saved project.
func (d *Draft) Commit(p *domain.Portfolio) error {
	if err := d.Validate(); err != nil {
		return err
	}
	proj := d.Project()
	if err := p.SaveProject(d.CategoryKey, proj, d.PreviousID); err != nil {
		return err
	}
	d.PreviousID = proj.ID
	return nil
}
