package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Personal holds the profile shown on the index page
type Personal struct {
	Name         string
	Profession   string
	Tagline      string
	Background   string
	Bio          string
	Logo         string
	ProfileImage string
	Email        string
	GitHub       string // username
	LinkedIn     string // username
	SiteURL      string
	Description  string // meta description
	Keywords     string
}

// Project is a portfolio entry with rich content sections
type Project struct {
	ID          string // slug, e.g. "task-manager"
	Title       string
	Subtitle    string
	Description string
	Icon        string
	TechStack   []string
	Links       []Link
	Sections    []Section
}

// Clone returns a deep copy of the project
func (p Project) Clone() Project {
	p.TechStack = slices.Clone(p.TechStack)
	p.Links = slices.Clone(p.Links)
	p.Sections = CloneSections(p.Sections)
	return p
}

// Category groups projects on the projects page
type Category struct {
	Key         string // e.g. "web"
	Title       string
	Icon        string
	Description string
	Projects    []Project
}

// Media is an optional attachment of a timeline event
type Media struct {
	Type string // "image" or "youtube"
	URL  string
}

// TimelineEvent is one entry of the journey page
type TimelineEvent struct {
	Date        string // free-form, e.g. "2018 - 2022"
	Title       string
	Category    string // CategoryTag key
	Description string
	Icon        string
	ProjectID   string // optional link to a Project
	Media       *Media
}

// CategoryTag labels timeline events
type CategoryTag struct {
	Key   string
	Label string
	Color string // hex, e.g. "#4a90e2"
}

// Defaults used when authoring timeline events and tags
const (
	DefaultEventIcon     = "📅"
	DefaultEventCategory = "life"
	DefaultTagColor      = "#4a90e2"
)

// DefaultTags returns the tags a new portfolio starts with
func DefaultTags() []CategoryTag {
	return []CategoryTag{
		{Key: "life", Label: "Life", Color: "#4a90e2"},
		{Key: "education", Label: "Education", Color: "#4caf50"},
		{Key: "career", Label: "Career", Color: "#9c27b0"},
		{Key: "project", Label: "Project", Color: "#ff9800"},
		{Key: "achievement", Label: "Achievement", Color: "#f44336"},
	}
}

// Portfolio is the whole content document
type Portfolio struct {
	Personal   Personal
	Categories []Category
	Timeline   []TimelineEvent
	Tags       []CategoryTag
}

// NewPortfolio returns an empty document with the default tags
func NewPortfolio() *Portfolio {
	return &Portfolio{Tags: DefaultTags()}
}

// Clone returns a deep copy of the document
func (p *Portfolio) Clone() *Portfolio {
	if p == nil {
		return nil
	}
	out := &Portfolio{
		Personal: p.Personal,
		Timeline: make([]TimelineEvent, len(p.Timeline)),
		Tags:     slices.Clone(p.Tags),
	}
	for i, e := range p.Timeline {
		if e.Media != nil {
			m := *e.Media
			e.Media = &m
		}
		out.Timeline[i] = e
	}
	if p.Categories != nil {
		out.Categories = make([]Category, len(p.Categories))
		for i, c := range p.Categories {
			projects := make([]Project, len(c.Projects))
			for j, proj := range c.Projects {
				projects[j] = proj.Clone()
			}
			c.Projects = projects
			out.Categories[i] = c
		}
	}
	return out
}

// Category returns a pointer to the category with key, or nil
func (p *Portfolio) Category(key string) *Category {
	for i := range p.Categories {
		if p.Categories[i].Key == key {
			return &p.Categories[i]
		}
	}
	return nil
}

// Tag returns the tag with key
func (p *Portfolio) Tag(key string) (CategoryTag, bool) {
	for _, t := range p.Tags {
		if t.Key == key {
			return t, true
		}
	}
	return CategoryTag{}, false
}

// locateProject finds a project by ID, returning its category and index
func (p *Portfolio) locateProject(id string) (*Category, int) {
	for ci := range p.Categories {
		for pi := range p.Categories[ci].Projects {
			if p.Categories[ci].Projects[pi].ID == id {
				return &p.Categories[ci], pi
			}
		}
	}
	return nil, -1
}

// SaveProject stores proj in categoryKey. When previousID is set the
// existing project with that ID is replaced; if it lives in another category
// it is moved to the end of categoryKey.
func (p *Portfolio) SaveProject(categoryKey string, proj Project, previousID string) error {
	target := p.Category(categoryKey)
	if target == nil {
		return &LookupError{Kind: "category", Key: categoryKey}
	}

	if other, _ := p.locateProject(proj.ID); other != nil && proj.ID != previousID {
		return &ValidationError{Field: "id", Message: fmt.Sprintf("Project ID %q already exists", proj.ID)}
	}

	if previousID == "" {
		target.Projects = append(target.Projects, proj)
		return nil
	}

	current, idx := p.locateProject(previousID)
	if current == nil {
		return &LookupError{Kind: "project", Key: previousID}
	}
	if current.Key == categoryKey {
		current.Projects[idx] = proj
		return nil
	}
	current.Projects = slices.Delete(current.Projects, idx, idx+1)
	target = p.Category(categoryKey)
	target.Projects = append(target.Projects, proj)
	return nil
}

// RemoveProject deletes a project and returns it
func (p *Portfolio) RemoveProject(id string) (Project, error) {
	cat, idx := p.locateProject(id)
	if cat == nil {
		return Project{}, &LookupError{Kind: "project", Key: id}
	}
	removed := cat.Projects[idx]
	cat.Projects = slices.Delete(cat.Projects, idx, idx+1)
	return removed, nil
}

// SaveCategory creates a category or updates the title, icon and description
// of an existing one. Creating a key that already exists is rejected.
func (p *Portfolio) SaveCategory(c Category, create bool) error {
	existing := p.Category(c.Key)
	if create {
		if existing != nil {
			return &ValidationError{Field: "key", Message: "Category key already exists"}
		}
		c.Projects = slices.Clone(c.Projects)
		p.Categories = append(p.Categories, c)
		return nil
	}
	if existing == nil {
		return &LookupError{Kind: "category", Key: c.Key}
	}
	existing.Title = c.Title
	existing.Icon = c.Icon
	existing.Description = c.Description
	return nil
}

// RemoveCategory deletes a category together with its projects
func (p *Portfolio) RemoveCategory(key string) (Category, error) {
	for i, c := range p.Categories {
		if c.Key == key {
			p.Categories = slices.Delete(p.Categories, i, i+1)
			return c, nil
		}
	}
	return Category{}, &LookupError{Kind: "category", Key: key}
}

// SaveTag creates or updates a tag
func (p *Portfolio) SaveTag(t CategoryTag, create bool) error {
	if strings.TrimSpace(t.Color) == "" {
		t.Color = DefaultTagColor
	}
	for i := range p.Tags {
		if p.Tags[i].Key != t.Key {
			continue
		}
		if create {
			return &ValidationError{Field: "key", Message: "Tag key already exists"}
		}
		p.Tags[i] = t
		return nil
	}
	if !create {
		return &LookupError{Kind: "tag", Key: t.Key}
	}
	p.Tags = append(p.Tags, t)
	return nil
}

// RemoveTag deletes a tag. Events keep their category key and simply lose
// the badge decoration.
func (p *Portfolio) RemoveTag(key string) error {
	for i, t := range p.Tags {
		if t.Key == key {
			p.Tags = slices.Delete(p.Tags, i, i+1)
			return nil
		}
	}
	return &LookupError{Kind: "tag", Key: key}
}

// SaveEvent appends e when index is negative, otherwise replaces the event
// at index
func (p *Portfolio) SaveEvent(index int, e TimelineEvent) error {
	if strings.TrimSpace(e.Icon) == "" {
		e.Icon = DefaultEventIcon
	}
	if strings.TrimSpace(e.Category) == "" {
		e.Category = DefaultEventCategory
	}
	if index < 0 {
		p.Timeline = append(p.Timeline, e)
		return nil
	}
	if index >= len(p.Timeline) {
		return &LookupError{Kind: "timeline event", Key: fmt.Sprint(index)}
	}
	p.Timeline[index] = e
	return nil
}

// RemoveEvent deletes the event at index
func (p *Portfolio) RemoveEvent(index int) (TimelineEvent, error) {
	if index < 0 || index >= len(p.Timeline) {
		return TimelineEvent{}, &LookupError{Kind: "timeline event", Key: fmt.Sprint(index)}
	}
	removed := p.Timeline[index]
	p.Timeline = slices.Delete(p.Timeline, index, index+1)
	return removed, nil
}
