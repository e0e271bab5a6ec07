package domain

// AllProjectsKey is the sentinel category key selecting every project
const AllProjectsKey = "all"

// ProjectLink points at a project detail view
type ProjectLink struct {
	URL   string
	Title string
}

// AllProjects flattens every category's projects in category-then-project
// order
func (p *Portfolio) AllProjects() []Project {
	var all []Project
	for _, c := range p.Categories {
		all = append(all, c.Projects...)
	}
	return all
}

// ProjectByID returns the first project with id in AllProjects order
func (p *Portfolio) ProjectByID(id string) (Project, bool) {
	for _, proj := range p.AllProjects() {
		if proj.ID == id {
			return proj, true
		}
	}
	return Project{}, false
}

// ProjectsByCategory returns a category's projects, or every project for
// AllProjectsKey. Unknown keys yield nil.
func (p *Portfolio) ProjectsByCategory(key string) []Project {
	if key == AllProjectsKey {
		return p.AllProjects()
	}
	if c := p.Category(key); c != nil {
		return c.Projects
	}
	return nil
}

// TimelineByCategory returns the events whose category equals key exactly
func (p *Portfolio) TimelineByCategory(key string) []TimelineEvent {
	var events []TimelineEvent
	for _, e := range p.Timeline {
		if e.Category == key {
			events = append(events, e)
		}
	}
	return events
}

// ProjectLink builds the detail link for a project, or reports false when the
// id does not resolve
func (p *Portfolio) ProjectLink(id string) (ProjectLink, bool) {
	proj, ok := p.ProjectByID(id)
	if !ok {
		return ProjectLink{}, false
	}
	return ProjectLink{URL: "project.html?id=" + id, Title: proj.Title}, true
}

// CategoryOf returns the key of the category holding project id
func (p *Portfolio) CategoryOf(id string) (string, bool) {
	cat, _ := p.locateProject(id)
	if cat == nil {
		return "", false
	}
	return cat.Key, true
}

// Neighbors returns the projects before and after id in AllProjects order
func (p *Portfolio) Neighbors(id string) (prev, next *Project) {
	all := p.AllProjects()
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if i > 0 {
			prev = &all[i-1]
		}
		if i < len(all)-1 {
			next = &all[i+1]
		}
		return prev, next
	}
	return nil, nil
}
