package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/internal/domain"
)

// document is the external shape of the portfolio: the data.js literal
// uses projectCategories for project groups and categories for timeline
// tags, both keyed objects whose key order is display order.
type document struct {
	Personal          *wirePersonal                                `json:"personal" yaml:"personal"`
	ProjectCategories *orderedmap.OrderedMap[string, wireCategory] `json:"projectCategories" yaml:"projectCategories"`
	Timeline          []wireEvent                                  `json:"timeline" yaml:"timeline"`
	Categories        *orderedmap.OrderedMap[string, wireTag]      `json:"categories" yaml:"categories"`
	Projects          []legacyProject                              `json:"projects,omitempty" yaml:"projects,omitempty"`
}

type wirePersonal struct {
	Name         string `json:"name" yaml:"name"`
	Profession   string `json:"profession" yaml:"profession"`
	Tagline      string `json:"tagline" yaml:"tagline"`
	Background   string `json:"background" yaml:"background"`
	Bio          string `json:"bio" yaml:"bio"`
	Logo         string `json:"logo" yaml:"logo"`
	ProfileImage string `json:"profileImage" yaml:"profileImage"`
	Email        string `json:"email" yaml:"email"`
	GitHub       string `json:"github" yaml:"github"`
	LinkedIn     string `json:"linkedin" yaml:"linkedin"`
	SiteURL      string `json:"siteUrl" yaml:"siteUrl"`
	Description  string `json:"description" yaml:"description"`
	Keywords     string `json:"keywords" yaml:"keywords"`
}

type wireCategory struct {
	Title       string        `json:"title" yaml:"title"`
	Icon        string        `json:"icon" yaml:"icon"`
	Description string        `json:"description" yaml:"description"`
	Projects    []wireProject `json:"projects" yaml:"projects"`
}

type wireProject struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Subtitle    string        `json:"subtitle" yaml:"subtitle"`
	Description string        `json:"description" yaml:"description"`
	Icon        string        `json:"icon" yaml:"icon"`
	TechStack   []string      `json:"techStack" yaml:"techStack"`
	Links       wireLinks     `json:"links" yaml:"links"`
	Sections    []wireSection `json:"sections" yaml:"sections"`
}

// legacyProject is the flat project list of older data.js files, where
// each project names its categories
type legacyProject struct {
	wireProject `yaml:",inline"`
	Category    []string `json:"category" yaml:"category"`
}

type wireLink struct {
	Type  string `json:"type" yaml:"type"`
	URL   string `json:"url" yaml:"url"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// wireLinks also accepts the older {"github": url, "demo": null} object form
type wireLinks []wireLink

func (l *wireLinks) UnmarshalJSON(data []byte) error {
	var list []wireLink
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	byType := orderedmap.New[string, *string]()
	if err := json.Unmarshal(data, byType); err != nil {
		return fmt.Errorf("links must be a list or an object of URLs: %w", err)
	}
	*l = nil
	for pair := byType.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil || strings.TrimSpace(*pair.Value) == "" {
			continue
		}
		*l = append(*l, wireLink{Type: pair.Key, URL: *pair.Value})
	}
	return nil
}

type wireListItem struct {
	Text  string `json:"text" yaml:"text"`
	Level int    `json:"level" yaml:"level"`
}

// wireSection is the tagged union stored for a content block. Value holds
// the text of heading, text and code blocks.
type wireSection struct {
	ID          string         `json:"id,omitempty" yaml:"id,omitempty"`
	Type        string         `json:"type" yaml:"type"`
	Value       string         `json:"value,omitempty" yaml:"value,omitempty"`
	Level       int            `json:"level,omitempty" yaml:"level,omitempty"`
	FontSize    string         `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Bold        bool           `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic      bool           `json:"italic,omitempty" yaml:"italic,omitempty"`
	Ordered     bool           `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Items       []string       `json:"items,omitempty" yaml:"items,omitempty"`
	NestedItems []wireListItem `json:"nestedItems,omitempty" yaml:"nestedItems,omitempty"`
	Language    string         `json:"language,omitempty" yaml:"language,omitempty"`
	Src         string         `json:"src,omitempty" yaml:"src,omitempty"`
	Alt         string         `json:"alt,omitempty" yaml:"alt,omitempty"`
	Platform    string         `json:"platform,omitempty" yaml:"platform,omitempty"`
}

type wireMedia struct {
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url" yaml:"url"`
}

type wireEvent struct {
	Date        string     `json:"date" yaml:"date"`
	Title       string     `json:"title" yaml:"title"`
	Category    string     `json:"category" yaml:"category"`
	Description string     `json:"description" yaml:"description"`
	Icon        string     `json:"icon" yaml:"icon"`
	ProjectID   string     `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Media       *wireMedia `json:"media,omitempty" yaml:"media,omitempty"`
}

type wireTag struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// toWire converts the aggregate into its external shape
func toWire(p *domain.Portfolio) *document {
	doc := &document{
		Personal:          (*wirePersonal)(&p.Personal),
		ProjectCategories: orderedmap.New[string, wireCategory](),
		Timeline:          make([]wireEvent, 0, len(p.Timeline)),
		Categories:        orderedmap.New[string, wireTag](),
	}

	for _, c := range p.Categories {
		wc := wireCategory{
			Title:       c.Title,
			Icon:        c.Icon,
			Description: c.Description,
			Projects:    make([]wireProject, 0, len(c.Projects)),
		}
		for _, proj := range c.Projects {
			wc.Projects = append(wc.Projects, projectToWire(proj))
		}
		doc.ProjectCategories.Set(c.Key, wc)
	}

	for _, e := range p.Timeline {
		we := wireEvent{
			Date:        e.Date,
			Title:       e.Title,
			Category:    e.Category,
			Description: e.Description,
			Icon:        e.Icon,
			ProjectID:   e.ProjectID,
		}
		if e.Media != nil {
			we.Media = &wireMedia{Type: e.Media.Type, URL: e.Media.URL}
		}
		doc.Timeline = append(doc.Timeline, we)
	}

	for _, t := range p.Tags {
		doc.Categories.Set(t.Key, wireTag{Label: t.Label, Color: t.Color})
	}
	return doc
}

func projectToWire(p domain.Project) wireProject {
	wp := wireProject{
		ID:          p.ID,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		Icon:        p.Icon,
		TechStack:   append([]string{}, p.TechStack...),
		Links:       make(wireLinks, 0, len(p.Links)),
		Sections:    make([]wireSection, 0, len(p.Sections)),
	}
	for _, l := range p.Links {
		wp.Links = append(wp.Links, wireLink{Type: string(l.Type), URL: l.URL, Label: l.Label})
	}
	for _, s := range p.Sections {
		ws := domain.Match[wireSection](s.Block, sectionEncoder{})
		ws.ID = s.ID
		wp.Sections = append(wp.Sections, ws)
	}
	return wp
}

type sectionEncoder struct{}

func (sectionEncoder) Heading(h domain.Heading) wireSection {
	return wireSection{Type: "heading", Level: h.Level, Value: h.Text}
}

func (sectionEncoder) Text(t domain.Text) wireSection {
	return wireSection{Type: "text", Value: t.Text, Bold: t.Bold, Italic: t.Italic, FontSize: string(t.FontSize)}
}

func (sectionEncoder) List(l domain.List) wireSection {
	ws := wireSection{Type: "list", Ordered: l.Ordered, Items: make([]string, 0, len(l.Items))}
	for _, item := range l.Items {
		ws.Items = append(ws.Items, item.Text)
	}
	if domain.IsNested(l.Items) {
		for _, item := range l.Items {
			ws.NestedItems = append(ws.NestedItems, wireListItem{Text: item.Text, Level: item.Level})
		}
	}
	return ws
}

func (sectionEncoder) Code(c domain.Code) wireSection {
	return wireSection{Type: "code", Language: c.Language, Value: c.Text}
}

func (sectionEncoder) Image(i domain.Image) wireSection {
	return wireSection{Type: "image", Src: i.Src, Alt: i.Alt}
}

func (sectionEncoder) Video(v domain.Video) wireSection {
	return wireSection{Type: "video", Platform: string(v.Platform), Src: v.Src}
}

// fromWire converts a decoded document into the aggregate
func fromWire(doc *document) (*domain.Portfolio, error) {
	p := domain.NewPortfolio()
	if doc.Personal != nil {
		p.Personal = domain.Personal(*doc.Personal)
	}

	if doc.ProjectCategories != nil {
		for pair := doc.ProjectCategories.Oldest(); pair != nil; pair = pair.Next() {
			c := domain.Category{
				Key:         pair.Key,
				Title:       pair.Value.Title,
				Icon:        pair.Value.Icon,
				Description: pair.Value.Description,
			}
			for _, wp := range pair.Value.Projects {
				proj, err := projectFromWire(wp)
				if err != nil {
					return nil, err
				}
				c.Projects = append(c.Projects, proj)
			}
			p.Categories = append(p.Categories, c)
		}
	} else if len(doc.Projects) > 0 {
		cats, err := categoriesFromLegacy(doc.Projects)
		if err != nil {
			return nil, err
		}
		p.Categories = cats
	}

	for _, we := range doc.Timeline {
		e := domain.TimelineEvent{
			Date:        we.Date,
			Title:       we.Title,
			Category:    we.Category,
			Description: we.Description,
			Icon:        we.Icon,
			ProjectID:   we.ProjectID,
		}
		if we.Media != nil {
			e.Media = &domain.Media{Type: we.Media.Type, URL: we.Media.URL}
		}
		p.Timeline = append(p.Timeline, e)
	}

	if doc.Categories != nil {
		p.Tags = nil
		for pair := doc.Categories.Oldest(); pair != nil; pair = pair.Next() {
			p.Tags = append(p.Tags, domain.CategoryTag{Key: pair.Key, Label: pair.Value.Label, Color: pair.Value.Color})
		}
	}
	return p, nil
}

// categoriesFromLegacy files each project under its first category,
// creating categories in order of first use
func categoriesFromLegacy(projects []legacyProject) ([]domain.Category, error) {
	title := cases.Title(language.English)
	var cats []domain.Category
	index := map[string]int{}
	for _, lp := range projects {
		key := "other"
		if len(lp.Category) > 0 && strings.TrimSpace(lp.Category[0]) != "" {
			key = strings.TrimSpace(lp.Category[0])
		}
		i, ok := index[key]
		if !ok {
			i = len(cats)
			index[key] = i
			cats = append(cats, domain.Category{Key: key, Title: title.String(key)})
		}
		proj, err := projectFromWire(lp.wireProject)
		if err != nil {
			return nil, err
		}
		cats[i].Projects = append(cats[i].Projects, proj)
	}
	return cats, nil
}

func projectFromWire(wp wireProject) (domain.Project, error) {
	p := domain.Project{
		ID:          wp.ID,
		Title:       wp.Title,
		Subtitle:    wp.Subtitle,
		Description: wp.Description,
		Icon:        wp.Icon,
	}
	if len(wp.TechStack) > 0 {
		p.TechStack = wp.TechStack
	}
	for _, l := range wp.Links {
		p.Links = append(p.Links, domain.Link{Type: domain.ParseLinkType(l.Type), URL: l.URL, Label: l.Label})
	}
	for i, ws := range wp.Sections {
		b, err := sectionFromWire(ws)
		if err != nil {
			return domain.Project{}, fmt.Errorf("project %q section %d: %w", wp.ID, i+1, err)
		}
		id := ws.ID
		if id == "" {
			id = domain.NewID()
		}
		p.Sections = append(p.Sections, domain.Section{ID: id, Order: i, Block: b})
	}
	return p, nil
}

func sectionFromWire(ws wireSection) (domain.Block, error) {
	kind, err := domain.ParseBlockKind(ws.Type)
	if err != nil {
		return nil, err
	}

	var b domain.Block
	switch kind {
	case domain.KindHeading:
		b = domain.Heading{Level: ws.Level, Text: ws.Value}
	case domain.KindText:
		b = domain.Text{Text: ws.Value, Bold: ws.Bold, Italic: ws.Italic, FontSize: domain.FontSize(ws.FontSize)}
	case domain.KindList:
		l := domain.List{Ordered: ws.Ordered}
		if len(ws.NestedItems) > 0 {
			for _, item := range ws.NestedItems {
				l.Items = append(l.Items, domain.ListItem{Text: item.Text, Level: item.Level})
			}
		} else {
			for _, text := range ws.Items {
				l.Items = append(l.Items, domain.ListItem{Text: text})
			}
		}
		b = l
	case domain.KindCode:
		b = domain.Code{Language: ws.Language, Text: ws.Value}
	case domain.KindImage:
		b = domain.Image{Src: ws.Src, Alt: ws.Alt}
	case domain.KindVideo:
		b = domain.Video{Platform: domain.VideoPlatform(ws.Platform), Src: ws.Src}
	}
	return domain.WithDefaults(b), nil
}
