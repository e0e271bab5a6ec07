// Package site generates the static portfolio pages from the document
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"folio/internal/adapters/markup"
	"folio/internal/domain"
)

//go:embed templates/*.html templates/style.css
var templateFS embed.FS

// FeaturedCount is how many projects the index page features
const FeaturedCount = 5

// Page file names
const (
	IndexPage    = "index.html"
	TimelinePage = "timeline.html"
	ProjectsPage = "projects.html"
	StyleSheet   = "style.css"
)

// ProjectPage returns the file name of a project's detail page
func ProjectPage(id string) string {
	return "project-" + id + ".html"
}

var linkIcons = map[domain.LinkType]string{
	domain.LinkGitHub:   "📦",
	domain.LinkBehance:  "🎨",
	domain.LinkPDF:      "📄",
	domain.LinkDrive:    "☁️",
	domain.LinkDemo:     "🚀",
	domain.LinkLinkedIn: "💼",
	domain.LinkYouTube:  "📺",
	domain.LinkCustom:   "🔗",
}

// timelineEntry is an event with its resolved tag and project
type timelineEntry struct {
	Event domain.TimelineEvent
	Tag   *domain.CategoryTag
	Link  *domain.Project
}

// pageData is the context every page template receives
type pageData struct {
	Page        string
	Title       string
	Description string
	Year        int
	Site        *domain.Portfolio

	Featured []domain.Project
	Timeline []timelineEntry

	Project    *domain.Project
	Prev, Next *domain.Project
}

// Builder renders the document into a directory of HTML pages
type Builder struct {
	outDir string
	title  string
	logger *slog.Logger
	md     goldmark.Markdown
	pages  map[string]*template.Template
	now    func() time.Time
}

// NewBuilder parses the embedded templates
func NewBuilder(outDir, siteTitle string, logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Builder{
		outDir: outDir,
		title:  siteTitle,
		logger: logger,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		pages: make(map[string]*template.Template),
		now:   time.Now,
	}

	funcs := template.FuncMap{
		"markdown":     b.markdown,
		"sections":     sections,
		"projectPage":  ProjectPage,
		"youtubeEmbed": youtubeEmbed,
		"linkIcon":     func(t domain.LinkType) string { return linkIcons[domain.ParseLinkType(string(t))] },
		"css":          func(s string) template.CSS { return template.CSS(s) },
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout: %w", err)
	}
	for _, name := range []string{"index", "timeline", "projects", "project"} {
		layout, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := layout.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s layout: %w", name, err)
		}
		b.pages[name] = layout
	}
	return b, nil
}

// OutDir returns the output directory
func (b *Builder) OutDir() string {
	return b.outDir
}

// Build writes every page for p and returns the written file names.
// Project pages of projects that no longer exist are removed.
func (b *Builder) Build(p *domain.Portfolio) ([]string, error) {
	if err := os.MkdirAll(b.outDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", b.outDir, err)
	}

	style, err := templateFS.ReadFile("templates/" + StyleSheet)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(b.outDir, StyleSheet), style, 0644); err != nil {
		return nil, fmt.Errorf("failed to write stylesheet: %w", err)
	}
	written := []string{StyleSheet}

	site := b.base(p)
	all := p.AllProjects()

	index := site
	index.Page = "index"
	index.Featured = all[:min(FeaturedCount, len(all))]
	if err := b.write(IndexPage, index); err != nil {
		return written, err
	}
	written = append(written, IndexPage)

	timeline := site
	timeline.Page = "timeline"
	timeline.Title = "My Journey - " + site.Title
	timeline.Timeline = resolveTimeline(p)
	if err := b.write(TimelinePage, timeline); err != nil {
		return written, err
	}
	written = append(written, TimelinePage)

	projects := site
	projects.Page = "projects"
	projects.Title = "Projects - " + site.Title
	if err := b.write(ProjectsPage, projects); err != nil {
		return written, err
	}
	written = append(written, ProjectsPage)

	keep := map[string]bool{}
	for i := range all {
		proj := all[i]
		page := site
		page.Page = "project"
		page.Title = fmt.Sprintf("%s - %s Portfolio", proj.Title, p.Personal.Name)
		page.Description = proj.Description
		page.Project = &proj
		page.Prev, page.Next = p.Neighbors(proj.ID)

		name := ProjectPage(proj.ID)
		if err := b.write(name, page); err != nil {
			return written, err
		}
		keep[name] = true
		written = append(written, name)
	}

	if err := b.removeStale(keep); err != nil {
		b.logger.Warn("could not remove stale project pages", "error", err)
	}

	b.logger.Info("site built", "dir", b.outDir, "pages", len(written)-1)
	return written, nil
}

func (b *Builder) base(p *domain.Portfolio) pageData {
	title := b.title
	if p.Personal.Name != "" {
		title = p.Personal.Name + " - " + p.Personal.Profession
	}
	return pageData{
		Title:       title,
		Description: p.Personal.Description,
		Year:        b.now().Year(),
		Site:        p,
	}
}

func (b *Builder) write(name string, data pageData) error {
	layout := b.pages[data.Page]

	var buf bytes.Buffer
	if err := layout.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to execute template '%s' for '%s': %w", data.Page, name, err)
	}

	path := filepath.Join(b.outDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	b.logger.Debug("generated page", "path", path)
	return nil
}

func (b *Builder) removeStale(keep map[string]bool) error {
	matches, err := filepath.Glob(filepath.Join(b.outDir, "project-*.html"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if keep[filepath.Base(path)] {
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		b.logger.Debug("removed stale page", "path", path)
	}
	return nil
}

// markdown renders free text such as the bio. Raw HTML in the source is
// omitted by the renderer.
func (b *Builder) markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

func sections(s []domain.Section) (template.HTML, error) {
	out, err := markup.RenderHTML(s)
	return template.HTML(out), err
}

func youtubeEmbed(url string) string {
	return "https://www.youtube.com/embed/" + markup.ExtractYouTubeID(url)
}

// resolveTimeline decorates events with their tag and linked project.
// Unknown tags and projects are left out.
func resolveTimeline(p *domain.Portfolio) []timelineEntry {
	entries := make([]timelineEntry, 0, len(p.Timeline))
	for _, e := range p.Timeline {
		entry := timelineEntry{Event: e}
		if tag, ok := p.Tag(e.Category); ok {
			entry.Tag = &tag
		}
		if e.ProjectID != "" {
			if proj, ok := p.ProjectByID(e.ProjectID); ok {
				entry.Link = &proj
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
