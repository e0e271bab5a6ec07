// Package mdimport turns Markdown files with front matter into projects
package mdimport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/internal/adapters/markup"
	"folio/internal/domain"
)

// FrontMatter holds the project fields a file may declare
type FrontMatter struct {
	ID          string   `yaml:"id" json:"id" toml:"id"`
	Title       string   `yaml:"title" json:"title" toml:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle" toml:"subtitle"`
	Description string   `yaml:"description" json:"description" toml:"description"`
	Icon        string   `yaml:"icon" json:"icon" toml:"icon"`
	TechStack   []string `yaml:"techStack" json:"techStack" toml:"techStack"`
	Links       []struct {
		Type  string `yaml:"type" json:"type" toml:"type"`
		URL   string `yaml:"url" json:"url" toml:"url"`
		Label string `yaml:"label" json:"label" toml:"label"`
	} `yaml:"links" json:"links" toml:"links"`
}

// Importer parses Markdown documents
type Importer struct {
	md goldmark.Markdown
}

// New returns an importer understanding GitHub flavored Markdown
func New() *Importer {
	return &Importer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Glob expands doublestar patterns such as "notes/**/*.md" into a sorted,
// de-duplicated list of files
func Glob(patterns ...string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// ParseFile reads and parses one file
func (im *Importer) ParseFile(path string) (domain.Project, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return domain.Project{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	p, err := im.Parse(filepath.Base(path), src)
	if err != nil {
		return domain.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse converts src into a project. name is the file name, used for the
// ID and title when the front matter omits them.
func (im *Importer) Parse(name string, src []byte) (domain.Project, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return domain.Project{}, fmt.Errorf("invalid front matter: %w", err)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	p := domain.Project{
		ID:          strings.TrimSpace(fm.ID),
		Title:       strings.TrimSpace(fm.Title),
		Subtitle:    strings.TrimSpace(fm.Subtitle),
		Description: strings.TrimSpace(fm.Description),
		Icon:        fm.Icon,
		TechStack:   fm.TechStack,
	}
	if p.ID == "" {
		p.ID = Slug(base)
	}
	if p.Title == "" {
		p.Title = cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
	}
	for _, l := range fm.Links {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		p.Links = append(p.Links, domain.Link{Type: domain.ParseLinkType(l.Type), URL: l.URL, Label: l.Label})
	}

	blocks := im.Blocks(body)
	for _, b := range blocks {
		p.Sections = append(p.Sections, domain.NewSection(b))
	}
	domain.Renumber(p.Sections)

	if p.Description == "" {
		for _, b := range blocks {
			if t, ok := b.(domain.Text); ok {
				p.Description = t.Text
				break
			}
		}
	}
	return p, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins its alphanumeric runs with '-'
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Blocks converts a Markdown body into content blocks. Constructs without
// a block equivalent (tables, raw HTML, rules) are skipped.
func (im *Importer) Blocks(body []byte) []domain.Block {
	doc := im.md.Parser().Parse(text.NewReader(body))

	var blocks []domain.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b := block(n, body); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func block(n ast.Node, src []byte) domain.Block {
	switch n := n.(type) {
	case *ast.Heading:
		return domain.Heading{Level: n.Level, Text: inline(n, src)}

	case *ast.Paragraph:
		return paragraph(n, src)

	case *ast.FencedCodeBlock:
		return domain.Code{Language: string(n.Language(src)), Text: lines(n, src)}

	case *ast.CodeBlock:
		return domain.Code{Text: lines(n, src)}

	case *ast.List:
		l := domain.List{Ordered: n.IsOrdered()}
		listItems(n, src, 0, &l.Items)
		if len(l.Items) == 0 {
			return nil
		}
		return l

	case *ast.Blockquote:
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if s := inline(c, src); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		return domain.Text{Text: strings.Join(parts, " "), Italic: true}
	}
	return nil
}

// paragraph maps a lone image to an Image, a lone YouTube link to a Video,
// a fully emphasized paragraph to styled Text and anything else to Text
func paragraph(n *ast.Paragraph, src []byte) domain.Block {
	if only := n.FirstChild(); only != nil && only.NextSibling() == nil {
		switch c := only.(type) {
		case *ast.Image:
			return domain.Image{Src: string(c.Destination), Alt: inline(c, src)}
		case *ast.Link:
			dest := string(c.Destination)
			if markup.ExtractYouTubeID(dest) != dest {
				return domain.Video{Platform: domain.PlatformYouTube, Src: dest}
			}
		case *ast.AutoLink:
			dest := string(c.URL(src))
			if markup.ExtractYouTubeID(dest) != dest {
				return domain.Video{Platform: domain.PlatformYouTube, Src: dest}
			}
		case *ast.Emphasis:
			return domain.Text{Text: inline(c, src), Bold: c.Level >= 2, Italic: c.Level == 1}
		}
	}

	s := inline(n, src)
	if s == "" {
		return nil
	}
	return domain.Text{Text: s}
}

// listItems flattens nested lists into items with levels
func listItems(list *ast.List, src []byte, level int, out *[]domain.ListItem) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var textParts []string
		var nested []*ast.List
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, sub)
				continue
			}
			if s := inline(c, src); s != "" {
				textParts = append(textParts, s)
			}
		}

		next := level
		if len(textParts) > 0 {
			*out = append(*out, domain.ListItem{Text: strings.Join(textParts, " "), Level: level})
			next = level + 1
		}
		for _, sub := range nested {
			listItems(sub, src, next, out)
		}
	}
}

// inline flattens inline content to the text block syntax: links become
// [label](url), emphasis and code spans keep only their text
func inline(n ast.Node, src []byte) string {
	var sb strings.Builder
	writeInline(&sb, n, src)
	return strings.TrimSpace(sb.String())
}

func writeInline(sb *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		case *ast.Link:
			sb.WriteByte('[')
			writeInline(sb, c, src)
			sb.WriteString("](")
			sb.Write(c.Destination)
			sb.WriteByte(')')
		case *ast.AutoLink:
			url := c.URL(src)
			if c.AutoLinkType == ast.AutoLinkURL {
				fmt.Fprintf(sb, "[%s](%s)", c.Label(src), url)
			} else {
				sb.Write(c.Label(src))
			}
		case *ast.RawHTML:
			// dropped
		default:
			writeInline(sb, c, src)
		}
	}
}

func lines(n ast.Node, src []byte) string {
	var sb strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
