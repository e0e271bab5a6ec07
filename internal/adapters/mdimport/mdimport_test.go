package mdimport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
)

const projectDoc = `---
id: weather-app
title: Weather Dashboard
subtitle: Forecasts at a glance
techStack: [Go, HTMX]
links:
  - type: github
    url: https://github.com/ada/weather
  - type: demo
    url: ""
---
# Overview

Built with [Go](https://go.dev) and *care*.
Second line.

**Highlights**

- Fast
  - Cached
    - In memory
- Small

1. one
2. two

` + "```go\nfunc main() {}\n```" + `

![Screenshot](img/shot.png)

https://youtu.be/dQw4w9WgXcQ

> Quote here

<div>raw</div>
`

func blocksOf(p domain.Project) []domain.Block {
	var out []domain.Block
	for _, s := range p.Sections {
		out = append(out, s.Block)
	}
	return out
}

func TestParse_FrontMatterAndBody(t *testing.T) {
	p, err := New().Parse("weather.md", []byte(projectDoc))
	require.NoError(t, err)

	assert.Equal(t, "weather-app", p.ID)
	assert.Equal(t, "Weather Dashboard", p.Title)
	assert.Equal(t, []string{"Go", "HTMX"}, p.TechStack)
	assert.Equal(t, []domain.Link{{Type: domain.LinkGitHub, URL: "https://github.com/ada/weather"}}, p.Links, "links without url are skipped")

	want := []domain.Block{
		domain.Heading{Level: 1, Text: "Overview"},
		domain.Text{Text: "Built with [Go](https://go.dev) and care. Second line.", FontSize: domain.FontMedium},
		domain.Text{Text: "Highlights", Bold: true, FontSize: domain.FontMedium},
		domain.List{Items: []domain.ListItem{
			{Text: "Fast", Level: 0},
			{Text: "Cached", Level: 1},
			{Text: "In memory", Level: 2},
			{Text: "Small", Level: 0},
		}},
		domain.List{Ordered: true, Items: []domain.ListItem{{Text: "one"}, {Text: "two"}}},
		domain.Code{Language: "go", Text: "func main() {}"},
		domain.Image{Src: "img/shot.png", Alt: "Screenshot"},
		domain.Video{Platform: domain.PlatformYouTube, Src: "https://youtu.be/dQw4w9WgXcQ"},
		domain.Text{Text: "Quote here", Italic: true, FontSize: domain.FontMedium},
	}
	assert.Equal(t, want, blocksOf(p))

	for i, s := range p.Sections {
		assert.Equal(t, i, s.Order)
		assert.NotEmpty(t, s.ID)
		assert.NoError(t, s.Block.Validate())
	}

	assert.Equal(t, "Built with [Go](https://go.dev) and care. Second line.", p.Description, "description falls back to the first paragraph")
}

func TestParse_Fallbacks(t *testing.T) {
	p, err := New().Parse("my_cool-project.md", []byte("Just text.\n"))
	require.NoError(t, err)

	assert.Equal(t, "my-cool-project", p.ID)
	assert.Equal(t, "My Cool Project", p.Title)
	assert.Equal(t, []domain.Block{domain.Text{Text: "Just text.", FontSize: domain.FontMedium}}, blocksOf(p))
}

func TestParse_IndentedCodeGetsDefaultLanguage(t *testing.T) {
	p, err := New().Parse("x.md", []byte("    plain code\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Block{domain.Code{Language: "plaintext", Text: "plain code"}}, blocksOf(p))
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hello World":    "hello-world",
		"  --Trim--  ":   "trim",
		"v2.0_release!!": "v2-0-release",
		"already-a-slug": "already-a-slug",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.md", "sub/b.md", "sub/deep/c.md", "sub/notes.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# x"), 0644))
	}

	files, err := Glob(filepath.Join(dir, "**", "*.md"), filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "sub", "b.md"),
		filepath.Join(dir, "sub", "deep", "c.md"),
	}, files)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio-site.md")
	require.NoError(t, os.WriteFile(path, []byte("## Goals\n"), 0644))

	p, err := New().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "portfolio-site", p.ID)
	assert.Equal(t, []domain.Block{domain.Heading{Level: 2, Text: "Goals"}}, blocksOf(p))

	_, err = New().ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}
