package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
)

func buildSample(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	b, err := NewBuilder(dir, "Portfolio", nil)
	require.NoError(t, err)
	b.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	pages, err := b.Build(domain.SamplePortfolio())
	require.NoError(t, err)
	return dir, pages
}

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestBuild_WritesEveryPage(t *testing.T) {
	_, pages := buildSample(t)

	assert.Equal(t, []string{
		StyleSheet, IndexPage, TimelinePage, ProjectsPage,
		"project-web-portfolio.html", "project-task-manager.html", "project-fitness-tracker.html",
	}, pages)
}

func TestBuild_IndexPage(t *testing.T) {
	dir, _ := buildSample(t)
	page := readPage(t, dir, IndexPage)

	assert.Contains(t, page, "<title>Your Name - Software Developer</title>")
	assert.Contains(t, page, `<a href="project-task-manager.html" class="project-card"`)
	assert.Contains(t, page, "&copy; 2026 Your Name")
	assert.Contains(t, page, `<a href="index.html" class="active">Home</a>`)
	assert.Contains(t, page, "<p>Hello! I'm a developer", "bio is rendered as Markdown")
}

func TestBuild_TimelinePage(t *testing.T) {
	dir, _ := buildSample(t)
	page := readPage(t, dir, TimelinePage)

	assert.Equal(t, 5, strings.Count(page, `class="timeline-item"`))
	assert.Equal(t, 2, strings.Count(page, "View Project →"), "only events with a known project get a link")
	assert.Contains(t, page, `href="project-web-portfolio.html" class="project-link"`)
	assert.Contains(t, page, `<span class="timeline-badge education"`)
	assert.Contains(t, page, `<img src="Image/logo.png" alt="" loading="lazy" />`)
}

func TestBuild_ProjectsPage(t *testing.T) {
	dir, _ := buildSample(t)
	page := readPage(t, dir, ProjectsPage)

	assert.Contains(t, page, `<section class="project-category" data-category="web">`)
	assert.Contains(t, page, `<span class="tech-badge">React Native</span>`)
	assert.Contains(t, page, "<span>View on GitHub</span>")
	assert.Equal(t, 3, strings.Count(page, "View Full Details"))
}

func TestBuild_ProjectPage(t *testing.T) {
	dir, _ := buildSample(t)

	withSections := readPage(t, dir, "project-web-portfolio.html")
	assert.Contains(t, withSections, `<div id="project-description" class="rich-content"><h2>Overview</h2>`)
	assert.Contains(t, withSections, `<ul><li>Pages<ul><li>Index</li><li>Journey</li></ul></li><li>Dashboard</li></ul>`)
	assert.Contains(t, withSections, "<span>View Code</span>")
	assert.NotContains(t, withSections, `id="prev-project"`)
	assert.Contains(t, withSections, `<a id="next-project" href="project-task-manager.html"`)

	fallback := readPage(t, dir, "project-task-manager.html")
	assert.Contains(t, fallback, `<div id="project-description"><p>A task manager with workspaces`)
	assert.Contains(t, fallback, `id="prev-project"`)
	assert.Contains(t, fallback, `id="next-project"`)
}

func TestBuild_RemovesStalePages(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(dir, "Portfolio", nil)
	require.NoError(t, err)

	p := domain.SamplePortfolio()
	_, err = b.Build(p)
	require.NoError(t, err)

	_, err = p.RemoveProject("task-manager")
	require.NoError(t, err)
	_, err = b.Build(p)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "project-task-manager.html"))
	assert.FileExists(t, filepath.Join(dir, "project-web-portfolio.html"))
}

func TestBuild_EscapesContent(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(dir, "Portfolio", nil)
	require.NoError(t, err)

	p := domain.NewPortfolio()
	p.Personal.Name = `<script>alert(1)</script>`
	p.Personal.Bio = "<script>alert(2)</script>"
	_, err = b.Build(p)
	require.NoError(t, err)

	page := readPage(t, dir, IndexPage)
	assert.NotContains(t, page, "<script>")
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "portfolio.json")
	require.NoError(t, os.WriteFile(doc, []byte("{}"), 0644))

	b, err := NewBuilder(filepath.Join(dir, "public"), "Portfolio", nil)
	require.NoError(t, err)

	var mu sync.Mutex
	loads := 0
	w := NewWatcher(b, doc, func(context.Context) (*domain.Portfolio, error) {
		mu.Lock()
		defer mu.Unlock()
		loads++
		return domain.SamplePortfolio(), nil
	})
	w.debounce = 10 * time.Millisecond

	builds := make(chan error, 10)
	w.OnBuild(func(_ []string, err error) { builds <- err })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, <-builds, "initial build")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(doc, []byte(`{"changed": true}`), 0644))

	select {
	case err := <-builds:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rebuild after the document changed")
	}

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, loads, 2)
}
