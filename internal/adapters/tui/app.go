// Package tui is the interactive dashboard for editing the portfolio
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/site"
	"folio/internal/adapters/tui/views"
	"folio/internal/domain"
	"folio/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewProject
	ViewSections
	ViewTimeline
	ViewCategories
	ViewTags
	ViewPersonal
	ViewTransfer
	ViewSearch
	ViewHelp
	ViewConfirm
)

// SiteBuilder renders the static pages
type SiteBuilder interface {
	Build(p *domain.Portfolio) ([]string, error)
	OutDir() string
}

// Options are the optional collaborators of the app. A nil field disables
// the feature that needs it.
type Options struct {
	Composer ports.TextComposer
	Opener   ports.PageOpener
	Site     SiteBuilder
}

// App is the main TUI application model
type App struct {
	repo ports.PortfolioRepository
	opts Options

	state      ViewState
	browser    *views.BrowserModel
	project    *views.ProjectModel
	sections   *views.SectionsModel
	timeline   *views.TimelineModel
	categories *views.CategoriesModel
	tags       *views.TagsModel
	personal   *views.PersonalModel
	transfer   *views.TransferModel
	search     *views.SearchModel
	help       *views.HelpModel
	confirm    *views.ConfirmationModel

	width  int
	height int
}

// NewApp creates a new TUI application over repo, normally the in-memory
// workspace
func NewApp(repo ports.PortfolioRepository, opts Options) *App {
	return &App{
		repo:       repo,
		opts:       opts,
		state:      ViewBrowser,
		browser:    views.NewBrowserModel(repo),
		project:    views.NewProjectModel(repo),
		sections:   views.NewSectionsModel(),
		timeline:   views.NewTimelineModel(repo),
		categories: views.NewCategoriesModel(repo),
		tags:       views.NewTagsModel(repo),
		personal:   views.NewPersonalModel(repo),
		transfer:   views.NewTransferModel(repo),
		search:     views.NewSearchModel(repo),
		help:       views.NewHelpModel(),
		confirm:    views.NewConfirmationModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

type siteBuiltMsg struct {
	pages int
	dir   string
	err   error
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.project.SetSize(msg.Width, msg.Height)
		a.sections.SetSize(msg.Width, msg.Height)
		a.timeline.SetSize(msg.Width, msg.Height)
		a.categories.SetSize(msg.Width, msg.Height)
		a.tags.SetSize(msg.Width, msg.Height)
		a.personal.SetSize(msg.Width, msg.Height)
		a.transfer.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	// View switching messages
	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		if msg.Message != "" {
			a.browser.SetMessage(msg.Message, false)
		}
		return a, a.browser.Reload()

	case views.SwitchToProjectMsg:
		a.state = ViewProject
		return a, a.project.Open(msg.ProjectID, msg.CategoryKey)

	case views.SwitchToSectionsMsg:
		a.state = ViewSections
		a.sections.SetDraft(a.project.Draft())
		return a, nil

	case views.BackToSectionsMsg:
		a.state = ViewSections
		return a, nil

	case views.BackToProjectMsg:
		a.state = ViewProject
		return a, nil

	case views.SwitchToTimelineMsg:
		a.state = ViewTimeline
		return a, a.timeline.Init()

	case views.SwitchToCategoriesMsg:
		a.state = ViewCategories
		return a, a.categories.Init()

	case views.SwitchToTagsMsg:
		a.state = ViewTags
		return a, a.tags.Init()

	case views.SwitchToPersonalMsg:
		a.state = ViewPersonal
		return a, a.personal.Init()

	case views.SwitchToTransferMsg:
		a.state = ViewTransfer
		return a, a.transfer.Init()

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.ConfirmMsg:
		a.state = ViewConfirm
		a.confirm.SetRequest(msg)
		return a, nil

	case views.ComposeMsg:
		return a, a.compose(msg)

	case views.BuildSiteMsg:
		return a, a.buildSite(msg.Open)

	case siteBuiltMsg:
		a.state = ViewBrowser
		if msg.err != nil {
			a.browser.SetError(msg.err)
		} else {
			a.browser.SetMessage(fmt.Sprintf("Built %d pages in %s", msg.pages, msg.dir), false)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewProject:
		_, cmd = a.project.Update(msg)
	case ViewSections:
		_, cmd = a.sections.Update(msg)
	case ViewTimeline:
		_, cmd = a.timeline.Update(msg)
	case ViewCategories:
		_, cmd = a.categories.Update(msg)
	case ViewTags:
		_, cmd = a.tags.Update(msg)
	case ViewPersonal:
		_, cmd = a.personal.Update(msg)
	case ViewTransfer:
		_, cmd = a.transfer.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	}

	return a, cmd
}

// compose suspends the program, runs $EDITOR on a scratch file and hands
// the text back to the view that asked
func (a *App) compose(req views.ComposeMsg) tea.Cmd {
	if a.opts.Composer == nil {
		return func() tea.Msg {
			return views.ComposedMsg{Target: req.Target, Err: errors.New("no external editor configured")}
		}
	}

	path, cmd, err := a.opts.Composer.Scratch(req.Initial, req.Ext)
	if err != nil {
		return func() tea.Msg {
			return views.ComposedMsg{Target: req.Target, Err: err}
		}
	}

	return tea.ExecProcess(cmd, func(runErr error) tea.Msg {
		text, err := a.opts.Composer.Collect(path)
		if runErr != nil {
			return views.ComposedMsg{Target: req.Target, Err: fmt.Errorf("editor exited: %w", runErr)}
		}
		return views.ComposedMsg{Target: req.Target, Text: text, Err: err}
	})
}

func (a *App) buildSite(open bool) tea.Cmd {
	if a.opts.Site == nil {
		return func() tea.Msg {
			return siteBuiltMsg{err: errors.New("site generation is not configured")}
		}
	}
	return func() tea.Msg {
		doc, err := a.repo.Load(context.Background())
		if err != nil {
			return siteBuiltMsg{err: err}
		}
		pages, err := a.opts.Site.Build(doc)
		if err != nil {
			return siteBuiltMsg{err: err}
		}
		if open && a.opts.Opener != nil {
			if err := a.opts.Opener.OpenPage(site.IndexPage); err != nil {
				return siteBuiltMsg{err: err}
			}
		}
		return siteBuiltMsg{pages: len(pages), dir: a.opts.Site.OutDir()}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewProject:
		return a.project.View()
	case ViewSections:
		return a.sections.View()
	case ViewTimeline:
		return a.timeline.View()
	case ViewCategories:
		return a.categories.View()
	case ViewTags:
		return a.tags.View()
	case ViewPersonal:
		return a.personal.View()
	case ViewTransfer:
		return a.transfer.View()
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	case ViewConfirm:
		return a.confirm.View()
	default:
		return a.browser.View()
	}
}
