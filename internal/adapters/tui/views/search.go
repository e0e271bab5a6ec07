package views

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application/commands"
	"folio/internal/ports"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	CopyLink key.Binding
	Cancel   key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit project"),
	),
	CopyLink: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy page link"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const maxSearchResults = 10

// SearchModel finds projects by fuzzy matching id, title, subtitle and
// tech stack
type SearchModel struct {
	ViewState
	repo    ports.PortfolioRepository
	input   textinput.Model
	results []commands.SearchResult
	cursor  int
	copy    func(string) error
}

// NewSearchModel creates a new search view model
func NewSearchModel(repo ports.PortfolioRepository) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search projects..."
	input.Focus()

	return &SearchModel{
		repo:  repo,
		input: input,
		copy:  clipboard.WriteAll,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.ClearMessage()
	m.input.Focus()
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultsMsg:
		// drop answers to queries the user has already typed past
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, switchTo(SwitchToBrowserMsg{})

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxSearchResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if r, ok := m.selected(); ok {
				return m, switchTo(SwitchToProjectMsg{ProjectID: r.ProjectID, CategoryKey: r.CategoryKey})
			}
			return m, nil

		case key.Matches(msg, SearchKeys.CopyLink):
			if r, ok := m.selected(); ok {
				link := "project.html?id=" + r.ProjectID
				if err := m.copy(link); err != nil {
					m.SetError(fmt.Errorf("failed to write clipboard: %w", err))
				} else {
					m.SetMessage("Copied "+link, false)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := m.input.Value()
	if len(query) >= 2 {
		return m, tea.Batch(cmd, m.search(query))
	}
	m.results = nil
	return m, cmd
}

func (m *SearchModel) selected() (commands.SearchResult, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return commands.SearchResult{}, false
	}
	return m.results[m.cursor], true
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(m.repo, query).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return searchResultsMsg{query: query, results: results}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().Title("Search")
	v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()

	switch {
	case len(m.results) > 0:
		v.Line(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results)))).BlankLine()
		for i, r := range m.results[:min(len(m.results), maxSearchResults)] {
			row := fmt.Sprintf("%-20s %s %s", r.ProjectID, r.Title, styles.MutedText.Render("["+r.CategoryKey+"]"))
			if r.MatchedText != "" && r.MatchedText != r.Title && r.MatchedText != r.ProjectID {
				row += "  " + styles.SearchMatch.Render(r.MatchedText)
			}
			v.Line(RenderRow(row, i == m.cursor, m.Width))
		}
		if len(m.results) > maxSearchResults {
			v.Muted(fmt.Sprintf("... and %d more", len(m.results)-maxSearchResults))
		}
	case len(m.input.Value()) >= 2:
		v.Muted("No results found")
	default:
		v.Muted("Type at least 2 characters to search")
	}

	v.Message(m.Message, m.MessageErr)
	v.Help(SearchKeys.Select, SearchKeys.CopyLink, SearchKeys.Cancel)
	return v.String()
}
