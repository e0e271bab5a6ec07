package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application/commands"
	"folio/internal/domain"
	"folio/internal/ports"
)

// Tag form fields
const (
	tagFieldKey = iota
	tagFieldLabel
	tagFieldColor
)

type tagsLoadedMsg struct {
	tags []domain.CategoryTag
}

// TagsModel edits the timeline category tags
type TagsModel struct {
	ViewState
	repo   ports.PortfolioRepository
	tags   []domain.CategoryTag
	cursor int

	form    *InputForm
	editKey string
}

// NewTagsModel creates a new tags view
func NewTagsModel(repo ports.PortfolioRepository) *TagsModel {
	return &TagsModel{repo: repo}
}

// Init initializes the tags view
func (m *TagsModel) Init() tea.Cmd {
	return m.Load()
}

// Load reloads the tags
func (m *TagsModel) Load() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.repo.Load(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return tagsLoadedMsg{doc.Tags}
	}
}

// Update handles messages for the tags view
func (m *TagsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tagsLoadedMsg:
		m.tags = msg.tags
		m.cursor = max(0, min(m.cursor, len(m.tags)-1))
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Load()

	case recordSavedMsg:
		m.form = nil
		m.SetMessage(msg.message, false)
		return m, m.Load()

	case tea.KeyMsg:
		if m.form != nil {
			return m, m.updateForm(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, RecordKeys.Back):
			return m, switchTo(SwitchToBrowserMsg{})
		case key.Matches(msg, RecordKeys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, RecordKeys.Down):
			m.cursor = max(0, min(len(m.tags)-1, m.cursor+1))
		case key.Matches(msg, RecordKeys.New):
			return m, m.openForm(domain.CategoryTag{Color: domain.DefaultTagColor}, false)
		case key.Matches(msg, RecordKeys.Edit):
			if m.cursor < len(m.tags) {
				return m, m.openForm(m.tags[m.cursor], true)
			}
		case key.Matches(msg, RecordKeys.Delete):
			if m.cursor < len(m.tags) {
				t := m.tags[m.cursor]
				return m, confirmable(SwitchToTagsMsg{}, t.Key+" "+t.Label, func(confirmed bool) (string, error) {
					return commands.NewDeleteTagCommand(m.repo, t.Key, confirmed).Execute(context.Background())
				})
			}
		}
		return m, nil
	}

	if m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TagsModel) openForm(t domain.CategoryTag, editing bool) tea.Cmd {
	m.editKey = ""
	if editing {
		m.editKey = t.Key
	}
	m.form = NewInputForm(
		NewInputField("Key", "career", 40),
		NewInputField("Label", "Career", 60),
		NewInputField("Color", domain.DefaultTagColor, 7),
	)
	m.form.SetValue(tagFieldKey, t.Key)
	m.form.SetValue(tagFieldLabel, t.Label)
	m.form.SetValue(tagFieldColor, t.Color)
	if editing {
		return m.form.SetFocus(tagFieldLabel)
	}
	return m.form.Init()
}

func (m *TagsModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		m.form = nil
		return nil
	case FormSubmit:
		create := m.editKey == ""
		t := domain.CategoryTag{
			Key:   m.form.Value(tagFieldKey),
			Label: m.form.Value(tagFieldLabel),
			Color: m.form.Value(tagFieldColor),
		}
		if !create {
			t.Key = m.editKey
		}
		return func() tea.Msg {
			res, err := commands.NewSaveTagCommand(m.repo, t, create).Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return recordSavedMsg{res.Message}
		}
	}
	return cmd
}

// View renders the tag list or form
func (m *TagsModel) View() string {
	if m.form != nil {
		title := "New Tag"
		if m.editKey != "" {
			title = "Edit Tag"
		}
		v := NewViewBuilder().Title(title, m.editKey).Line(m.form.RenderFields())
		if c := m.form.Value(tagFieldColor); c != "" {
			v.BlankLine().Line("Preview: " + styles.Badge(m.form.Value(tagFieldLabel), c))
		}
		return v.Message(m.Message, m.MessageErr).
			Raw("\n" + m.form.RenderHelp("save tag")).
			String()
	}

	v := NewViewBuilder().Title("Timeline Tags")
	if len(m.tags) == 0 {
		v.Muted("No tags. Press n to add one.")
	}
	for i, t := range m.tags {
		row := fmt.Sprintf("%-14s %-9s", t.Key, t.Color)
		v.Line(RenderRow(row, i == m.cursor, 30) + " " + styles.Badge(t.Label, t.Color))
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(RecordKeys.New, RecordKeys.Edit, RecordKeys.Delete, RecordKeys.Back)
	return v.String()
}
