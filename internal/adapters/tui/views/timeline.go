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

// TimelineKeyMap defines key bindings for the timeline view
type TimelineKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Filter key.Binding
	Back   key.Binding
}

var TimelineKeys = TimelineKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new event"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter by tag"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// Event form fields
const (
	eventFieldDate = iota
	eventFieldTitle
	eventFieldCategory
	eventFieldIcon
	eventFieldDescription
	eventFieldProject
	eventFieldMediaType
	eventFieldMediaURL
)

type timelineLoadedMsg struct {
	entries []commands.TimelineEntry
	tags    []domain.CategoryTag
}

// TimelineModel lists and edits the journey timeline
type TimelineModel struct {
	ViewState
	repo    ports.PortfolioRepository
	entries []commands.TimelineEntry
	tags    []domain.CategoryTag
	filter  string
	pager   *Paginator

	form      *InputForm
	editIndex int
}

// NewTimelineModel creates a new timeline view
func NewTimelineModel(repo ports.PortfolioRepository) *TimelineModel {
	return &TimelineModel{repo: repo, pager: NewPaginator(10)}
}

// Init initializes the timeline view
func (m *TimelineModel) Init() tea.Cmd {
	return m.Load()
}

// Load reloads the events for the current filter
func (m *TimelineModel) Load() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := commands.NewTimelineCommand(m.repo, filter).Execute(ctx)
		if err != nil {
			return errMsg{err}
		}
		doc, err := m.repo.Load(ctx)
		if err != nil {
			return errMsg{err}
		}
		return timelineLoadedMsg{entries: entries, tags: doc.Tags}
	}
}

// Update handles messages for the timeline view
func (m *TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineLoadedMsg:
		m.entries = msg.entries
		m.tags = msg.tags
		m.pager.SetTotal(len(m.entries))
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Load()

	case eventSavedMsg:
		m.form = nil
		m.SetMessage(msg.message, false)
		return m, m.Load()

	case ComposedMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
		} else if m.form != nil && msg.Target == "event.description" {
			m.form.SetValue(eventFieldDescription, msg.Text)
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m, m.updateForm(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, TimelineKeys.Back):
			return m, switchTo(SwitchToBrowserMsg{})
		case key.Matches(msg, TimelineKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, TimelineKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, TimelineKeys.New):
			return m, m.openForm(-1, domain.TimelineEvent{
				Category: domain.DefaultEventCategory,
				Icon:     domain.DefaultEventIcon,
			})
		case key.Matches(msg, TimelineKeys.Edit):
			if e, ok := m.selected(); ok {
				return m, m.openForm(e.Index, e.Event)
			}
		case key.Matches(msg, TimelineKeys.Delete):
			if e, ok := m.selected(); ok {
				return m, m.deleteEvent(e)
			}
		case key.Matches(msg, TimelineKeys.Filter):
			m.filter = m.nextFilter()
			m.pager.Reset()
			return m, m.Load()
		}
		return m, nil
	}

	if m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TimelineModel) selected() (commands.TimelineEntry, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.entries) {
		return commands.TimelineEntry{}, false
	}
	return m.entries[i], true
}

// nextFilter cycles: all events, then each tag in order
func (m *TimelineModel) nextFilter() string {
	if m.filter == "" {
		if len(m.tags) > 0 {
			return m.tags[0].Key
		}
		return ""
	}
	for i, t := range m.tags {
		if t.Key == m.filter && i+1 < len(m.tags) {
			return m.tags[i+1].Key
		}
	}
	return ""
}

func (m *TimelineModel) openForm(index int, e domain.TimelineEvent) tea.Cmd {
	keys := make([]string, len(m.tags))
	for i, t := range m.tags {
		keys[i] = t.Key
	}
	if len(keys) == 0 {
		keys = []string{domain.DefaultEventCategory}
	}

	m.editIndex = index
	m.form = NewInputForm(
		NewInputField("Date", "2018 - 2022", 60),
		NewInputField("Title", "Started university", 150),
		NewChoiceField("Category", keys...),
		NewInputField("Icon", domain.DefaultEventIcon, 20),
		NewAreaField("Description", "Supports [label](https://example.com) links", 4),
		NewInputField("Project ID (optional)", "task-manager", 60),
		NewChoiceField("Media", "none", "image", "youtube"),
		NewInputField("Media URL", "Image/photo.jpg or a YouTube link", 300),
	)
	m.form.SetValue(eventFieldDate, e.Date)
	m.form.SetValue(eventFieldTitle, e.Title)
	m.form.SetValue(eventFieldCategory, e.Category)
	m.form.SetValue(eventFieldIcon, e.Icon)
	m.form.SetValue(eventFieldDescription, e.Description)
	m.form.SetValue(eventFieldProject, e.ProjectID)
	if e.Media != nil {
		m.form.SetValue(eventFieldMediaType, e.Media.Type)
		m.form.SetValue(eventFieldMediaURL, e.Media.URL)
	}
	m.form.SetWidth(m.Width - 10)
	return m.form.Init()
}

func (m *TimelineModel) formEvent() domain.TimelineEvent {
	e := domain.TimelineEvent{
		Date:        m.form.Value(eventFieldDate),
		Title:       m.form.Value(eventFieldTitle),
		Category:    m.form.Value(eventFieldCategory),
		Icon:        m.form.Value(eventFieldIcon),
		Description: m.form.Value(eventFieldDescription),
		ProjectID:   m.form.Value(eventFieldProject),
	}
	if e.Icon == "" {
		e.Icon = domain.DefaultEventIcon
	}
	if t := m.form.Value(eventFieldMediaType); t != "none" {
		e.Media = &domain.Media{Type: t, URL: m.form.Value(eventFieldMediaURL)}
	}
	return e
}

func (m *TimelineModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		m.form = nil
		return nil
	case FormCompose:
		return switchTo(ComposeMsg{Initial: m.form.RawValue(eventFieldDescription), Ext: ".md", Target: "event.description"})
	case FormSubmit:
		index, e := m.editIndex, m.formEvent()
		return func() tea.Msg {
			res, err := commands.NewSaveEventCommand(m.repo, index, e).Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return eventSavedMsg{res.Message}
		}
	}
	return cmd
}

type eventSavedMsg struct {
	message string
}

func (m *TimelineModel) deleteEvent(e commands.TimelineEntry) tea.Cmd {
	detail := fmt.Sprintf("%s  %s", e.Event.Date, e.Event.Title)
	return confirmable(SwitchToTimelineMsg{}, detail, func(confirmed bool) (string, error) {
		return commands.NewDeleteEventCommand(m.repo, e.Index, confirmed).Execute(context.Background())
	})
}

// View renders the timeline
func (m *TimelineModel) View() string {
	if m.form != nil {
		title := "Edit Event"
		if m.editIndex < 0 {
			title = "New Event"
		}
		return NewViewBuilder().Title(title).
			Line(m.form.RenderFields()).
			Message(m.Message, m.MessageErr).
			Raw("\n" + m.form.RenderHelp("save event")).
			String()
	}

	subtitle := "all events"
	if m.filter != "" {
		subtitle = "filtered: " + m.filter
	}
	v := NewViewBuilder().Title("Timeline", subtitle)
	if len(m.entries) == 0 {
		v.Muted("No events. Press n to add one.")
	}
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderEntry(m.entries[i], i == m.pager.Cursor()))
	}
	if m.pager.TotalPages() > 1 {
		v.Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(TimelineKeys.New, TimelineKeys.Edit, TimelineKeys.Delete, TimelineKeys.Filter, TimelineKeys.Back)
	return v.String()
}

func (m *TimelineModel) renderEntry(e commands.TimelineEntry, selected bool) string {
	row := fmt.Sprintf("%s %-14s %s", e.Event.Icon, e.Event.Date, e.Event.Title)
	if e.Link != nil {
		row += "  → " + e.Link.Title
	}
	badge := styles.MutedText.Render("[" + e.Event.Category + "]")
	if e.Tag != nil {
		badge = styles.Badge(e.Tag.Label, e.Tag.Color)
	}
	return RenderRow(row, selected, m.Width-20) + " " + badge
}

// SetSize updates the view dimensions
func (m *TimelineModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(max(height-10, 3))
	if m.form != nil {
		m.form.SetWidth(width - 10)
	}
}
