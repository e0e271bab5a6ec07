package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"folio/internal/adapters/markup"
	"folio/internal/adapters/tui/styles"
	"folio/internal/application/draft"
	"folio/internal/domain"
)

// SectionsKeyMap defines key bindings for the section editor
type SectionsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Scroll   key.Binding
	Back     key.Binding
}

var SectionsKeys = SectionsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add section"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "move down"),
	),
	Scroll: key.NewBinding(
		key.WithKeys("pgup", "pgdown"),
		key.WithHelp("pgup/pgdn", "scroll preview"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to project"),
	),
}

// BackToSectionsMsg returns to the section editor after a prompt
type BackToSectionsMsg struct{}

type removeSectionMsg struct {
	index int
}

// SectionsModel edits the ordered sections of a project draft with a live
// preview of the rendered page content
type SectionsModel struct {
	ViewState
	draft   *draft.Draft
	cursor  int
	picking bool
	pick    int
	form    *BlockFormModel
	preview viewport.Model
	html    string
}

// NewSectionsModel creates an empty section editor
func NewSectionsModel() *SectionsModel {
	return &SectionsModel{preview: viewport.New(40, 10)}
}

// SetDraft attaches the editor to d and renders the first preview
func (m *SectionsModel) SetDraft(d *draft.Draft) {
	m.draft = d
	m.cursor = 0
	m.picking = false
	m.form = nil
	m.ClearMessage()
	if d == nil {
		return
	}
	d.Sections.OnChange(func(c draft.Change) {
		m.refresh(c.Sections)
	})
	m.refresh(d.Sections.Sections())
}

func (m *SectionsModel) refresh(sections []domain.Section) {
	out, err := markup.Preview(sections)
	if err != nil {
		m.SetError(err)
		return
	}
	m.html = out
	m.layoutPreview()
	if m.cursor >= len(sections) {
		m.cursor = max(0, len(sections)-1)
	}
}

func (m *SectionsModel) layoutPreview() {
	m.preview.SetContent(wordwrap.String(strings.ReplaceAll(m.html, "><", ">\n<"), max(m.preview.Width-2, 10)))
}

// PreviewHTML returns the markup shown in the preview pane
func (m *SectionsModel) PreviewHTML() string {
	return m.html
}

// Init initializes the section editor
func (m *SectionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the section editor
func (m *SectionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.draft == nil {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, SectionsKeys.Back) {
			return m, switchTo(BackToProjectMsg{})
		}
		return m, nil
	}
	editor := m.draft.Sections

	switch msg := msg.(type) {
	case removeSectionMsg:
		if err := editor.Remove(msg.index, true); err != nil {
			m.SetError(err)
		} else {
			m.SetMessage("Section deleted", false)
		}
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case ComposedMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
		} else if m.form != nil && msg.Target == "section" {
			m.form.SetComposed(msg.Text)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.form != nil:
			return m, m.updateForm(msg)
		case m.picking:
			return m, m.updatePicker(msg)
		}
		m.ClearMessage()
		n := editor.Len()

		switch {
		case key.Matches(msg, SectionsKeys.Back):
			return m, switchTo(BackToProjectMsg{})
		case key.Matches(msg, SectionsKeys.MoveUp):
			if editor.MoveUp(m.cursor) {
				m.cursor--
			}
		case key.Matches(msg, SectionsKeys.MoveDown):
			if editor.MoveDown(m.cursor) {
				m.cursor++
			}
		case key.Matches(msg, SectionsKeys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, SectionsKeys.Down):
			m.cursor = max(0, min(n-1, m.cursor+1))
		case key.Matches(msg, SectionsKeys.Add):
			m.picking = true
			m.pick = 0
		case key.Matches(msg, SectionsKeys.Edit) && n > 0:
			b, err := editor.BeginEdit(m.cursor)
			if err != nil {
				m.SetError(err)
				return m, nil
			}
			return m, m.openForm(b.Kind(), b)
		case key.Matches(msg, SectionsKeys.Delete) && n > 0:
			return m, m.confirmRemove(m.cursor)
		default:
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SectionsModel) updatePicker(msg tea.KeyMsg) tea.Cmd {
	switch s := msg.String(); {
	case s == "esc":
		m.picking = false
	case s == "up" || s == "k":
		m.pick = max(0, m.pick-1)
	case s == "down" || s == "j":
		m.pick = min(len(domain.BlockKinds)-1, m.pick+1)
	case s == "enter":
		m.picking = false
		kind := domain.BlockKinds[m.pick]
		m.draft.Sections.ShowForm(kind)
		return m.openForm(kind, nil)
	case len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(domain.BlockKinds):
		m.pick = int(s[0] - '1')
	}
	return nil
}

func (m *SectionsModel) openForm(kind domain.BlockKind, initial domain.Block) tea.Cmd {
	m.form = NewBlockForm(kind, initial)
	m.form.SetWidth(m.formWidth() - 4)
	return nil
}

func (m *SectionsModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.form.Update(msg)
	switch action {
	case FormCancel:
		m.draft.Sections.Cancel()
		m.form = nil
	case FormCompose:
		return switchTo(m.form.ComposeRequest())
	case FormSubmit:
		editing := m.draft.Sections.State().Mode == draft.ModeComposingEdit
		if _, err := m.draft.Sections.Submit(m.form.Block()); err != nil {
			m.SetError(err)
			return nil
		}
		m.form = nil
		if editing {
			m.SetMessage("Section updated", false)
		} else {
			m.cursor = m.draft.Sections.Len() - 1
			m.SetMessage("Section added", false)
		}
	}
	return cmd
}

// confirmRemove asks before deleting; the removal itself happens in Update
// when the confirmation comes back as removeSectionMsg
func (m *SectionsModel) confirmRemove(index int) tea.Cmd {
	err := m.draft.Sections.Remove(index, false)
	prompt, ok := confirmationPrompt(err)
	if !ok {
		if err != nil {
			m.SetError(err)
		}
		return nil
	}
	detail := markup.Summary(m.draft.Sections.Sections()[index].Block)
	return switchTo(ConfirmMsg{
		Prompt:    prompt,
		Detail:    detail,
		Back:      BackToSectionsMsg{},
		OnConfirm: func() tea.Msg { return removeSectionMsg{index} },
	})
}

func (m *SectionsModel) formWidth() int {
	return max(m.Width/2, 30)
}

// View renders the section list (or form) beside the preview
func (m *SectionsModel) View() string {
	if m.draft == nil {
		return NewViewBuilder().Title("Sections").Line("No project open").Help(SectionsKeys.Back).String()
	}

	var left string
	switch {
	case m.form != nil:
		left = m.form.View()
	case m.picking:
		left = m.renderPicker()
	default:
		left = m.renderList()
	}

	leftPane := styles.PaneFocused.Width(m.formWidth()).Render(left)
	rightPane := styles.Pane.Width(max(m.Width-m.formWidth()-6, 20)).Render(
		styles.Subtitle.Render("Preview") + "\n" + m.preview.View())

	title := m.draft.Title
	if title == "" {
		title = "untitled project"
	}
	v := NewViewBuilder().Title("Sections", title)
	v.Raw(lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane) + "\n")
	v.Message(m.Message, m.MessageErr)
	if m.form == nil && !m.picking {
		v.Help(SectionsKeys.Add, SectionsKeys.Edit, SectionsKeys.Delete, SectionsKeys.MoveUp,
			SectionsKeys.MoveDown, SectionsKeys.Scroll, SectionsKeys.Back)
	}
	return v.String()
}

func (m *SectionsModel) renderList() string {
	sections := m.draft.Sections.Sections()
	if len(sections) == 0 {
		return styles.MutedText.Render("No sections yet. Press a to add one.")
	}
	var b strings.Builder
	for i, s := range sections {
		kind := styles.SectionKind.Render(fmt.Sprintf("%-7s", s.Block.Kind()))
		row := fmt.Sprintf("%2d. %s %s", s.Order+1, kind, markup.Summary(s.Block))
		b.WriteString(RenderRow(row, i == m.cursor, m.formWidth()-2))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *SectionsModel) renderPicker() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Add Section"))
	b.WriteString("\n")
	for i, k := range domain.BlockKinds {
		b.WriteString(RenderRow(fmt.Sprintf("%d. %s", i+1, k), i == m.pick, m.formWidth()-2))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render("choose") + "  " +
		styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel"))
	return b.String()
}

// SetSize updates the view dimensions and the preview pane
func (m *SectionsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.preview.Width = max(width-m.formWidth()-10, 16)
	m.preview.Height = max(height-10, 5)
	if m.form != nil {
		m.form.SetWidth(m.formWidth() - 4)
	}
	m.layoutPreview()
}
