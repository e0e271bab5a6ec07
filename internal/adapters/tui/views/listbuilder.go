package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
	"folio/internal/domain"
)

// ListBuilderKeyMap defines key bindings for authoring list items
type ListBuilderKeyMap struct {
	Sibling key.Binding
	SubItem key.Binding
	Up      key.Binding
	Down    key.Binding
	Remove  key.Binding
}

var ListBuilderKeys = ListBuilderKeyMap{
	Sibling: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next item"),
	),
	SubItem: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "sub-item"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "remove item"),
	),
}

// ListBuilderModel edits the entries of a list block. The text input
// always edits the focused entry.
type ListBuilderModel struct {
	builder *domain.ListBuilder
	focusID string
	input   textinput.Model
	err     error
}

// NewListBuilderModel starts from stored items, or one empty entry
func NewListBuilderModel(items []domain.ListItem) *ListBuilderModel {
	input := textinput.New()
	input.Placeholder = "List item"
	input.CharLimit = 300

	m := &ListBuilderModel{builder: domain.LoadListBuilder(items), input: input}
	if m.builder.Len() == 0 {
		id, _ := m.builder.AddItem("", 0)
		m.focusID = id
	} else {
		m.focusID = m.builder.Entries()[0].ID
	}
	m.focus(m.focusID)
	return m
}

// Focus gives the text input focus
func (m *ListBuilderModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes focus
func (m *ListBuilderModel) Blur() {
	m.input.Blur()
}

// Items stores the text being typed and returns the collected items
func (m *ListBuilderModel) Items() []domain.ListItem {
	m.commit()
	return m.builder.Collect()
}

// Update handles keys while the builder has focus
func (m *ListBuilderModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	m.err = nil

	switch {
	case key.Matches(keyMsg, ListBuilderKeys.Sibling):
		m.commit()
		id, err := m.builder.AddSibling(m.focusID)
		if err != nil {
			m.err = err
			return nil
		}
		m.focus(id)
		return nil

	case key.Matches(keyMsg, ListBuilderKeys.SubItem):
		m.commit()
		id, err := m.builder.AddSubItem(m.focusID)
		if err != nil {
			m.err = err
			return nil
		}
		m.focus(id)
		return nil

	case key.Matches(keyMsg, ListBuilderKeys.Up):
		m.step(-1)
		return nil

	case key.Matches(keyMsg, ListBuilderKeys.Down):
		m.step(1)
		return nil

	case key.Matches(keyMsg, ListBuilderKeys.Remove):
		m.remove()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *ListBuilderModel) commit() {
	_ = m.builder.SetText(m.focusID, m.input.Value())
}

func (m *ListBuilderModel) focus(id string) {
	m.focusID = id
	entry, _ := m.builder.Entry(id)
	m.input.SetValue(entry.Text)
	m.input.CursorEnd()
}

func (m *ListBuilderModel) indexOfFocus(entries []domain.ListEntry) int {
	for i, e := range entries {
		if e.ID == m.focusID {
			return i
		}
	}
	return 0
}

func (m *ListBuilderModel) step(delta int) {
	m.commit()
	entries := m.builder.Entries()
	i := m.indexOfFocus(entries) + delta
	if i < 0 || i >= len(entries) {
		return
	}
	m.focus(entries[i].ID)
}

// remove deletes the focused entry with its sub-items and focuses the entry
// before it, keeping at least one entry to type into
func (m *ListBuilderModel) remove() {
	entries := m.builder.Entries()
	i := m.indexOfFocus(entries)
	m.builder.Remove(m.focusID)

	entries = m.builder.Entries()
	if len(entries) == 0 {
		id, _ := m.builder.AddItem("", 0)
		m.focus(id)
		return
	}
	m.focus(entries[max(0, min(i-1, len(entries)-1))].ID)
}

// View renders the entries with the input in place of the focused one
func (m *ListBuilderModel) View() string {
	var b strings.Builder
	for _, e := range m.builder.Entries() {
		indent := strings.Repeat("    ", e.Level)
		if e.ID == m.focusID {
			b.WriteString(indent + "• " + m.input.View())
		} else if e.Text == "" {
			b.WriteString(indent + "• " + styles.MutedText.Render("(empty)"))
		} else {
			b.WriteString(indent + "• " + e.Text)
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(RenderMessage(m.err.Error(), true))
		b.WriteString("\n")
	}
	b.WriteString(RenderHelpLine(ListBuilderKeys.Sibling, ListBuilderKeys.SubItem, ListBuilderKeys.Remove))
	return b.String()
}
