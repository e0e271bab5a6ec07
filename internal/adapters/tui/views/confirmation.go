package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks before a destructive operation (delete, clear,
// replacing the portfolio on import)
type ConfirmationModel struct {
	ViewState
	request ConfirmMsg
	Keys    ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() *ConfirmationModel {
	return &ConfirmationModel{Keys: DefaultConfirmKeys}
}

// SetRequest sets what is being confirmed
func (m *ConfirmationModel) SetRequest(req ConfirmMsg) {
	m.request = req
}

// Init initializes the view
func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// Update handles y/n. Confirming runs the pending action and returns to
// the view that asked; the action's own result message follows.
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	back := m.request.Back
	if back == nil {
		back = SwitchToBrowserMsg{}
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Cancel):
		return m, switchTo(back)
	case key.Matches(keyMsg, m.Keys.Confirm):
		return m, tea.Sequence(switchTo(back), m.request.OnConfirm)
	}
	return m, nil
}

// View renders the prompt
func (m *ConfirmationModel) View() string {
	v := NewViewBuilder().Title("Confirm")
	if m.request.Detail != "" {
		v.Line(m.request.Detail).BlankLine()
	}
	return v.Line(RenderConfirmPrompt(m.request.Prompt)).String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(styles.WarningText.Render(question))
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
