package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, switchTo(SwitchToBrowserMsg{})
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Folio Help"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Portfolio content dashboard"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Browser"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l", "Collapse / expand category"))
	b.WriteString(helpLine("enter", "Edit project / toggle category"))
	b.WriteString(helpLine("n", "New project in the selected category"))
	b.WriteString(helpLine("d", "Delete project or category"))
	b.WriteString(helpLine("/", "Search projects"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Content"))
	b.WriteString("\n")
	b.WriteString(helpLine("t", "Timeline events"))
	b.WriteString(helpLine("c", "Project categories"))
	b.WriteString(helpLine("g", "Timeline tags"))
	b.WriteString(helpLine("p", "Personal information"))
	b.WriteString(helpLine("x", "Import, export, sample data, clear"))
	b.WriteString(helpLine("b / o", "Build the site / build and open it"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Project form"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab / shift+tab", "Next / previous field"))
	b.WriteString(helpLine("ctrl+o", "Edit sections with live preview"))
	b.WriteString(helpLine("ctrl+t / ctrl+l", "Tech stack / links"))
	b.WriteString(helpLine("ctrl+e", "Write a long field in $EDITOR"))
	b.WriteString(helpLine("ctrl+s", "Save"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Sections"))
	b.WriteString("\n")
	b.WriteString(helpLine("a / e / d", "Add / edit / delete section"))
	b.WriteString(helpLine("K / J", "Move section up / down"))
	b.WriteString(helpLine("enter / tab", "List items: sibling / nested item"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / ctrl+c", "Quit"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Changes are saved automatically."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
