package views

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/codec"
	"folio/internal/adapters/tui/styles"
	"folio/internal/application/commands"
	"folio/internal/ports"
)

// transferAction is one entry of the import/export menu
type transferAction int

const (
	actionImportClipboard transferAction = iota
	actionImportPaste
	actionImportEditor
	actionExportClipboard
	actionExportFile
	actionLoadSample
	actionClear
)

var transferActions = []struct {
	action transferAction
	label  string
}{
	{actionImportClipboard, "Import from clipboard"},
	{actionImportPaste, "Import by pasting"},
	{actionImportEditor, "Import via $EDITOR"},
	{actionExportClipboard, "Export to clipboard"},
	{actionExportFile, "Export to file"},
	{actionLoadSample, "Load sample data"},
	{actionClear, "Clear all data"},
}

// TransferKeyMap defines key bindings for the import/export view
type TransferKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Run    key.Binding
	Format key.Binding
	Back   key.Binding
}

var TransferKeys = TransferKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Run: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Format: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle format"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

type transferStage int

const (
	stageMenu transferStage = iota
	stagePaste
	stagePath
)

// clipboardAccess reads and writes the system clipboard
type clipboardAccess struct {
	read  func() (string, error)
	write func(string) error
}

// TransferModel imports and exports the whole document
type TransferModel struct {
	ViewState
	repo   ports.PortfolioRepository
	cursor int
	format codec.Format
	stage  transferStage
	paste  textarea.Model
	path   textinput.Model
	clip   clipboardAccess
}

// NewTransferModel creates a new import/export view
func NewTransferModel(repo ports.PortfolioRepository) *TransferModel {
	paste := textarea.New()
	paste.Placeholder = "Paste the contents of data.js here"
	paste.ShowLineNumbers = false
	paste.CharLimit = 0
	paste.SetHeight(12)

	path := textinput.New()
	path.CharLimit = 300

	return &TransferModel{
		repo:   repo,
		format: codec.FormatDataJS,
		paste:  paste,
		path:   path,
		clip:   clipboardAccess{read: clipboard.ReadAll, write: clipboard.WriteAll},
	}
}

// Init initializes the transfer view
func (m *TransferModel) Init() tea.Cmd {
	m.stage = stageMenu
	return nil
}

// Update handles messages for the transfer view
func (m *TransferModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.stage = stageMenu
		m.SetMessage(msg.message, false)
		return m, nil

	case ComposedMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
			return m, nil
		}
		if msg.Target == "transfer.import" {
			return m, m.importText(msg.Text)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.stage {
		case stagePaste:
			return m, m.updatePaste(msg)
		case stagePath:
			return m, m.updatePath(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, TransferKeys.Back):
			return m, switchTo(SwitchToBrowserMsg{})
		case key.Matches(msg, TransferKeys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, TransferKeys.Down):
			m.cursor = min(len(transferActions)-1, m.cursor+1)
		case key.Matches(msg, TransferKeys.Format):
			m.format = nextFormat(m.format)
		case key.Matches(msg, TransferKeys.Run):
			return m, m.run(transferActions[m.cursor].action)
		}
		return m, nil
	}

	switch m.stage {
	case stagePaste:
		var cmd tea.Cmd
		m.paste, cmd = m.paste.Update(msg)
		return m, cmd
	case stagePath:
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}
	return m, nil
}

func nextFormat(f codec.Format) codec.Format {
	for i, candidate := range codec.Formats {
		if candidate == f {
			return codec.Formats[(i+1)%len(codec.Formats)]
		}
	}
	return codec.FormatDataJS
}

func (m *TransferModel) run(a transferAction) tea.Cmd {
	ctx := context.Background()
	switch a {
	case actionImportClipboard:
		text, err := m.clip.read()
		if err != nil {
			return fail(fmt.Errorf("failed to read clipboard: %w", err))
		}
		return m.importText(text)

	case actionImportPaste:
		m.stage = stagePaste
		m.paste.Reset()
		return m.paste.Focus()

	case actionImportEditor:
		return switchTo(ComposeMsg{Initial: "", Ext: "." + string(m.format), Target: "transfer.import"})

	case actionExportClipboard:
		return func() tea.Msg {
			data, err := commands.NewExportCommand(m.repo, codec.New(m.format)).Execute(ctx)
			if err != nil {
				return errMsg{err}
			}
			if err := m.clip.write(string(data)); err != nil {
				return errMsg{fmt.Errorf("failed to write clipboard: %w", err)}
			}
			return successMsg{fmt.Sprintf("Copied %s export to clipboard (%d bytes)", m.format, len(data))}
		}

	case actionExportFile:
		m.stage = stagePath
		m.path.SetValue(defaultExportName(m.format))
		m.path.CursorEnd()
		return m.path.Focus()

	case actionLoadSample:
		return confirmable(SwitchToTransferMsg{}, "sample portfolio", func(confirmed bool) (string, error) {
			return commands.NewInitCommand(m.repo, confirmed).Execute(ctx)
		})

	case actionClear:
		return confirmable(SwitchToTransferMsg{}, "every category, project, event and tag", func(confirmed bool) (string, error) {
			return commands.NewClearCommand(m.repo, confirmed).Execute(ctx)
		})
	}
	return nil
}

func defaultExportName(f codec.Format) string {
	switch f {
	case codec.FormatJSON:
		return "data.json"
	case codec.FormatYAML:
		return "data.yaml"
	default:
		return "data.js"
	}
}

// importText decodes with the selected format. data.js and JSON are read
// by the same parser.
func (m *TransferModel) importText(text string) tea.Cmd {
	decoder := codec.New(m.format)
	return func() tea.Msg {
		res, err := commands.NewImportCommand(m.repo, decoder, text).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

func (m *TransferModel) updatePaste(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stage = stageMenu
		m.paste.Blur()
		return nil
	case "ctrl+s":
		m.paste.Blur()
		return m.importText(m.paste.Value())
	}
	var cmd tea.Cmd
	m.paste, cmd = m.paste.Update(msg)
	return cmd
}

func (m *TransferModel) updatePath(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stage = stageMenu
		m.path.Blur()
		return nil
	case "enter":
		path, format := m.path.Value(), m.format
		m.path.Blur()
		return func() tea.Msg {
			data, err := commands.NewExportCommand(m.repo, codec.New(format)).Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errMsg{fmt.Errorf("failed to write %s: %w", path, err)}
			}
			return successMsg{fmt.Sprintf("Exported to %s", path)}
		}
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return cmd
}

// View renders the menu or the active input
func (m *TransferModel) View() string {
	v := NewViewBuilder().Title("Import / Export", "format: "+string(m.format))

	switch m.stage {
	case stagePaste:
		v.Line(styles.InputFocused.Render(m.paste.View()))
		v.Message(m.Message, m.MessageErr)
		v.Raw("\n" + styles.HelpKey.Render("ctrl+s") + " " + styles.HelpDesc.Render("import") + "  " +
			styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel"))
		return v.String()
	case stagePath:
		v.Line(styles.InputLabel.Render("Export path"))
		v.Line(styles.InputFocused.Render(m.path.View()))
		v.Message(m.Message, m.MessageErr)
		v.Raw("\n" + styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render("write file") + "  " +
			styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel"))
		return v.String()
	}

	for i, a := range transferActions {
		label := a.label
		if a.action == actionClear {
			label = styles.WarningText.Render(label)
		}
		v.Line(RenderRow(label, i == m.cursor, m.Width))
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(TransferKeys.Run, TransferKeys.Format, TransferKeys.Back)
	return v.String()
}

// SetSize updates the view dimensions
func (m *TransferModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paste.SetWidth(max(width-10, 20))
	m.paste.SetHeight(max(height-14, 5))
	m.path.Width = max(width-10, 20)
}
