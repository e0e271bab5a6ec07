package views

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/application"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err as an error message
func (s *ViewState) SetError(err error) {
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type (
	SwitchToBrowserMsg struct {
		// Message is shown in the browser status line
		Message string
	}
	SwitchToProjectMsg struct {
		// ProjectID is empty for a new project
		ProjectID   string
		CategoryKey string
	}
	SwitchToTimelineMsg   struct{}
	SwitchToCategoriesMsg struct{}
	SwitchToTagsMsg       struct{}
	SwitchToPersonalMsg   struct{}
	SwitchToTransferMsg   struct{}
	SwitchToSearchMsg     struct{}
	SwitchToHelpMsg       struct{}
)

// ConfirmMsg asks the app to show a confirmation prompt. OnConfirm runs
// after "y"; "n" returns to Back.
type ConfirmMsg struct {
	Prompt    string
	Detail    string
	OnConfirm tea.Cmd
	Back      tea.Msg
}

// ComposeMsg asks the app to open $EDITOR on Initial. The result comes back
// as ComposedMsg carrying Target.
type ComposeMsg struct {
	Initial string
	Ext     string
	Target  string
}

// ComposedMsg carries the text written in the external editor
type ComposedMsg struct {
	Target string
	Text   string
	Err    error
}

// BuildSiteMsg asks the app to generate the static pages
type BuildSiteMsg struct {
	Open bool
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

func fail(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

func succeed(message string) tea.Cmd {
	return func() tea.Msg { return successMsg{message} }
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// confirmationPrompt returns the prompt of a ConfirmationError
func confirmationPrompt(err error) (string, bool) {
	var cErr *application.ConfirmationError
	if errors.As(err, &cErr) {
		return cErr.Prompt, true
	}
	return "", false
}

// confirmable runs action unconfirmed first. When the action asks for
// confirmation the app shows the prompt and runs it again confirmed on "y".
func confirmable(back tea.Msg, detail string, action func(confirmed bool) (string, error)) tea.Cmd {
	return func() tea.Msg {
		msg, err := action(false)
		if prompt, ok := confirmationPrompt(err); ok {
			return ConfirmMsg{
				Prompt: prompt,
				Detail: detail,
				Back:   back,
				OnConfirm: func() tea.Msg {
					msg, err := action(true)
					if err != nil {
						return errMsg{err}
					}
					return successMsg{msg}
				},
			}
		}
		if err != nil {
			return errMsg{err}
		}
		return successMsg{msg}
	}
}
