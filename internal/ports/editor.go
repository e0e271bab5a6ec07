package ports

import "os/exec"

// TextComposer lets the user write longer text in an external editor
type TextComposer interface {
	// Scratch writes initial to a temporary file with the given extension
	// and returns its path with the command that edits it. The caller runs
	// the command (bubbletea's ExecProcess) and then calls Collect.
	Scratch(initial, ext string) (path string, cmd *exec.Cmd, err error)

	// Collect reads the edited file back and removes it
	Collect(path string) (string, error)
}

// PageOpener opens a generated page in the user's browser
type PageOpener interface {
	OpenPage(path string) error
}
