// Package editor composes text in the user's $EDITOR
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Composer implements ports.TextComposer
type Composer struct {
	dir    string
	lookup func(string) (string, error)
	getenv func(string) string
}

// NewComposer creates a composer that keeps scratch files in dir (the
// system temp dir when empty)
func NewComposer(dir string) *Composer {
	return &Composer{
		dir:    dir,
		lookup: exec.LookPath,
		getenv: os.Getenv,
	}
}

// Scratch writes initial to a new temporary file and returns the editor
// command for it
func (c *Composer) Scratch(initial, ext string) (string, *exec.Cmd, error) {
	f, err := os.CreateTemp(c.dir, "folio-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	path := f.Name()
	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}

	cmd, err := c.Command(path)
	if err != nil {
		os.Remove(path)
		return "", nil, err
	}
	return path, cmd, nil
}

// Collect reads a scratch file back and removes it
func (c *Composer) Collect(path string) (string, error) {
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return string(data), nil
}

// Command returns an exec.Cmd for opening a file in the editor.
// $EDITOR may carry arguments, e.g. "code --wait".
func (c *Composer) Command(path string) (*exec.Cmd, error) {
	editor := c.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := strings.Fields(editor)
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (c *Composer) findEditor() string {
	if editor := c.getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := c.getenv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := c.lookup(editor); err == nil {
			return path
		}
	}
	return ""
}
