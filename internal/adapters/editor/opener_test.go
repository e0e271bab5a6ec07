package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestScratchAndCollect(t *testing.T) {
	dir := t.TempDir()
	c := NewComposer(dir)
	c.getenv = func(k string) string {
		if k == "EDITOR" {
			return "code --wait"
		}
		return ""
	}

	path, cmd, err := c.Scratch("const portfolioData = {};", ".js")
	if err != nil {
		t.Fatalf("Scratch failed: %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".js" {
		t.Errorf("unexpected scratch path %s", path)
	}
	want := []string{"code", "--wait", path}
	if len(cmd.Args) != len(want) {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}

	if err := os.WriteFile(path, []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := c.Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if got != "edited" {
		t.Errorf("Collect = %q", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("scratch file should be removed after Collect")
	}
}

func TestFindEditor(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		onPath string
		want   string
	}{
		{"editor wins", map[string]string{"EDITOR": "hx", "VISUAL": "code"}, "vim", "hx"},
		{"visual fallback", map[string]string{"VISUAL": "code"}, "vim", "code"},
		{"path fallback", nil, "nano", "/usr/bin/nano"},
		{"nothing", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer("")
			c.getenv = func(k string) string { return tt.env[k] }
			c.lookup = func(name string) (string, error) {
				if name == tt.onPath {
					return "/usr/bin/" + name, nil
				}
				return "", errors.New("not found")
			}
			if got := c.findEditor(); got != tt.want {
				t.Errorf("findEditor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScratchWithoutEditor(t *testing.T) {
	dir := t.TempDir()
	c := NewComposer(dir)
	c.getenv = func(string) string { return "" }
	c.lookup = func(string) (string, error) { return "", errors.New("not found") }

	if _, _, err := c.Scratch("x", ".txt"); err == nil {
		t.Fatal("expected error without an editor")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("scratch file left behind: %v", entries)
	}
}
