package browser

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildURI(t *testing.T) {
	site := t.TempDir()

	tests := []struct {
		name     string
		page     string
		wantTail string
		wantErr  bool
	}{
		{name: "relative page", page: "index.html", wantTail: "/index.html"},
		{name: "absolute page", page: filepath.Join(site, "project-notes.html"), wantTail: "/project-notes.html"},
		{name: "space in name", page: "my page.html", wantTail: "/my%20page.html"},
		{name: "outside site", page: "../secrets.html", wantErr: true},
		{name: "absolute outside", page: filepath.Join(filepath.Dir(site), "other.html"), wantErr: true},
	}

	o := NewOpener(site)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := o.BuildURI(tt.page)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(uri, "file://") || !strings.HasSuffix(uri, tt.wantTail) {
				t.Errorf("BuildURI(%q) = %s", tt.page, uri)
			}
		})
	}
}

func TestOpenPage_RunsPlatformCommand(t *testing.T) {
	o := NewOpener(t.TempDir())
	var ran *exec.Cmd
	o.run = func(c *exec.Cmd) error {
		ran = c
		return nil
	}

	if err := o.OpenPage("index.html"); err != nil {
		if strings.Contains(err.Error(), "unsupported operating system") {
			t.Skip(err)
		}
		t.Fatal(err)
	}
	if ran == nil || !strings.HasSuffix(ran.Args[len(ran.Args)-1], "/index.html") {
		t.Errorf("unexpected command %v", ran)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{"darwin", "open", false},
		{"linux", "xdg-open", false},
		{"windows", "cmd", false},
		{"plan9", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := command(tt.goos, "file:///x/index.html")
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cmd.Args[0] != tt.want {
				t.Errorf("command = %v", cmd.Args)
			}
		})
	}
}
