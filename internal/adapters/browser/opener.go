// Package browser opens generated pages in the default browser
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener implements ports.PageOpener for one site output directory
type Opener struct {
	siteDir string
	run     func(*exec.Cmd) error
}

// NewOpener creates an opener for pages under siteDir
func NewOpener(siteDir string) *Opener {
	return &Opener{
		siteDir: siteDir,
		run:     (*exec.Cmd).Start,
	}
}

// OpenPage opens a page of the site, given relative to the site directory
// or as an absolute path inside it
func (o *Opener) OpenPage(page string) error {
	uri, err := o.BuildURI(page)
	if err != nil {
		return err
	}
	cmd, err := command(runtime.GOOS, uri)
	if err != nil {
		return err
	}
	return o.run(cmd)
}

// BuildURI returns the file:// URL of a page inside the site directory
func (o *Opener) BuildURI(page string) (string, error) {
	root, err := filepath.Abs(o.siteDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve site directory: %w", err)
	}
	path := page
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, page)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("page is outside the site directory: %s", page)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if !strings.HasPrefix(u.Path, "/") {
		// windows drive letters
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

func command(goos, uri string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", uri), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", uri), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", uri), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
