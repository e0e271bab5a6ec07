package markup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// Linkify escapes text and then turns [label](url) into anchors opening in
// a new tab. Escaping happens first so markup in the input stays text.
func Linkify(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	return markdownLink.ReplaceAllString(escaped, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
}

// LinkifyNodes returns Linkify(s) parsed into paragraph content nodes
func LinkifyNodes(s string) []*html.Node {
	if s == "" {
		return nil
	}
	context := &html.Node{Type: html.ElementNode, DataAtom: atom.P, Data: "p"}
	nodes, err := html.ParseFragment(strings.NewReader(Linkify(s)), context)
	if err != nil {
		// the tokenizer only fails on reader errors
		return []*html.Node{text(s)}
	}
	return nodes
}
