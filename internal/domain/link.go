package domain

import "strings"

// LinkType is the kind of external resource a project links to
type LinkType string

const (
	LinkGitHub   LinkType = "github"
	LinkBehance  LinkType = "behance"
	LinkPDF      LinkType = "pdf"
	LinkDrive    LinkType = "drive"
	LinkDemo     LinkType = "demo"
	LinkLinkedIn LinkType = "linkedin"
	LinkYouTube  LinkType = "youtube"
	LinkCustom   LinkType = "custom"
)

// LinkTypes lists every link type in the order forms offer them
var LinkTypes = []LinkType{LinkGitHub, LinkBehance, LinkPDF, LinkDrive, LinkDemo, LinkLinkedIn, LinkYouTube, LinkCustom}

type linkStyle struct {
	detailLabel string
	cardLabel   string
}

var linkStyles = map[LinkType]linkStyle{
	LinkGitHub:   {"View Code", "View on GitHub"},
	LinkBehance:  {"View on Behance", "View on Behance"},
	LinkPDF:      {"Download PDF", "Download PDF"},
	LinkDrive:    {"View on Drive", "View Files"},
	LinkDemo:     {"Live Demo", "Live Demo"},
	LinkLinkedIn: {"LinkedIn", "LinkedIn Post"},
	LinkYouTube:  {"Watch Video", "Watch Video"},
	LinkCustom:   {"View Link", "View Link"},
}

// ParseLinkType maps unknown values to LinkCustom
func ParseLinkType(s string) LinkType {
	t := LinkType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := linkStyles[t]; ok {
		return t
	}
	return LinkCustom
}

// Class returns the CSS class used for buttons of this type
func (t LinkType) Class() string {
	return "btn-" + string(ParseLinkType(string(t)))
}

// Link is an external resource attached to a project
type Link struct {
	Type  LinkType
	URL   string
	Label string // optional; defaults per type when rendered
}

// DetailLabel returns the label shown on the project detail page
func (l Link) DetailLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return linkStyles[ParseLinkType(string(l.Type))].detailLabel
}

// CardLabel returns the label shown on a project card
func (l Link) CardLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return linkStyles[ParseLinkType(string(l.Type))].cardLabel
}
