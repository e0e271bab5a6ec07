package domain

import (
	"fmt"
	"strings"
)

// BlockKind identifies one of the six content block variants
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindText
	KindList
	KindCode
	KindImage
	KindVideo
)

// BlockKinds lists every variant in display order
var BlockKinds = []BlockKind{KindHeading, KindText, KindList, KindCode, KindImage, KindVideo}

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindCode:
		return "code"
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// ParseBlockKind converts a stored type tag into a BlockKind
func ParseBlockKind(s string) (BlockKind, error) {
	for _, k := range BlockKinds {
		if k.String() == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, &ValidationError{Field: "type", Message: fmt.Sprintf("unknown section type: %q", s)}
}

// FontSize is the text block size modifier
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// ParseFontSize maps unknown or empty values to FontMedium
func ParseFontSize(s string) FontSize {
	switch FontSize(strings.ToLower(strings.TrimSpace(s))) {
	case FontSmall:
		return FontSmall
	case FontLarge:
		return FontLarge
	default:
		return FontMedium
	}
}

// VideoPlatform selects embed vs native playback
type VideoPlatform string

const (
	PlatformYouTube VideoPlatform = "youtube"
	PlatformLocal   VideoPlatform = "local"
)

// ParseVideoPlatform maps anything other than youtube to PlatformLocal
func ParseVideoPlatform(s string) VideoPlatform {
	if strings.EqualFold(strings.TrimSpace(s), string(PlatformYouTube)) {
		return PlatformYouTube
	}
	return PlatformLocal
}

// Block is a single unit of rich content. The set of implementations is
// closed: Heading, Text, List, Code, Image and Video. Blocks are values;
// a pointer to a variant also satisfies Block and is read through.
type Block interface {
	Kind() BlockKind
	// Validate checks the variant's required fields
	Validate() error
	block()
}

// Heading is a section title rendered at Level (1-6)
type Heading struct {
	Level int
	Text  string
}

// Text is a paragraph that may embed [label](url) links
type Text struct {
	Text     string
	Bold     bool
	Italic   bool
	FontSize FontSize
}

// List is an ordered or unordered, possibly nested, list
type List struct {
	Ordered bool
	Items   []ListItem
}

// Code is a verbatim code block tagged with a language for styling
type Code struct {
	Language string
	Text     string
}

// Image is an embedded picture
type Image struct {
	Src string
	Alt string
}

// Video is a YouTube embed or a native video element
type Video struct {
	Platform VideoPlatform
	Src      string
}

func (Heading) Kind() BlockKind { return KindHeading }
func (Text) Kind() BlockKind    { return KindText }
func (List) Kind() BlockKind    { return KindList }
func (Code) Kind() BlockKind    { return KindCode }
func (Image) Kind() BlockKind   { return KindImage }
func (Video) Kind() BlockKind   { return KindVideo }

func (Heading) block() {}
func (Text) block()    {}
func (List) block()    {}
func (Code) block()    {}
func (Image) block()   {}
func (Video) block()   {}

func (h Heading) Validate() error {
	if strings.TrimSpace(h.Text) == "" {
		return &ValidationError{Field: "text", Message: "Please enter heading text"}
	}
	if h.Level < 1 || h.Level > 6 {
		return &ValidationError{Field: "level", Message: fmt.Sprintf("heading level must be between 1 and 6, got %d", h.Level)}
	}
	return nil
}

func (t Text) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return &ValidationError{Field: "text", Message: "Please enter some text"}
	}
	return nil
}

func (l List) Validate() error {
	if len(l.Items) == 0 {
		return &ValidationError{Field: "items", Message: "Please add at least one list item"}
	}
	for i, item := range l.Items {
		if strings.TrimSpace(item.Text) == "" {
			return &ValidationError{Field: "items", Message: fmt.Sprintf("list item %d is empty", i+1)}
		}
	}
	return ValidateLevels(l.Items)
}

func (c Code) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return &ValidationError{Field: "code", Message: "Please enter some code"}
	}
	return nil
}

func (i Image) Validate() error {
	if strings.TrimSpace(i.Src) == "" {
		return &ValidationError{Field: "src", Message: "Please enter image URL"}
	}
	return nil
}

func (v Video) Validate() error {
	if strings.TrimSpace(v.Src) == "" {
		return &ValidationError{Field: "src", Message: "Please enter video URL"}
	}
	return nil
}

// BlockVisitor handles every block variant. Adding a variant adds a method,
// so implementations stop compiling until they handle it.
type BlockVisitor[T any] interface {
	Heading(Heading) T
	Text(Text) T
	List(List) T
	Code(Code) T
	Image(Image) T
	Video(Video) T
}

// Match dispatches b to the visitor method for its variant. Pointer
// variants are dereferenced; a nil pointer panics like a nil Block.
func Match[T any](b Block, v BlockVisitor[T]) T {
	switch p := b.(type) {
	case *Heading:
		b = deref(p)
	case *Text:
		b = deref(p)
	case *List:
		b = deref(p)
	case *Code:
		b = deref(p)
	case *Image:
		b = deref(p)
	case *Video:
		b = deref(p)
	}

	switch b := b.(type) {
	case Heading:
		return v.Heading(b)
	case Text:
		return v.Text(b)
	case List:
		return v.List(b)
	case Code:
		return v.Code(b)
	case Image:
		return v.Image(b)
	case Video:
		return v.Video(b)
	}
	panic(fmt.Sprintf("domain: unhandled block type %T", b))
}

func deref[B Block](p *B) Block {
	if p == nil {
		panic(fmt.Sprintf("domain: nil %T block", p))
	}
	return *p
}

// defaults fills the per-variant defaults applied when a block is created
type defaults struct{}

func (defaults) Heading(h Heading) Block {
	if h.Level == 0 {
		h.Level = 2
	}
	h.Text = strings.TrimSpace(h.Text)
	return h
}

func (defaults) Text(t Text) Block {
	t.FontSize = ParseFontSize(string(t.FontSize))
	return t
}

func (defaults) List(l List) Block {
	l.Items = append([]ListItem(nil), l.Items...)
	return l
}

func (defaults) Code(c Code) Block {
	if strings.TrimSpace(c.Language) == "" {
		c.Language = "plaintext"
	}
	return c
}

func (defaults) Image(i Image) Block {
	i.Src = strings.TrimSpace(i.Src)
	if strings.TrimSpace(i.Alt) == "" {
		i.Alt = "Image"
	}
	return i
}

func (defaults) Video(v Video) Block {
	v.Platform = ParseVideoPlatform(string(v.Platform))
	v.Src = strings.TrimSpace(v.Src)
	return v
}

// WithDefaults returns b with empty optional fields set to their defaults
// (heading level 2, medium font, "plaintext" language, "Image" alt text).
func WithDefaults(b Block) Block {
	return Match[Block](b, defaults{})
}

// Section is a block with a stable identity and an explicit position
type Section struct {
	ID    string
	Order int
	Block Block
}

// NewSection wraps b in a Section with a fresh ID
func NewSection(b Block) Section {
	return Section{ID: NewID(), Block: WithDefaults(b)}
}

// Renumber rewrites Order to match slice positions
func Renumber(sections []Section) {
	for i := range sections {
		sections[i].Order = i
	}
}

// CloneSections returns a copy that shares no list item storage with src
func CloneSections(src []Section) []Section {
	if src == nil {
		return nil
	}
	out := make([]Section, len(src))
	for i, s := range src {
		if l, ok := s.Block.(List); ok {
			l.Items = append([]ListItem(nil), l.Items...)
			s.Block = l
		}
		out[i] = s
	}
	return out
}
