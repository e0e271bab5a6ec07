package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// normalize rewrites a JavaScript object literal as strict JSON. It accepts
// bare identifier keys, single-quoted and backtick strings, trailing commas,
// comments, undefined and hexadecimal numbers. Parsing stops at the first
// top-level ';' so helper code after the literal is ignored. Nothing is
// evaluated.
func normalize(src []byte) ([]byte, error) {
	p := &literalParser{src: src}
	p.skipSpace()
	if err := p.value(); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == ';' {
		p.pos = len(p.src)
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q after the data object", p.src[p.pos])
	}
	return p.out.Bytes(), nil
}

type literalParser struct {
	src []byte
	pos int
	out bytes.Buffer
}

func (p *literalParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) errorf(format string, args ...any) error {
	line, col := 1, 1
	for _, c := range p.src[:min(p.pos, len(p.src))] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return fmt.Errorf("line %d, column %d: %s", line, col, fmt.Sprintf(format, args...))
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
			end := bytes.Index(p.src[p.pos+2:], []byte("*/"))
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		case c == 0xEF && bytes.HasPrefix(p.src[p.pos:], []byte("\xef\xbb\xbf")):
			p.pos += 3
		default:
			return
		}
	}
}

func (p *literalParser) value() error {
	switch c := p.peek(); {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"' || c == '\'' || c == '`':
		s, err := p.str()
		if err != nil {
			return err
		}
		p.writeString(s)
		return nil
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		switch ident := p.ident(); ident {
		case "true", "false", "null":
			p.out.WriteString(ident)
		case "undefined":
			p.out.WriteString("null")
		default:
			return p.errorf("unexpected identifier %q", ident)
		}
		return nil
	case c == 0:
		return p.errorf("unexpected end of input")
	default:
		return p.errorf("unexpected character %q", c)
	}
}

func (p *literalParser) object() error {
	p.pos++
	p.out.WriteByte('{')
	for n := 0; ; n++ {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			p.out.WriteByte('}')
			return nil
		}
		if n > 0 {
			p.out.WriteByte(',')
		}
		if err := p.key(); err != nil {
			return err
		}
		p.skipSpace()
		if p.peek() != ':' {
			return p.errorf("expected ':' after object key")
		}
		p.pos++
		p.out.WriteByte(':')
		p.skipSpace()
		if err := p.value(); err != nil {
			return err
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *literalParser) array() error {
	p.pos++
	p.out.WriteByte('[')
	for n := 0; ; n++ {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			p.out.WriteByte(']')
			return nil
		}
		if n > 0 {
			p.out.WriteByte(',')
		}
		if err := p.value(); err != nil {
			return err
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *literalParser) key() error {
	switch c := p.peek(); {
	case c == '"' || c == '\'' || c == '`':
		s, err := p.str()
		if err != nil {
			return err
		}
		p.writeString(s)
	case isIdentStart(c):
		p.writeString(p.ident())
	case isDigit(c):
		start := p.pos
		for isDigit(p.peek()) {
			p.pos++
		}
		p.writeString(string(p.src[start:p.pos]))
	default:
		return p.errorf("expected an object key, got %q", c)
	}
	return nil
}

func (p *literalParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && (isIdentStart(p.src[p.pos]) || isDigit(p.src[p.pos])) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// str reads a quoted string and returns its decoded value
func (p *literalParser) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\n' && quote != '`':
			return "", p.errorf("unterminated string")
		case c == '$' && quote == '`' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '{':
			return "", p.errorf("template expressions are not supported")
		case c == '\\':
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRune(p.src[p.pos:])
			sb.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *literalParser) escape(sb *strings.Builder) error {
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return p.errorf("unterminated string")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation
	case '\r':
		if p.peek() == '\n' {
			p.pos++
		}
	case 'x':
		r, err := p.hex(2)
		if err != nil {
			return err
		}
		sb.WriteRune(r)
	case 'u':
		r, err := p.hex(4)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && bytes.HasPrefix(p.src[p.pos:], []byte(`\u`)) {
			p.pos += 2
			low, err := p.hex(4)
			if err != nil {
				return err
			}
			r = utf16.DecodeRune(r, low)
		}
		sb.WriteRune(r)
	default:
		// any other escaped character stands for itself
		p.pos--
		r, size := utf8.DecodeRune(p.src[p.pos:])
		sb.WriteRune(r)
		p.pos += size
	}
	return nil
}

func (p *literalParser) hex(n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf("truncated escape sequence")
	}
	v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+n]), 16, 32)
	if err != nil {
		return 0, p.errorf("invalid escape sequence %q", p.src[p.pos:p.pos+n])
	}
	p.pos += n
	return rune(v), nil
}

func (p *literalParser) number() error {
	start := p.pos
	neg := false
	if c := p.peek(); c == '-' || c == '+' {
		neg = c == '-'
		p.pos++
	}

	if p.peek() == '0' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == 'x' || p.src[p.pos+1] == 'X') {
		p.pos += 2
		digits := p.pos
		for isHexDigit(p.peek()) {
			p.pos++
		}
		v, err := strconv.ParseInt(string(p.src[digits:p.pos]), 16, 64)
		if err != nil {
			return p.errorf("invalid number %q", p.src[start:p.pos])
		}
		if neg {
			v = -v
		}
		p.out.WriteString(strconv.FormatInt(v, 10))
		return nil
	}

	body := p.pos
	for c := p.peek(); isDigit(c) || c == '.' || c == 'e' || c == 'E' ||
		((c == '+' || c == '-') && p.pos > body && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')); c = p.peek() {
		p.pos++
	}
	lit := string(p.src[body:p.pos])
	if lit == "" {
		return p.errorf("invalid number %q", p.src[start:min(p.pos+1, len(p.src))])
	}
	if strings.HasPrefix(lit, ".") {
		lit = "0" + lit
	}
	lit = strings.Replace(lit, ".e", ".0e", 1)
	lit = strings.Replace(lit, ".E", ".0E", 1)
	if strings.HasSuffix(lit, ".") {
		lit += "0"
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return p.errorf("invalid number %q", p.src[start:p.pos])
	}
	if !json.Valid([]byte(lit)) {
		lit = strconv.FormatFloat(f, 'g', -1, 64)
	}
	if neg {
		p.out.WriteByte('-')
	}
	p.out.WriteString(lit)
	return nil
}

func (p *literalParser) writeString(s string) {
	b, _ := json.Marshal(s)
	p.out.Write(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
