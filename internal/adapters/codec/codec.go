// Package codec reads and writes the portfolio document as a data.js
// literal, JSON or YAML
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"
)

// Format selects the external representation
type Format string

const (
	FormatDataJS Format = "js"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// Formats lists the supported formats
var Formats = []Format{FormatDataJS, FormatJSON, FormatYAML}

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "js", "javascript", "":
		return FormatDataJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (expected js, json or yaml)", s)
}

// Codec encodes and decodes one format
type Codec struct {
	Format Format
}

// Ensure Codec implements the document ports
var (
	_ ports.DocumentDecoder = Codec{}
	_ ports.DocumentEncoder = Codec{}
)

// New returns a codec for f
func New(f Format) Codec {
	return Codec{Format: f}
}

// Encode writes p in the codec's format
func (c Codec) Encode(p *domain.Portfolio) ([]byte, error) {
	switch c.Format {
	case FormatJSON:
		return EncodeJSON(p)
	case FormatYAML:
		return EncodeYAML(p)
	default:
		return EncodeDataJS(p)
	}
}

// Decode parses data in the codec's format. JSON input is accepted by the
// data.js decoder and the other way round.
func (c Codec) Decode(data []byte) (*domain.Portfolio, error) {
	if c.Format == FormatYAML {
		return DecodeYAML(data)
	}
	return Parse(string(data))
}

const declaration = "const portfolioData"

// Parse reads a data.js file, a bare object literal or strict JSON. The
// optional "const portfolioData =" prefix and a trailing ';' are stripped;
// strict JSON is tried first and the tolerant literal parser second.
func Parse(input string) (*domain.Portfolio, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, &application.ParseError{Message: "Please paste your data.js content first"}
	}
	if _, after, ok := strings.Cut(s, declaration); ok {
		s = strings.TrimPrefix(strings.TrimSpace(after), "=")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), ";")

	var doc document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		normalized, nerr := normalize([]byte(s))
		if nerr != nil {
			return nil, &application.ParseError{Message: "Unable to parse data", Err: nerr}
		}
		doc = document{}
		if err := json.Unmarshal(normalized, &doc); err != nil {
			return nil, &application.ParseError{Message: "Unable to parse data", Err: err}
		}
	}
	return decodeDocument(&doc)
}

// DecodeYAML reads the YAML export
func DecodeYAML(data []byte) (*domain.Portfolio, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &application.ParseError{Message: "Please paste your data.js content first"}
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &application.ParseError{Message: "Unable to parse data", Err: err}
	}
	return decodeDocument(&doc)
}

func decodeDocument(doc *document) (*domain.Portfolio, error) {
	if doc.Personal == nil || doc.Timeline == nil {
		return nil, &application.ParseError{Message: "Invalid data structure - missing required fields"}
	}
	p, err := fromWire(doc)
	if err != nil {
		return nil, &application.ParseError{Message: "Invalid section data", Err: err}
	}
	return p, nil
}

// EncodeJSON writes the document as indented JSON
func EncodeJSON(p *domain.Portfolio) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(p)); err != nil {
		return nil, fmt.Errorf("failed to encode portfolio: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeYAML writes the document as YAML
func EncodeYAML(p *domain.Portfolio) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toWire(p)); err != nil {
		return nil, fmt.Errorf("failed to encode portfolio: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeDataJS writes the document as a data.js file: the portfolioData
// declaration followed by the lookup helpers pages call
func EncodeDataJS(p *domain.Portfolio) ([]byte, error) {
	body, err := EncodeJSON(p)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(dataJSHeader)
	buf.WriteString(declaration + " = ")
	buf.Write(bytes.TrimRight(body, "\n"))
	buf.WriteString(";\n")
	buf.WriteString(dataJSHelpers)
	return buf.Bytes(), nil
}

const dataJSHeader = `// ========================================
// PORTFOLIO DATA - YOUR CENTRALIZED DASHBOARD
// ========================================
// This file contains ALL your portfolio content in one place.
// Generated by folio

`

const dataJSHelpers = `
// ========================================
// HELPER FUNCTIONS
// ========================================

// Get all projects from all categories as a flat array
function getAllProjects() {
  const categories = portfolioData.projectCategories;
  return Object.values(categories).flatMap(cat => cat.projects);
}

// Get project by ID (searches across all categories)
function getProjectById(projectId) {
  return getAllProjects().find(p => p.id === projectId);
}

// Get projects by category key
function getProjectsByCategory(categoryKey) {
  if (categoryKey === 'all') return getAllProjects();
  return portfolioData.projectCategories[categoryKey]?.projects || [];
}

// Get timeline events by category
function getTimelineByCategory(category) {
  return portfolioData.timeline.filter(e => e.category === category);
}

// Generate project link for timeline
function getProjectLink(projectId) {
  const project = getProjectById(projectId);
  if (!project) return null;
  return {
    url: ` + "`project.html?id=${projectId}`" + `,
    title: project.title
  };
}
`

// DecodeBlock reads one section in its stored JSON shape, for example
// {"type":"heading","level":2,"value":"Overview"}
func DecodeBlock(data []byte) (domain.Block, error) {
	var ws wireSection
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, &application.ParseError{Message: "Unable to parse section", Err: err}
	}
	b, err := sectionFromWire(ws)
	if err != nil {
		return nil, &application.ParseError{Message: "Invalid section data", Err: err}
	}
	return b, nil
}

// EncodeBlock writes one section in its stored JSON shape
func EncodeBlock(b domain.Block) ([]byte, error) {
	return json.Marshal(domain.Match[wireSection](b, sectionEncoder{}))
}
