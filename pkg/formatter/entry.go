package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// SourceID identifies documentation entries produced by this module.
	SourceID = "figma-sparrow-mcp"
	// CategoryComponents is the category of every component entry.
	CategoryComponents = "components"
)

// now is replaced in tests.
var now = time.Now

// Metadata describes where a documentation entry came from.
type Metadata struct {
	Source      string    `json:"source" yaml:"source"`
	FigmaURL    string    `json:"figmaUrl" yaml:"figmaUrl"`
	SystemName  string    `json:"systemName,omitempty" yaml:"systemName,omitempty"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
}

// DocsEntry is a storable documentation page for a single component.
type DocsEntry struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Category string   `json:"category" yaml:"category"`
	Tags     []string `json:"tags" yaml:"tags"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// NewDocsEntry wraps rendered markdown into a DocsEntry. Tags are derived from the
// title; systemName may be empty.
func NewDocsEntry(markdown, title, figmaURL, systemName string) DocsEntry {
	return DocsEntry{
		ID:       uuid.NewString(),
		Title:    title,
		Content:  markdown,
		Category: CategoryComponents,
		Tags:     titleTags(title),
		Metadata: Metadata{
			Source:      SourceID,
			FigmaURL:    figmaURL,
			SystemName:  systemName,
			GeneratedAt: now().UTC(),
		},
	}
}

// titleTags returns the kebab-cased title followed by its individual words,
// lowercased and without duplicates: "Button Group" -> [button-group button group].
func titleTags(title string) []string {
	tags := []string{}
	seen := make(map[string]struct{})

	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	add(toKebabCase(strings.Join(strings.Fields(title), " ")))
	for _, word := range strings.Fields(title) {
		add(toKebabCase(word))
	}

	return tags
}

// Format is an output encoding.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat parses a format name. "markdown" and "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected md, json or yaml)", s)
	}
}

// Ext returns the file extension of the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Encode writes v as indented JSON or YAML.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q cannot encode structured data", format)
	}
}

// EncodeEntry encodes a single entry. Markdown returns the entry content as is.
func EncodeEntry(entry DocsEntry, format Format) ([]byte, error) {
	if format == FormatMarkdown {
		return []byte(entry.Content), nil
	}

	var buf bytes.Buffer
	if err := Encode(&buf, entry, format); err != nil {
		return nil, fmt.Errorf("encode entry %q: %w", entry.Title, err)
	}
	return buf.Bytes(), nil
}
