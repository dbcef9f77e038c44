package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixedNow(t *testing.T) time.Time {
	t.Helper()

	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.FixedZone("EET", 2*60*60))
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })

	return ts
}

func TestNewDocsEntry(t *testing.T) {
	ts := fixedNow(t)

	entry := NewDocsEntry("# Button\n\nA button component.", "Button", "https://figma.com/design/abc123", "MyDS")

	_, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Button", entry.Title)
	assert.Contains(t, entry.Content, "# Button")
	assert.Equal(t, "components", entry.Category)
	assert.Contains(t, entry.Tags, "button")
	assert.Equal(t, "figma-sparrow-mcp", entry.Metadata.Source)
	assert.Equal(t, "https://figma.com/design/abc123", entry.Metadata.FigmaURL)
	assert.Equal(t, "MyDS", entry.Metadata.SystemName)
	assert.True(t, entry.Metadata.GeneratedAt.Equal(ts))
	assert.Equal(t, time.UTC, entry.Metadata.GeneratedAt.Location())
}

func TestNewDocsEntry_WithoutSystemName(t *testing.T) {
	fixedNow(t)

	entry := NewDocsEntry("# Card", "Card", "https://figma.com/design/xyz", "")

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	metadata := raw["metadata"].(map[string]any)
	assert.NotContains(t, metadata, "systemName")
	assert.Equal(t, "2025-03-14T07:26:53Z", metadata["generatedAt"])
}

func TestNewDocsEntry_UniqueIDs(t *testing.T) {
	a := NewDocsEntry("", "A", "", "")
	b := NewDocsEntry("", "A", "", "")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTitleTags(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{"Button", []string{"button"}},
		{"Button Group", []string{"button-group", "button", "group"}},
		{"  Date   Picker ", []string{"date-picker", "date", "picker"}},
		{"Alert 🔔", []string{"alert"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, titleTags(tt.title))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatMarkdown},
		{"md", FormatMarkdown},
		{"Markdown", FormatMarkdown},
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestEncodeEntry(t *testing.T) {
	fixedNow(t)
	entry := NewDocsEntry("# Badge", "Badge", "https://figma.com/design/k", "DS")

	t.Run("markdown", func(t *testing.T) {
		out, err := EncodeEntry(entry, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, "# Badge", string(out))
	})

	t.Run("json", func(t *testing.T) {
		out, err := EncodeEntry(entry, FormatJSON)
		require.NoError(t, err)

		var decoded DocsEntry
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, entry.ID, decoded.ID)
		assert.Equal(t, "DS", decoded.Metadata.SystemName)
		assert.True(t, strings.HasPrefix(string(out), "{\n  \"id\""))
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := EncodeEntry(entry, FormatYAML)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(out, &decoded))
		assert.Equal(t, "Badge", decoded["title"])
		assert.Equal(t, "components", decoded["category"])
		assert.Contains(t, string(out), "source: figma-sparrow-mcp")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := EncodeEntry(entry, Format("xml"))
		assert.Error(t, err)
	})
}
