package formatter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNamer_Next(t *testing.T) {
	n := NewFileNamer()

	assert.Equal(t, "button-group.md", n.Next("Button Group", "1:2", FormatMarkdown))
	assert.Equal(t, "button-group-2.md", n.Next("Button Group", "3:4", FormatMarkdown))
	assert.Equal(t, "button-group-3.md", n.Next("button group", "5:6", FormatMarkdown))
	assert.Equal(t, "button-group.json", n.Next("Button Group", "1:2", FormatJSON))
	assert.Equal(t, "node-12-34.yaml", n.Next("🎨", "12:34", FormatYAML))
	assert.Equal(t, "component.md", n.Next("", "", FormatMarkdown))
}

func TestFileNamer_SuffixDoesNotShadowRealName(t *testing.T) {
	n := NewFileNamer()

	assert.Equal(t, "alert.md", n.Next("Alert", "1:1", FormatMarkdown))
	assert.Equal(t, "alert-2.md", n.Next("Alert 2", "1:2", FormatMarkdown))
	assert.Equal(t, "alert-3.md", n.Next("Alert", "1:3", FormatMarkdown))
}

func TestFileNamer_Concurrent(t *testing.T) {
	n := NewFileNamer()

	const workers = 20
	names := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i] = n.Next("Card", "", FormatMarkdown)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, workers)
	for _, name := range names {
		_, dup := seen[name]
		require.False(t, dup, "duplicate name %s", name)
		seen[name] = struct{}{}
	}
}
