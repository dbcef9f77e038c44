package formatter

import (
	"regexp"
	"strings"
)

// MarkdownChunk is one level-2 section of a markdown document.
type MarkdownChunk struct {
	Heading string `json:"heading" yaml:"heading"`
	Content string `json:"content" yaml:"content"`
}

var (
	h2Pattern    = regexp.MustCompile(`^##\s+(.*?)\s*#*$`)
	fencePattern = regexp.MustCompile("^(```|~~~)")
)

// ChunkMarkdownByHeaders splits md on its "## " headers. Text before the first header
// becomes a chunk with an empty heading, kept only when it is non-blank or when the
// document has no header at all, so empty input yields a single empty chunk.
// Headers inside fenced code blocks do not split.
func ChunkMarkdownByHeaders(md string) []MarkdownChunk {
	lines := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")

	var (
		chunks  []MarkdownChunk
		current = MarkdownChunk{}
		body    []string
		inFence bool
		started bool
	)

	flush := func() {
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		if started || current.Content != "" {
			chunks = append(chunks, current)
		}
	}

	for _, line := range lines {
		if fencePattern.MatchString(strings.TrimSpace(line)) {
			inFence = !inFence
		}

		if !inFence {
			if m := h2Pattern.FindStringSubmatch(line); m != nil {
				flush()
				current = MarkdownChunk{Heading: m[1]}
				body = nil
				started = true
				continue
			}
		}

		body = append(body, line)
	}
	flush()

	if len(chunks) == 0 {
		chunks = append(chunks, MarkdownChunk{})
	}

	return chunks
}
