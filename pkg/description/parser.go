// Package description parses the free-form description text designers attach to
// Figma components into structured usage guidance.
//
// Descriptions arrive in many shapes: markdown with bold or ATX headers, plain
// text where a header is simply a line of its own, and text exported by Figma
// with the header glued to the end of the previous sentence
// ("...displays status.When to Use"). Parse accepts all of them and never fails.
package description

import (
	"regexp"
	"strings"
	"unicode"
)

// ContentGuideline is a titled list of guidance items, e.g. "Title Text".
type ContentGuideline struct {
	Heading string   `json:"heading" yaml:"heading"`
	Items   []string `json:"items" yaml:"items"`
}

// ParsedDescription is the structured form of a component description.
// Slices are never nil.
type ParsedDescription struct {
	Overview           string             `json:"overview" yaml:"overview"`
	WhenToUse          []string           `json:"whenToUse" yaml:"whenToUse"`
	WhenNotToUse       []string           `json:"whenNotToUse" yaml:"whenNotToUse"`
	ContentGuidelines  []ContentGuideline `json:"contentGuidelines" yaml:"contentGuidelines"`
	AccessibilityNotes []string           `json:"accessibilityNotes" yaml:"accessibilityNotes"`
}

// IsEmpty reports whether nothing at all was extracted.
func (p *ParsedDescription) IsEmpty() bool {
	return p.Overview == "" && len(p.WhenToUse) == 0 && len(p.WhenNotToUse) == 0 &&
		len(p.ContentGuidelines) == 0 && len(p.AccessibilityNotes) == 0
}

type section int

const (
	sectionOverview section = iota
	sectionWhenToUse
	sectionWhenNotToUse
	sectionAccessibility
	sectionVariants
	sectionGuideline
)

var knownHeaders = map[string]section{
	"when to use":     sectionWhenToUse,
	"when not to use": sectionWhenNotToUse,
	"accessibility":   sectionAccessibility,
	"variants":        sectionVariants,
}

// headerMatcher recognizes a header line. next is the following non-blank line,
// used by matchers that need to see a list underneath to be confident.
type headerMatcher func(line, next string) (heading string, ok bool)

// matchers are evaluated in order; the first match wins.
var matchers = []headerMatcher{
	matchBold,
	matchATX,
	matchKnownPlain,
	matchTitlePlain,
}

// gluedMatchers recognize a header glued to the end of a sentence. Generic Title
// Case tails are left alone: "See Button.Primary Action" is prose.
var gluedMatchers = []headerMatcher{
	matchBold,
	matchATX,
	matchKnownPlain,
}

var (
	boldRe   = regexp.MustCompile(`^\*\*\s*(.+?)\s*\*\*:?$`)
	atxRe    = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)
	bulletRe = regexp.MustCompile(`^(?:[-•]|\*\s|\d+[.)]\s)\s*`)
)

func matchBold(line, _ string) (string, bool) {
	if m := boldRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSuffix(m[1], ":"), true
	}
	return "", false
}

func matchATX(line, _ string) (string, bool) {
	if m := atxRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSuffix(m[1], ":"), true
	}
	return "", false
}

func matchKnownPlain(line, _ string) (string, bool) {
	heading := strings.TrimSpace(strings.TrimSuffix(line, ":"))
	if _, ok := knownHeaders[strings.ToLower(heading)]; ok {
		return heading, true
	}
	return "", false
}

// matchTitlePlain accepts short Title Case lines such as "Content Requirements",
// but only when a bullet list follows, so that a one-line overview is never
// mistaken for a header.
func matchTitlePlain(line, next string) (string, bool) {
	if !isBullet(next) || isBullet(line) {
		return "", false
	}

	heading := strings.TrimSpace(strings.TrimSuffix(line, ":"))
	if !isTitleCase(heading) {
		return "", false
	}
	return heading, true
}

func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	if strings.ContainsAny(s, ".!?,;") {
		return false
	}

	for i, w := range words {
		first := []rune(w)[0]
		if !unicode.IsLetter(first) {
			if i == 0 {
				return false
			}
			continue
		}
		// Short joining words ("to", "and", "of") may stay lowercase.
		if !unicode.IsUpper(first) && (i == 0 || len(w) > 3) {
			return false
		}
	}

	return true
}

func isBullet(line string) bool {
	return line != "" && bulletRe.MatchString(line) && !boldRe.MatchString(line)
}

func bulletItem(line string) (string, bool) {
	if !isBullet(line) {
		return "", false
	}
	return strings.TrimSpace(bulletRe.ReplaceAllString(line, "")), true
}

func matchHeader(line, next string) (string, bool) {
	return matchWith(matchers, line, next)
}

func matchWith(list []headerMatcher, line, next string) (string, bool) {
	for _, m := range list {
		if heading, ok := m(line, next); ok && heading != "" {
			return heading, true
		}
	}
	return "", false
}

// splitGlued breaks a line whose tail is a known or marked-up header glued to the
// end of a sentence ("...status.When to Use") into the sentence and the header.
func splitGlued(lines []string) []string {
	out := make([]string, 0, len(lines))
	nexts := lookahead(lines)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBullet(trimmed) {
			out = append(out, line)
			continue
		}

		next := nexts[i]
		split := false
		for j := 0; j < len(trimmed)-1; j++ {
			if !strings.ContainsRune(".!?", rune(trimmed[j])) {
				continue
			}
			rest := trimmed[j+1:]
			if rest[0] == ' ' || rest[0] == '\t' {
				continue
			}
			if _, ok := matchWith(gluedMatchers, rest, next); ok {
				out = append(out, trimmed[:j+1], rest)
				split = true
				break
			}
		}

		if !split {
			out = append(out, line)
		}
	}

	return out
}

// lookahead returns, for every line, the first non-blank line after it.
func lookahead(lines []string) []string {
	next := make([]string, len(lines))
	following := ""
	for i := len(lines) - 1; i >= 0; i-- {
		next[i] = following
		if s := strings.TrimSpace(lines[i]); s != "" {
			following = s
		}
	}
	return next
}

// Parse converts raw description text into a ParsedDescription. Text before the
// first header becomes the overview. Bullets under "When to Use", "When NOT to Use"
// and "Accessibility" fill the matching lists, bullets under "Variants" are
// dropped, and any other header opens a new content guideline.
// Non-bullet lines inside a section are ignored.
func Parse(text string) ParsedDescription {
	result := ParsedDescription{
		WhenToUse:          []string{},
		WhenNotToUse:       []string{},
		ContentGuidelines:  []ContentGuideline{},
		AccessibilityNotes: []string{},
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := splitGlued(strings.Split(text, "\n"))

	nexts := lookahead(lines)

	var overview []string
	current := sectionOverview

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			if current == sectionOverview {
				overview = append(overview, "")
			}
			continue
		}

		if heading, ok := matchHeader(line, nexts[i]); ok {
			current = sectionGuideline
			if known, ok := knownHeaders[strings.ToLower(heading)]; ok {
				current = known
			} else {
				result.ContentGuidelines = append(result.ContentGuidelines, ContentGuideline{
					Heading: heading,
					Items:   []string{},
				})
			}
			continue
		}

		if current == sectionOverview {
			overview = append(overview, strings.TrimRightFunc(raw, unicode.IsSpace))
			continue
		}

		item, ok := bulletItem(line)
		if !ok || item == "" {
			continue
		}

		switch current {
		case sectionWhenToUse:
			result.WhenToUse = append(result.WhenToUse, item)
		case sectionWhenNotToUse:
			result.WhenNotToUse = append(result.WhenNotToUse, item)
		case sectionAccessibility:
			result.AccessibilityNotes = append(result.AccessibilityNotes, item)
		case sectionGuideline:
			last := &result.ContentGuidelines[len(result.ContentGuidelines)-1]
			last.Items = append(last.Items, item)
		}
	}

	result.Overview = strings.TrimSpace(strings.Join(overview, "\n"))
	return result
}
