package formatter

import (
	"fmt"
	"strings"

	"github.com/kataras/figma-sparrow/pkg/extractor"
	"github.com/kataras/figma-sparrow/pkg/normalize"
)

// ToMarkdown renders the documentation page of a component: parsed usage guidance,
// variants, anatomy, typography and per-variant colors. Sections without data are
// left out. Every section is a level-2 header so the page chunks cleanly with
// ChunkMarkdownByHeaders.
func ToMarkdown(docs *extractor.ComponentDocs) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", docs.Name))

	desc := docs.Description
	if desc.Overview != "" {
		sb.WriteString(desc.Overview)
		sb.WriteString("\n\n")
	}

	writeList(&sb, "When to Use", desc.WhenToUse)
	writeList(&sb, "When NOT to Use", desc.WhenNotToUse)

	if len(desc.ContentGuidelines) > 0 {
		sb.WriteString("## Content Guidelines\n\n")
		for _, g := range desc.ContentGuidelines {
			sb.WriteString(fmt.Sprintf("### %s\n\n", g.Heading))
			for _, item := range g.Items {
				sb.WriteString(fmt.Sprintf("- %s\n", item))
			}
			sb.WriteString("\n")
		}
	}

	writeList(&sb, "Accessibility", desc.AccessibilityNotes)

	if len(docs.VariantNames) > 0 {
		sb.WriteString("## Variants\n\n")
		for _, name := range docs.VariantNames {
			sb.WriteString(fmt.Sprintf("- %s\n", name))
		}
		sb.WriteString("\n")
	}

	if tree := docs.AnatomyTree(); tree != "" {
		sb.WriteString("## Anatomy\n\n")
		sb.WriteString("```text\n")
		sb.WriteString(tree)
		sb.WriteString("```\n\n")
	}

	if len(docs.Typography) > 0 {
		sb.WriteString("## Typography\n\n")
		sb.WriteString("| Element | Font | Weight | Size | Line Height | Letter Spacing |\n")
		sb.WriteString("|---------|------|--------|------|-------------|----------------|\n")
		for _, t := range docs.Typography {
			weight := fmt.Sprintf("%g", t.FontWeight)
			if t.FontWeightName != "" {
				weight += " (" + t.FontWeightName + ")"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %gpx | %gpx | %g |\n",
				t.NodeName, t.FontFamily, weight, t.FontSize, t.LineHeightPx, t.LetterSpacing))
		}
		sb.WriteString("\n")
	}

	if hasColors(docs.Variants) {
		sb.WriteString("## Colors\n\n")
		for _, v := range docs.Variants {
			writeVariantColors(&sb, v, len(docs.Variants) > 1)
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("## %s\n\n", heading))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s\n", item))
	}
	sb.WriteString("\n")
}

func hasColors(variants []extractor.VariantDatum) bool {
	for _, v := range variants {
		if len(v.Fills) > 0 || len(v.Icons) > 0 || len(v.TextColors) > 0 {
			return true
		}
	}
	return false
}

func writeVariantColors(sb *strings.Builder, v extractor.VariantDatum, titled bool) {
	if len(v.Fills) == 0 && len(v.Icons) == 0 && len(v.TextColors) == 0 {
		return
	}

	if titled {
		sb.WriteString(fmt.Sprintf("### %s\n\n", normalize.CleanVariantName(v.VariantName)))
	}

	for _, f := range v.Fills {
		if f.VariableName != "" {
			sb.WriteString(fmt.Sprintf("- **Fill**: `%s` (`%s`)\n", f.Hex, f.VariableName))
		} else {
			sb.WriteString(fmt.Sprintf("- **Fill**: `%s`\n", f.Hex))
		}
	}
	for _, icon := range v.Icons {
		if icon.ColorHex != "" {
			sb.WriteString(fmt.Sprintf("- **Icon** %s: `%s`\n", icon.Name, icon.ColorHex))
		} else {
			sb.WriteString(fmt.Sprintf("- **Icon** %s\n", icon.Name))
		}
	}
	for _, hex := range v.TextColors {
		sb.WriteString(fmt.Sprintf("- **Text**: `%s`\n", hex))
	}
	sb.WriteString("\n")
}

// toKebabCase converts a string to kebab-case: lowercase, spaces and underscores
// become hyphens and any other non-alphanumeric character is removed.
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return strings.Trim(result.String(), "-")
}
