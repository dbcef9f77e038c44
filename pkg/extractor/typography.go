package extractor

import (
	"strings"

	"github.com/kataras/figma-sparrow/pkg/figma"
	"github.com/kataras/figma-sparrow/pkg/normalize"
)

// TypographyEntry describes the text style of a single TEXT node.
type TypographyEntry struct {
	NodeName       string  `json:"nodeName" yaml:"nodeName"`
	FontFamily     string  `json:"fontFamily" yaml:"fontFamily"`
	FontWeight     float64 `json:"fontWeight" yaml:"fontWeight"`
	FontWeightName string  `json:"fontWeightName" yaml:"fontWeightName"`
	FontSize       float64 `json:"fontSize" yaml:"fontSize"`
	LineHeightPx   float64 `json:"lineHeightPx" yaml:"lineHeightPx"`
	LetterSpacing  float64 `json:"letterSpacing" yaml:"letterSpacing"`
}

var fontWeightNames = []struct {
	weight float64
	name   string
}{
	{100, "Thin"},
	{200, "ExtraLight"},
	{300, "Light"},
	{400, "Regular"},
	{500, "Medium"},
	{600, "SemiBold"},
	{700, "Bold"},
	{800, "ExtraBold"},
	{900, "Black"},
}

// FontWeightName returns the conventional label of a numeric font weight.
// Weights between two entries take the lower one (450 is "Regular"), weights
// above 900 are "Black" and weights below 100 have no label.
func FontWeightName(weight float64) string {
	name := ""
	for _, w := range fontWeightNames {
		if weight < w.weight {
			break
		}
		name = w.name
	}
	return name
}

// CollectTypography returns the text styles of root's TEXT nodes in pre-order.
// For a COMPONENT_SET only the default variant is walked: the first child whose
// cleaned name contains "default", otherwise the first child.
// TEXT nodes without a style are skipped.
func CollectTypography(root *figma.Node) ([]TypographyEntry, error) {
	entries := []TypographyEntry{}
	if root == nil {
		return entries, nil
	}

	start := root
	if root.Is(figma.TypeComponentSet) {
		start = defaultVariant(root)
	}

	err := walk(start, func(n *figma.Node) (bool, error) {
		if n.Is(figma.TypeText) && n.Style != nil {
			entries = append(entries, TypographyEntry{
				NodeName:       n.Name,
				FontFamily:     n.Style.FontFamily,
				FontWeight:     n.Style.FontWeight,
				FontWeightName: FontWeightName(n.Style.FontWeight),
				FontSize:       n.Style.FontSize,
				LineHeightPx:   n.Style.LineHeightPx,
				LetterSpacing:  n.Style.LetterSpacing,
			})
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// defaultVariant picks the variant whose name mentions "default", falling back to
// the set's visual representative.
func defaultVariant(set *figma.Node) *figma.Node {
	for _, v := range children(set) {
		if strings.Contains(strings.ToLower(normalize.CleanVariantName(v.Name)), "default") {
			return v
		}
	}

	return normalize.ResolveVisualNode(set)
}
