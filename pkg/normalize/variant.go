package normalize

import (
	"strings"
	"unicode"

	"github.com/kataras/figma-sparrow/pkg/figma"
)

// variantSegments splits a name into its comma separated Key=Value assignments.
// ok is false when any segment is not an assignment with a non-empty key and value.
func variantSegments(name string) (values []string, ok bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}

	for _, seg := range strings.Split(name, ",") {
		key, value, found := strings.Cut(seg, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !found || key == "" || value == "" {
			return nil, false
		}
		values = append(values, value)
	}

	return values, true
}

// IsVariantName reports whether name looks like a Figma variant property list,
// i.e. at least two comma separated Key=Value pairs ("Variant=Default, Size=lg").
// A single assignment is not enough.
func IsVariantName(name string) bool {
	values, ok := variantSegments(name)
	return ok && len(values) >= 2
}

// CleanVariantName turns a property assignment list into its values joined with " / ":
// "Type=Image, Size=12" -> "Image / 12", "Variant=Danger" -> "Danger".
// Names that are not assignment lists are returned unchanged.
func CleanVariantName(name string) string {
	values, ok := variantSegments(name)
	if !ok {
		return name
	}

	return strings.Join(values, " / ")
}

// SanitizeComponentName produces an identifier-like ASCII name: commas and equals signs
// are dropped, symbols outside printable ASCII (emoji included) are removed and each
// run of whitespace becomes a single hyphen.
// "Variant=Default, State=Hover" -> "VariantDefault-StateHover".
func SanitizeComponentName(name string) string {
	var b strings.Builder
	pendingSpace := false

	for _, r := range name {
		switch {
		case r == ',' || r == '=':
			continue
		case unicode.IsSpace(r):
			pendingSpace = true
			continue
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			continue
		}

		if pendingSpace && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return strings.Trim(b.String(), "-")
}

// ResolveVisualNode returns the node that visually represents n: the first variant of a
// non-empty COMPONENT_SET, or n itself for every other node. No copy is made.
func ResolveVisualNode(n *figma.Node) *figma.Node {
	if n != nil && n.Is(figma.TypeComponentSet) && len(n.Children) > 0 && n.Children[0] != nil {
		return n.Children[0]
	}
	return n
}
