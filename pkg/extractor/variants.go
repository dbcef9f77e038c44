package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kataras/figma-sparrow/pkg/figma"
	"github.com/kataras/figma-sparrow/pkg/normalize"
)

// FillInfo is a solid fill color and, when bound, the name of its variable.
type FillInfo struct {
	Hex          string `json:"hex" yaml:"hex"`
	VariableName string `json:"variableName,omitempty" yaml:"variableName,omitempty"`
}

// IconInfo is an icon instance found inside a variant.
type IconInfo struct {
	Name     string `json:"name" yaml:"name"`
	ColorHex string `json:"colorHex,omitempty" yaml:"colorHex,omitempty"`
}

// VariantDatum holds the visual facts of one variant.
type VariantDatum struct {
	VariantName string     `json:"variantName" yaml:"variantName"`
	Fills       []FillInfo `json:"fills" yaml:"fills"`
	Icons       []IconInfo `json:"icons" yaml:"icons"`
	TextColors  []string   `json:"textColors" yaml:"textColors"`
}

var iconNameRe = regexp.MustCompile(`^Icon\s*/\s*(.+)$`)

// CollectVariantData returns one VariantDatum per child of a COMPONENT_SET, in child
// order, or a single datum for any other root. Bound fill variables are resolved
// through vars; unknown IDs, or a nil vars, leave VariableName empty.
func CollectVariantData(root *figma.Node, vars figma.VariableResolver) ([]VariantDatum, error) {
	data := []VariantDatum{}
	if root == nil {
		return data, nil
	}

	variants := []*figma.Node{root}
	if root.Is(figma.TypeComponentSet) {
		variants = children(root)
	}

	g := newGuard()
	if root.Is(figma.TypeComponentSet) {
		// Keep the set on the path so a variant pointing back at it is caught.
		if err := g.enter(root); err != nil {
			return nil, err
		}
		defer g.leave(root)
	}

	for _, v := range variants {
		datum, err := g.variantDatum(v, vars)
		if err != nil {
			return nil, err
		}
		data = append(data, datum)
	}

	return data, nil
}

func (g *guard) variantDatum(v *figma.Node, vars figma.VariableResolver) (VariantDatum, error) {
	datum := VariantDatum{
		VariantName: v.Name,
		Fills:       []FillInfo{},
		Icons:       []IconInfo{},
		TextColors:  []string{},
	}

	for _, fill := range v.Fills {
		if !fill.IsVisible() || !fill.IsSolid() {
			continue
		}

		hex, err := normalize.FigmaRGBAToHex(fill.EffectiveColor())
		if err != nil {
			return datum, fmt.Errorf("variant %q fill: %w", v.Name, err)
		}

		info := FillInfo{Hex: hex}
		if id := fill.VariableID(); id != "" && vars != nil {
			if name, ok := vars.VariableName(id); ok {
				info.VariableName = name
			}
		}
		datum.Fills = append(datum.Fills, info)
	}

	if err := g.enter(v); err != nil {
		return datum, err
	}
	defer g.leave(v)

	for _, child := range children(v) {
		err := g.walk(child, func(n *figma.Node) (bool, error) {
			switch {
			case n.Is(figma.TypeInstance):
				icon, ok, err := iconInfo(n)
				if err != nil {
					return false, fmt.Errorf("variant %q icon %q: %w", v.Name, n.Name, err)
				}
				if ok {
					datum.Icons = append(datum.Icons, icon)
				}
			case n.Is(figma.TypeText):
				hex, ok, err := firstSolidHex(n.Fills)
				if err != nil {
					return false, fmt.Errorf("variant %q text %q: %w", v.Name, n.Name, err)
				}
				if ok {
					datum.TextColors = append(datum.TextColors, hex)
				}
			}
			return true, nil
		})
		if err != nil {
			return datum, err
		}
	}

	return datum, nil
}

// iconInfo recognizes instances named "Icon / <Name>". The icon color is taken
// from the first stroke.
func iconInfo(n *figma.Node) (IconInfo, bool, error) {
	m := iconNameRe.FindStringSubmatch(strings.TrimSpace(n.Name))
	if m == nil {
		return IconInfo{}, false, nil
	}

	icon := IconInfo{Name: strings.TrimSpace(m[1])}
	hex, ok, err := firstSolidHex(n.Strokes)
	if err != nil {
		return icon, false, err
	}
	if ok {
		icon.ColorHex = hex
	}

	return icon, true, nil
}

// firstSolidHex converts the first visible paint when it is a solid color.
func firstSolidHex(paints []figma.Paint) (string, bool, error) {
	for _, p := range paints {
		if !p.IsVisible() {
			continue
		}
		if !p.IsSolid() {
			return "", false, nil
		}
		hex, err := normalize.FigmaRGBAToHex(p.EffectiveColor())
		if err != nil {
			return "", false, err
		}
		return hex, true, nil
	}
	return "", false, nil
}
