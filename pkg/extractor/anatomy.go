package extractor

import (
	"strconv"
	"strings"

	"github.com/kataras/figma-sparrow/pkg/figma"
)

// AnatomyNode is one visible node of a component's structure.
type AnatomyNode struct {
	Name     string         `json:"name" yaml:"name"`
	Type     figma.NodeType `json:"type" yaml:"type"`
	Layout   string         `json:"layout,omitempty" yaml:"layout,omitempty"` // "vertical auto-layout" or "horizontal auto-layout"
	Gap      *float64       `json:"gap,omitempty" yaml:"gap,omitempty"`
	Children []*AnatomyNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Label renders the node as a single outline line, e.g.
// "Card (FRAME) [vertical auto-layout, gap: 8px]".
func (a *AnatomyNode) Label() string {
	var b strings.Builder
	b.WriteString(a.Name)
	b.WriteString(" (")
	b.WriteString(string(a.Type))
	b.WriteString(")")

	if a.Layout != "" {
		b.WriteString(" [")
		b.WriteString(a.Layout)
		if a.Gap != nil {
			b.WriteString(", gap: ")
			b.WriteString(strconv.FormatFloat(*a.Gap, 'f', -1, 64))
			b.WriteString("px")
		}
		b.WriteString("]")
	}

	return b.String()
}

// String renders the node and its descendants as an indented tree.
func (a *AnatomyNode) String() string {
	var b strings.Builder
	b.WriteString(a.Label())
	b.WriteString("\n")
	writeAnatomyChildren(&b, a.Children, "")
	return b.String()
}

func writeAnatomyChildren(b *strings.Builder, nodes []*AnatomyNode, prefix string) {
	for i, child := range nodes {
		branch, indent := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, indent = "└── ", "    "
		}

		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(child.Label())
		b.WriteString("\n")
		writeAnatomyChildren(b, child.Children, prefix+indent)
	}
}

// BuildAnatomy returns the visible structure of root. A COMPONENT_SET is represented
// by its deepest visible variant only (first one on ties). Hidden nodes and their subtrees
// are left out; a hidden or nil root yields nil.
func BuildAnatomy(root *figma.Node) (*AnatomyNode, error) {
	if root == nil {
		return nil, nil
	}

	g := newGuard()
	start := root
	if root.Is(figma.TypeComponentSet) {
		variant, err := g.deepestVariant(root)
		if err != nil {
			return nil, err
		}
		start = variant
	}

	return g.anatomy(start)
}

// BuildAnatomyTree is BuildAnatomy rendered as text, one node per line.
func BuildAnatomyTree(root *figma.Node) (string, error) {
	tree, err := BuildAnatomy(root)
	if err != nil || tree == nil {
		return "", err
	}
	return tree.String(), nil
}

// deepestVariant picks the visible child of a component set with the deepest
// subtree. A set without children stands for itself.
func (g *guard) deepestVariant(set *figma.Node) (*figma.Node, error) {
	if err := g.enter(set); err != nil {
		return nil, err
	}
	defer g.leave(set)

	variants := children(set)
	var (
		best      = set
		bestDepth = 0
	)
	for _, child := range variants {
		if !child.IsVisible() {
			continue
		}
		d, err := g.subtreeDepth(child)
		if err != nil {
			return nil, err
		}
		if d > bestDepth {
			best, bestDepth = child, d
		}
	}

	// Every variant is hidden: nothing is drawn.
	if best == set && len(variants) > 0 {
		return variants[0], nil
	}

	return best, nil
}

func (g *guard) anatomy(n *figma.Node) (*AnatomyNode, error) {
	if !n.IsVisible() {
		return nil, nil
	}
	if err := g.enter(n); err != nil {
		return nil, err
	}
	defer g.leave(n)

	node := &AnatomyNode{Name: n.Name, Type: n.Type}
	switch n.Layout() {
	case figma.LayoutVertical:
		node.Layout = "vertical auto-layout"
	case figma.LayoutHorizontal:
		node.Layout = "horizontal auto-layout"
	}
	if node.Layout != "" && n.ItemSpacing != nil {
		gap := *n.ItemSpacing
		node.Gap = &gap
	}

	for _, child := range children(n) {
		c, err := g.anatomy(child)
		if err != nil {
			return nil, err
		}
		if c != nil {
			node.Children = append(node.Children, c)
		}
	}

	return node, nil
}
