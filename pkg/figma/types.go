package figma

// NodeType enumerates the Figma node types this module interprets.
// Any other type string coming from the API passes through unchanged.
type NodeType string

const (
	TypeDocument     NodeType = "DOCUMENT"
	TypeCanvas       NodeType = "CANVAS"
	TypeComponentSet NodeType = "COMPONENT_SET"
	TypeComponent    NodeType = "COMPONENT"
	TypeFrame        NodeType = "FRAME"
	TypeGroup        NodeType = "GROUP"
	TypeText         NodeType = "TEXT"
	TypeInstance     NodeType = "INSTANCE"
	TypeRectangle    NodeType = "RECTANGLE"
	TypeVector       NodeType = "VECTOR"
)

// LayoutMode is the auto-layout direction of a frame.
type LayoutMode string

const (
	LayoutNone       LayoutMode = "NONE"
	LayoutHorizontal LayoutMode = "HORIZONTAL"
	LayoutVertical   LayoutMode = "VERTICAL"
)

// PaintSolid is the only paint type interpreted for color extraction.
const PaintSolid = "SOLID"

// NodesResponse represents the response from the Figma nodes API endpoint when fetching specific nodes.
// It contains file metadata and a map of node IDs to their corresponding NodeData.
type NodesResponse struct {
	Name         string               `json:"name"`
	LastModified string               `json:"lastModified"`
	Version      string               `json:"version"`
	Nodes        map[string]*NodeData `json:"nodes"` // null for IDs the file does not contain
}

// NodeData wraps a node with its document structure and the component metadata
// (names and descriptions) published alongside it.
type NodeData struct {
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
}

// Component represents a Figma component definition with its metadata.
type Component struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ComponentSetID string `json:"componentSetId,omitempty"`
}

// ComponentSet represents a Figma component set definition with its metadata.
type ComponentSet struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Description returns the description published for the document node,
// looking at component sets first and then at components.
func (d *NodeData) Description() string {
	if d.Document.Description != "" {
		return d.Document.Description
	}
	if cs, ok := d.ComponentSets[d.Document.ID]; ok && cs.Description != "" {
		return cs.Description
	}
	if c, ok := d.Components[d.Document.ID]; ok {
		return c.Description
	}
	return ""
}

// VariablesResponse is the payload of the local variables endpoint.
type VariablesResponse struct {
	Status int           `json:"status"`
	Error  bool          `json:"error"`
	Meta   VariablesMeta `json:"meta"`
}

// VariablesMeta holds the variables and their collections keyed by ID.
type VariablesMeta struct {
	Variables           map[string]Variable           `json:"variables"`
	VariableCollections map[string]VariableCollection `json:"variableCollections"`
}

// Variable is a single design variable (token) defined in a file.
type Variable struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Key                  string `json:"key"`
	VariableCollectionID string `json:"variableCollectionId"`
	ResolvedType         string `json:"resolvedType"`
}

// VariableCollection groups variables under a common name and set of modes.
type VariableCollection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VariableAlias references a variable by ID from a bound node or paint attribute.
type VariableAlias struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Optional fields are pointers so that "absent" can be told apart from a zero value;
// use the accessor methods to read them with their defaults applied.
type Node struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        NodeType   `json:"type"`
	Description string     `json:"description,omitempty"`
	Visible     *bool      `json:"visible,omitempty"`
	Children    []*Node    `json:"children,omitempty"`
	Fills       []Paint    `json:"fills,omitempty"`
	Strokes     []Paint    `json:"strokes,omitempty"`
	Characters  string     `json:"characters,omitempty"`
	Style       *TypeStyle `json:"style,omitempty"`
	LayoutMode  LayoutMode `json:"layoutMode,omitempty"`
	ItemSpacing *float64   `json:"itemSpacing,omitempty"`
}

// IsVisible reports whether the node is rendered. Absent means visible.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// Layout returns the auto-layout mode, LayoutNone when unset.
func (n *Node) Layout() LayoutMode {
	if n.LayoutMode == "" {
		return LayoutNone
	}
	return n.LayoutMode
}

// Is reports whether the node has the given type.
func (n *Node) Is(t NodeType) bool {
	return n.Type == t
}

// Color represents an RGBA color with float values ranging from 0 to 1.
// A is optional: nil means fully opaque.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// RGB returns an opaque color without an alpha component.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA returns a color carrying an explicit alpha component.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: &a}
}

// Paint represents a fill or stroke applied to a Figma node.
type Paint struct {
	Type           string                   `json:"type"`
	Visible        *bool                    `json:"visible,omitempty"`
	Opacity        *float64                 `json:"opacity,omitempty"`
	Color          *Color                   `json:"color,omitempty"`
	BoundVariables map[string]VariableAlias `json:"boundVariables,omitempty"`
}

// IsVisible reports whether the paint is applied. Absent means visible.
func (p *Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// IsSolid reports whether the paint is a SOLID paint carrying a color.
func (p *Paint) IsSolid() bool {
	return p.Type == PaintSolid && p.Color != nil
}

// EffectiveColor returns the paint color with the paint opacity folded into its
// alpha. Figma keeps the transparency of a solid paint in opacity, not in color.a.
// Call only when Color is set.
func (p *Paint) EffectiveColor() Color {
	c := *p.Color
	if p.Opacity == nil || *p.Opacity == 1 {
		return c
	}

	a := *p.Opacity
	if c.A != nil {
		a *= *c.A
	}
	c.A = &a
	return c
}

// VariableID returns the ID of the variable bound to the paint color, if any.
func (p *Paint) VariableID() string {
	return p.BoundVariables["color"].ID
}

// TypeStyle represents the text styling properties of a TEXT node.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontPostScriptName  string  `json:"fontPostScriptName,omitempty"`
	FontWeight          float64 `json:"fontWeight"`
	FontSize            float64 `json:"fontSize"`
	LineHeightPx        float64 `json:"lineHeightPx"`
	LetterSpacing       float64 `json:"letterSpacing"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty"`
}
