// Package extractor walks Figma node trees and extracts the documentation facts of a
// component: its anatomy, typography and per-variant visual data.
//
// All walks are pre-order, read-only and guarded against cycles and runaway depth,
// reporting either through a *StructuralError.
package extractor

import (
	"fmt"

	"github.com/kataras/figma-sparrow/pkg/description"
	"github.com/kataras/figma-sparrow/pkg/figma"
	"github.com/kataras/figma-sparrow/pkg/normalize"
)

// ComponentDocs is everything extracted for a single component node.
type ComponentDocs struct {
	NodeID       string                        `json:"nodeId" yaml:"nodeId"`
	Name         string                        `json:"name" yaml:"name"`
	Type         figma.NodeType                `json:"type" yaml:"type"`
	Description  description.ParsedDescription `json:"description" yaml:"description"`
	Anatomy      *AnatomyNode                  `json:"anatomy,omitempty" yaml:"anatomy,omitempty"`
	Typography   []TypographyEntry             `json:"typography" yaml:"typography"`
	Variants     []VariantDatum                `json:"variants" yaml:"variants"`
	VariantNames []string                      `json:"variantNames,omitempty" yaml:"variantNames,omitempty"`
}

// AnatomyTree renders the anatomy as an indented tree, empty when there is none.
func (d *ComponentDocs) AnatomyTree() string {
	if d.Anatomy == nil {
		return ""
	}
	return d.Anatomy.String()
}

// Extract runs every extractor over root and parses the component description.
// Variable bindings are resolved through vars, which may be nil.
func Extract(nodeID string, root *figma.Node, desc string, vars figma.VariableResolver) (*ComponentDocs, error) {
	if root == nil {
		return nil, fmt.Errorf("node %s: empty document", nodeID)
	}

	docs := &ComponentDocs{
		NodeID:      nodeID,
		Name:        root.Name,
		Type:        root.Type,
		Description: description.Parse(desc),
	}

	var err error
	if docs.Anatomy, err = BuildAnatomy(root); err != nil {
		return nil, fmt.Errorf("node %s: anatomy: %w", nodeID, err)
	}
	if docs.Typography, err = CollectTypography(root); err != nil {
		return nil, fmt.Errorf("node %s: typography: %w", nodeID, err)
	}
	if docs.Variants, err = CollectVariantData(root, vars); err != nil {
		return nil, fmt.Errorf("node %s: variants: %w", nodeID, err)
	}

	if root.Is(figma.TypeComponentSet) {
		for _, v := range children(root) {
			docs.VariantNames = append(docs.VariantNames, normalize.CleanVariantName(v.Name))
		}
	}

	return docs, nil
}

// ExtractNode is Extract for a node returned by the nodes endpoint, using the
// description published with it.
func ExtractNode(nodeID string, data *figma.NodeData, vars figma.VariableResolver) (*ComponentDocs, error) {
	if data == nil {
		return nil, fmt.Errorf("node %s: not found", nodeID)
	}
	return Extract(nodeID, &data.Document, data.Description(), vars)
}
