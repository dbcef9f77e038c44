package extractor

import (
	"errors"
	"fmt"

	"github.com/kataras/figma-sparrow/pkg/figma"
)

// MaxDepth is the deepest node nesting a traversal accepts.
const MaxDepth = 512

var (
	// ErrCycle is wrapped by a StructuralError when a node is reachable from itself.
	ErrCycle = errors.New("node tree contains a cycle")
	// ErrTooDeep is wrapped by a StructuralError when nesting exceeds MaxDepth.
	ErrTooDeep = errors.New("node tree exceeds maximum depth")
)

// StructuralError reports a node graph that cannot be traversed: a cycle or
// nesting beyond MaxDepth. Use errors.Is with ErrCycle or ErrTooDeep to tell them apart.
type StructuralError struct {
	NodeID   string
	NodeName string
	Depth    int
	Err      error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("node %q (%s) at depth %d: %v", e.NodeName, e.NodeID, e.Depth, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// guard tracks the nodes on the current root-to-node path of a single traversal.
// The same subtree may be shared by several parents; only a node that is its own
// ancestor is a cycle.
type guard struct {
	onPath map[*figma.Node]struct{}
	depth  int
}

func newGuard() *guard {
	return &guard{onPath: make(map[*figma.Node]struct{})}
}

func (g *guard) enter(n *figma.Node) error {
	if _, seen := g.onPath[n]; seen {
		return &StructuralError{NodeID: n.ID, NodeName: n.Name, Depth: g.depth, Err: ErrCycle}
	}
	if g.depth >= MaxDepth {
		return &StructuralError{NodeID: n.ID, NodeName: n.Name, Depth: g.depth, Err: ErrTooDeep}
	}

	g.onPath[n] = struct{}{}
	g.depth++
	return nil
}

func (g *guard) leave(n *figma.Node) {
	delete(g.onPath, n)
	g.depth--
}

// visitFunc is called for every node in pre-order. Returning false skips the
// node's children.
type visitFunc func(n *figma.Node) (descend bool, err error)

// walk visits n and its descendants in pre-order. Nil children are ignored.
func walk(n *figma.Node, visit visitFunc) error {
	return newGuard().walk(n, visit)
}

func (g *guard) walk(n *figma.Node, visit visitFunc) error {
	if n == nil {
		return nil
	}
	if err := g.enter(n); err != nil {
		return err
	}
	defer g.leave(n)

	descend, err := visit(n)
	if err != nil || !descend {
		return err
	}

	for _, child := range n.Children {
		if err := g.walk(child, visit); err != nil {
			return err
		}
	}

	return nil
}

// subtreeDepth measures n as 1 + the deepest child, a leaf being 1.
func (g *guard) subtreeDepth(n *figma.Node) (int, error) {
	if err := g.enter(n); err != nil {
		return 0, err
	}
	defer g.leave(n)

	deepest := 0
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		d, err := g.subtreeDepth(child)
		if err != nil {
			return 0, err
		}
		deepest = max(deepest, d)
	}

	return 1 + deepest, nil
}

// children returns the non-nil children of n.
func children(n *figma.Node) []*figma.Node {
	out := make([]*figma.Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child != nil {
			out = append(out, child)
		}
	}
	return out
}
