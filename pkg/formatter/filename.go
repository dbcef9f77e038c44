package formatter

import (
	"fmt"
	"sync"
)

// FileNamer hands out unique output file names for components.
// It is safe for concurrent use.
type FileNamer struct {
	mu        sync.Mutex
	usedNames map[string]struct{}
}

// NewFileNamer returns an empty FileNamer.
func NewFileNamer() *FileNamer {
	return &FileNamer{usedNames: make(map[string]struct{})}
}

// Next returns a kebab-cased file name for the component, e.g. "Button Group"
// -> "button-group.md". The node ID is used when the name has no usable
// characters. Collisions get a numeric suffix: "button-group-2.md".
func (n *FileNamer) Next(componentName, nodeID string, format Format) string {
	base := toKebabCase(componentName)
	if base == "" {
		base = toKebabCase(sanitizeNodeID(nodeID))
	}
	if base == "" {
		base = "component"
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	fileName := fmt.Sprintf("%s.%s", base, format.Ext())
	for i := 2; ; i++ {
		if _, exists := n.usedNames[fileName]; !exists {
			break
		}
		fileName = fmt.Sprintf("%s-%d.%s", base, i, format.Ext())
	}
	n.usedNames[fileName] = struct{}{}

	return fileName
}

// sanitizeNodeID turns "12:34" into "node 12 34".
func sanitizeNodeID(nodeID string) string {
	if nodeID == "" {
		return ""
	}

	out := []rune("node ")
	for _, r := range nodeID {
		switch r {
		case ':', ';', '-':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
