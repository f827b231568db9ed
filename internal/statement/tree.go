package statement

import (
	"strings"

	"github.com/finboard-dev/finboard/internal/model"
)

// tree is a loaded group-definition list with label and parent lookups
// precomputed, so per-build parent resolution is an index reference instead
// of a label scan.
type tree struct {
	groups  []model.Group
	byLabel map[string]int
	parent  []int // index into groups, -1 for top-level
}

func newTree(groups []model.Group) *tree {
	t := &tree{
		groups:  groups,
		byLabel: make(map[string]int, len(groups)),
		parent:  make([]int, len(groups)),
	}
	for i, g := range groups {
		if g.Label != "" {
			if _, ok := t.byLabel[g.Label]; !ok {
				t.byLabel[g.Label] = i
			}
		}
	}
	for i, g := range groups {
		t.parent[i] = -1
		if g.Parent != "" {
			if pi, ok := t.byLabel[g.Parent]; ok {
				t.parent[i] = pi
			}
		}
	}
	return t
}

// rowID derives a stable row identifier from a group label.
func rowID(label string) string {
	s := strings.ToLower(label)
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
