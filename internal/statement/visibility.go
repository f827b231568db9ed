package statement

import "github.com/finboard-dev/finboard/internal/model"

// DetailLevel is a preset that bulk-overwrites a statement's visibility map.
type DetailLevel string

const (
	DetailSummary DetailLevel = "summary"
	DetailMedium  DetailLevel = "medium"
	DetailFull    DetailLevel = "full"
)

// Visibility is one statement's rowID → expanded map. It has its own
// lifecycle: it survives rebuilds so expand choices outlive period changes.
// Toggling is idempotent per state and independent across rows.
type Visibility struct {
	expanded map[string]bool
}

// NewVisibility returns an empty visibility map.
func NewVisibility() *Visibility {
	return &Visibility{expanded: make(map[string]bool)}
}

// Ensure registers a row id if unseen; expandable rows start collapsed.
func (v *Visibility) Ensure(rowID string) {
	if _, ok := v.expanded[rowID]; !ok {
		v.expanded[rowID] = false
	}
}

// Expanded reports whether a row is currently expanded.
func (v *Visibility) Expanded(rowID string) bool { return v.expanded[rowID] }

// Toggle flips a row's expanded state and returns the new state.
func (v *Visibility) Toggle(rowID string) bool {
	v.expanded[rowID] = !v.expanded[rowID]
	return v.expanded[rowID]
}

// Set forces a row's expanded state.
func (v *Visibility) Set(rowID string, expanded bool) { v.expanded[rowID] = expanded }

// ApplyPreset overwrites the whole map from a detail-level preset: summary
// collapses everything, medium expands top-level sections, full expands
// every expandable row.
func (v *Visibility) ApplyPreset(level DetailLevel, groups []model.Group) {
	v.expanded = make(map[string]bool, len(groups))
	for _, g := range groups {
		if !g.Expandable {
			continue
		}
		switch level {
		case DetailFull:
			v.expanded[rowID(g.Label)] = true
		case DetailMedium:
			v.expanded[rowID(g.Label)] = g.Level == 0
		default:
			v.expanded[rowID(g.Label)] = false
		}
	}
}

// VisibleRows filters a built row list down to the rows a rendering layer
// should show: a row is visible iff it has no parent, or its parent is
// expanded and itself visible. A collapsed ancestor hides all descendants
// regardless of their own expand flags.
func VisibleRows(rows []model.Row, v *Visibility) []model.Row {
	byLabel := make(map[string]model.Row, len(rows))
	for _, r := range rows {
		if r.Label != "" {
			byLabel[r.Label] = r
		}
	}

	var visible func(r model.Row, seen map[string]bool) bool
	visible = func(r model.Row, seen map[string]bool) bool {
		if r.Parent == "" {
			return true
		}
		if seen[r.Label] {
			return false // parent cycle in config
		}
		seen[r.Label] = true
		parent, ok := byLabel[r.Parent]
		if !ok {
			return false
		}
		return v.Expanded(parent.ID) && visible(parent, seen)
	}

	var out []model.Row
	for _, r := range rows {
		if visible(r, make(map[string]bool)) {
			out = append(out, r)
		}
	}
	return out
}
