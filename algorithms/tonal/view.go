package tonal

// ViewContext is caller-owned display state: filters, collapsed groups and the chord
// the user last picked. Components never hold one; it is passed in by pointer.
type ViewContext struct {
	MinGrade      Grade           `json:"min_grade"`
	MaxComplexity Complexity      `json:"max_complexity"`
	Collapsed     map[string]bool `json:"collapsed,omitempty"`
	Selected      string          `json:"selected,omitempty"` // Symbol of the selected chord
}

// NewViewContext shows everything with all groups open
func NewViewContext() *ViewContext {
	return &ViewContext{
		MinGrade:      Experimental,
		MaxComplexity: Extended,
		Collapsed:     make(map[string]bool),
	}
}

// ToggleGroup flips a group between open and collapsed and returns whether it is now open
func (v *ViewContext) ToggleGroup(name string) bool {
	if v.Collapsed == nil {
		v.Collapsed = make(map[string]bool)
	}
	if v.Collapsed[name] {
		delete(v.Collapsed, name)
		return true
	}
	v.Collapsed[name] = true
	return false
}

// IsOpen reports whether a group is expanded
func (v *ViewContext) IsOpen(name string) bool {
	return !v.Collapsed[name]
}

// Select remembers the chosen chord symbol
func (v *ViewContext) Select(symbol string) {
	v.Selected = symbol
}

// SelectedResult finds the selected chord among groups
func (v *ViewContext) SelectedResult(groups []Group) (GradedResult, bool) {
	if v.Selected == "" {
		return GradedResult{}, false
	}
	for _, g := range groups {
		for _, r := range g.Results {
			if r.Chord.Symbol == v.Selected {
				return r, true
			}
		}
	}
	return GradedResult{}, false
}

// ApplyView filters groups by grade and complexity. Groups left empty are dropped;
// collapsed groups keep their count but carry no results. The input is not modified.
func ApplyView(groups []Group, v *ViewContext) []Group {
	if v == nil {
		return groups
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		var kept []GradedResult
		for _, r := range g.Results {
			if r.Grade < v.MinGrade || r.Complexity > v.MaxComplexity {
				continue
			}
			kept = append(kept, r)
		}
		if len(kept) == 0 {
			continue
		}

		view := Group{Name: g.Name, Count: len(kept)}
		if v.IsOpen(g.Name) {
			view.Results = kept
		} else {
			view.Collapsed = true
		}
		out = append(out, view)
	}
	return out
}
