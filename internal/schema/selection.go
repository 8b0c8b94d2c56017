package schema

// Selection maps leaf column keys to whether the column is included in an
// export. The map may be partial: an absent key reads as false. Selections
// live only for the duration of an export dialog; nothing persists them.
type Selection map[string]bool

// AggregateState is the tri-state status of a group column derived from
// its leaf descendants.
type AggregateState int

const (
	Unchecked AggregateState = iota
	Checked
	Indeterminate
)

// String returns the wire name of the state.
func (s AggregateState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// NewSelection returns a selection with every leaf of the tree selected,
// the state an export dialog opens with.
func NewSelection(tree []ExportColumn) Selection {
	sel := make(Selection)
	for _, key := range LeafKeys(tree) {
		sel[key] = true
	}
	return sel
}

// Aggregate computes the tri-state status of a column from sel. For a
// leaf the result is Checked or Unchecked from its own key; for a group
// it is Checked when every leaf descendant is selected, Unchecked when
// none is, Indeterminate otherwise.
func Aggregate(c ExportColumn, sel Selection) AggregateState {
	leaves := c.Leaves()
	selected := 0
	for _, l := range leaves {
		if sel[l.Key] {
			selected++
		}
	}
	switch selected {
	case 0:
		return Unchecked
	case len(leaves):
		return Checked
	default:
		return Indeterminate
	}
}

// ToggleLeaf returns a copy of sel with the single leaf key flipped.
func ToggleLeaf(sel Selection, key string) Selection {
	next := sel.clone()
	next[key] = !next[key]
	return next
}

// ToggleGroup returns a copy of sel with every leaf descendant of c set
// according to the group's current aggregate: a Checked group clears all
// its leaves; Unchecked or Indeterminate sets them all. Indeterminate
// resolves to select-all, so a mixed group becomes fully selected on the
// first toggle.
func ToggleGroup(c ExportColumn, sel Selection) Selection {
	target := Aggregate(c, sel) != Checked
	next := sel.clone()
	for _, l := range c.Leaves() {
		next[l.Key] = target
	}
	return next
}

// SelectedCount returns the number of keys mapped to true.
func (sel Selection) SelectedCount() int {
	n := 0
	for _, v := range sel {
		if v {
			n++
		}
	}
	return n
}

// SelectedKeys returns the selected leaf keys in the tree's pre-order,
// the order export headers are emitted in.
func SelectedKeys(tree []ExportColumn, sel Selection) []string {
	var keys []string
	for _, key := range LeafKeys(tree) {
		if sel[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

func (sel Selection) clone() Selection {
	next := make(Selection, len(sel))
	for k, v := range sel {
		next[k] = v
	}
	return next
}

// Expansion tracks which group nodes are expanded in a column tree view.
// It is keyed by node key and entirely independent of selection state.
type Expansion map[string]bool

// DefaultExpansion expands first-level groups only, the state a column
// tree mounts with. Deeper groups start collapsed.
func DefaultExpansion(tree []ExportColumn) Expansion {
	exp := make(Expansion)
	for _, c := range tree {
		if !c.IsLeaf() {
			exp[c.Key] = true
		}
	}
	return exp
}
