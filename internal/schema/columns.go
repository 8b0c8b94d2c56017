// Package schema defines the exportable column trees and the dynamic
// field specifications for each meter-fleet entity. The column trees
// drive CSV export header selection; the field specs drive row
// validation on bulk import.
package schema

// ExportColumn is a node in an entity's export column tree. A node with
// children is a group (purely organizational, never a data field); a node
// without children is a leaf whose Key is the dotted path into a row
// object, e.g. "details.firstName". Group keys carry a "_" prefix by
// convention and are never used for data lookup.
type ExportColumn struct {
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	Children []ExportColumn `json:"children,omitempty"`
}

// IsLeaf reports whether the column maps to a data field. A group with an
// empty children list degenerates to a leaf for traversal purposes.
func (c ExportColumn) IsLeaf() bool {
	return len(c.Children) == 0
}

// Leaves returns the leaf descendants of c in pre-order. A leaf returns
// itself.
func (c ExportColumn) Leaves() []ExportColumn {
	if c.IsLeaf() {
		return []ExportColumn{c}
	}
	var out []ExportColumn
	for _, child := range c.Children {
		out = append(out, child.Leaves()...)
	}
	return out
}

// TreeLeaves returns all leaf columns of a tree in pre-order.
func TreeLeaves(tree []ExportColumn) []ExportColumn {
	var out []ExportColumn
	for _, c := range tree {
		out = append(out, c.Leaves()...)
	}
	return out
}

// LeafKeys returns the dotted-path keys of all leaves in pre-order.
// Leaf keys are unique per tree; the schema does not deduplicate.
func LeafKeys(tree []ExportColumn) []string {
	leaves := TreeLeaves(tree)
	keys := make([]string, len(leaves))
	for i, l := range leaves {
		keys[i] = l.Key
	}
	return keys
}

// LeafCount returns the number of leaf columns in the tree. Group nodes
// are excluded.
func LeafCount(tree []ExportColumn) int {
	return len(TreeLeaves(tree))
}
