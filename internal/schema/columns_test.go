package schema

import "testing"

func TestLeafCount(t *testing.T) {
	tests := []struct {
		name string
		tree []ExportColumn
		want int
	}{
		{"empty tree", nil, 0},
		{"single leaf", []ExportColumn{{Key: "a"}}, 1},
		{"nested", testTree, 4},
		{"meters", MeterColumns, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeafCount(tt.tree); got != tt.want {
				t.Errorf("LeafCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLeafKeys_PreOrder(t *testing.T) {
	keys := LeafKeys(testTree)
	want := []string{"details.a", "details.nested.b", "details.nested.c", "top"}

	if len(keys) != len(want) {
		t.Fatalf("LeafKeys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("LeafKeys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

// Leaf keys must be unique within each entity tree; the selection map
// is keyed by them and collisions are undefined behavior.
func TestEntityTrees_LeafKeysUnique(t *testing.T) {
	trees := map[string][]ExportColumn{
		"meters":        MeterColumns,
		"modules":       ModuleColumns,
		"customers":     CustomerColumns,
		"subscriptions": SubscriptionColumns,
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			seen := make(map[string]bool)
			for _, key := range LeafKeys(tree) {
				if seen[key] {
					t.Errorf("duplicate leaf key %q", key)
				}
				seen[key] = true
			}
		})
	}
}

// Group keys are label-only and must never collide with leaf keys.
func TestEntityTrees_GroupKeysPrefixed(t *testing.T) {
	trees := [][]ExportColumn{MeterColumns, ModuleColumns, CustomerColumns, SubscriptionColumns}

	var checkGroups func(t *testing.T, cols []ExportColumn)
	checkGroups = func(t *testing.T, cols []ExportColumn) {
		for _, c := range cols {
			if !c.IsLeaf() {
				if c.Key == "" || c.Key[0] != '_' {
					t.Errorf("group key %q should carry the _ prefix", c.Key)
				}
				checkGroups(t, c.Children)
			}
		}
	}

	for _, tree := range trees {
		checkGroups(t, tree)
	}
}
