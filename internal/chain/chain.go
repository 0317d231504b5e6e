// Package chain walks the family hierarchy from a leaf family to its
// root. The walk is iterative with an explicit visited set and a depth
// bound: the reference hierarchy is normally acyclic, but the builder
// defends against malformed data instead of assuming it.
package chain

import (
	"strings"

	"github.com/pharmtools/pharmaclass/internal/refstore"
)

// Chain is an ordered leaf-to-root traversal of the family hierarchy.
// IDs and Names are parallel sequences. Truncated is set when the walk
// stopped on a repeated id or the depth bound rather than at a root.
type Chain struct {
	IDs       []string
	Names     []string
	Truncated bool
}

// IDPath joins the id sequence with sep in traversal order.
func (c Chain) IDPath(sep string) string {
	return strings.Join(c.IDs, sep)
}

// NamePath joins the name sequence with sep in traversal order.
func (c Chain) NamePath(sep string) string {
	return strings.Join(c.Names, sep)
}

// Build follows parent_family_id pointers starting at familyID. A
// familyID unknown to the store yields an empty chain. maxDepth bounds
// the number of hops; values below 1 walk a single node.
func Build(familyID string, store *refstore.Store, maxDepth int) Chain {
	if maxDepth < 1 {
		maxDepth = 1
	}

	var c Chain
	visited := make(map[string]bool)
	current := familyID

	for current != "" {
		if visited[current] {
			c.Truncated = true
			break
		}
		rec, ok := store.FamilyByID(current)
		if !ok {
			break
		}
		visited[current] = true
		c.IDs = append(c.IDs, rec.FamilyID)
		c.Names = append(c.Names, rec.Name)
		if len(c.IDs) >= maxDepth && rec.ParentFamilyID != "" {
			c.Truncated = true
			break
		}
		current = rec.ParentFamilyID
	}

	return c
}
