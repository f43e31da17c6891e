package nav

import (
	"sort"

	"github.com/ucimeto/ucimeto/internal/catalog"
)

// Controller owns the expansion state for one tree view. Navigation and
// manual clicks follow different rules, but both implement strict
// accordion semantics: the expansion set is always recomputed, never
// merged with its previous value.
type Controller struct {
	tree     []*catalog.Node
	expanded map[string]bool
}

// NewController creates a controller over the given tree.
func NewController(tree []*catalog.Node) *Controller {
	return &Controller{tree: tree, expanded: make(map[string]bool)}
}

// Navigate resolves a path and replaces the expansion state with exactly
// the resolved node's ancestor chain (plus the node itself when it has a
// folder-like child).
func (c *Controller) Navigate(path string) *Resolution {
	res := Resolve(c.tree, path)
	c.expanded = make(map[string]bool, len(res.Expanded))
	for _, id := range res.Expanded {
		c.expanded[id] = true
	}
	return res
}

// Toggle handles a manual click on a node. Closing removes just that id;
// opening sets the expansion to exactly the node's own ancestor chain plus
// the node, collapsing every unrelated branch.
func (c *Controller) Toggle(id string) {
	if c.expanded[id] {
		delete(c.expanded, id)
		return
	}
	next := make(map[string]bool)
	if chain, ok := catalog.AncestorsOf(c.tree, id); ok {
		for _, a := range chain {
			next[a] = true
		}
		next[id] = true
	}
	c.expanded = next
}

// IsExpanded reports whether a node is currently rendered open.
func (c *Controller) IsExpanded(id string) bool {
	return c.expanded[id]
}

// Expanded returns the current expansion set, sorted for stable output.
func (c *Controller) Expanded() []string {
	out := make([]string, 0, len(c.expanded))
	for id := range c.expanded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
