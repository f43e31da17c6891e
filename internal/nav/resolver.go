// Package nav resolves slash-delimited URL paths against a catalog tree and
// maintains the accordion expansion state of the tree UI.
package nav

import (
	"strings"

	"github.com/ucimeto/ucimeto/internal/catalog"
)

// Resolution is the outcome of resolving a path against a tree.
type Resolution struct {
	// Node is the matched node, nil when nothing matched.
	Node *catalog.Node `json:"node,omitempty"`
	// Ancestors are the ids of the matched node's ancestors, root first.
	Ancestors []string `json:"ancestors"`
	// Expanded is the navigation-driven expansion set: the ancestor chain,
	// plus the matched node itself when it has a folder-like child.
	Expanded []string `json:"expanded"`
	// Board is set when the matched node is board content and must be
	// shown in the board viewer instead of an in-tree document view.
	Board *BoardRoute `json:"board,omitempty"`
}

// Resolve finds the tree node addressed by a slash-delimited path.
//
// It first walks the tree segment by segment, tolerating intermediate
// container nodes that the URL omits. If that fails (opaque ids, legacy
// full-path slugs), it falls back to a whole-tree search by the last
// segment alone. Ties break in traversal order: root to leaf, children in
// listed order.
func Resolve(tree []*catalog.Node, path string) *Resolution {
	res := &Resolution{Ancestors: []string{}, Expanded: []string{}}

	segments := splitPath(path)
	if len(segments) == 0 || len(tree) == 0 {
		return res
	}

	node, chain, ok := walk(tree, segments, nil)
	if !ok {
		node, chain, ok = searchBySegment(tree, segments[len(segments)-1], nil)
	}
	if !ok {
		return res
	}

	res.Node = node
	res.Ancestors = chain
	res.Expanded = append(res.Expanded, chain...)
	if hasContainerChild(node) {
		res.Expanded = append(res.Expanded, node.ID)
	}
	res.Board = boardRoute(node)
	return res
}

func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// walk consumes path segments depth-first. Matching is always scoped to the
// currently considered subtree; a segment that fails to match at this level
// may still match after descending through a non-matching container without
// consuming it.
func walk(nodes []*catalog.Node, segments []string, chain []string) (*catalog.Node, []string, bool) {
	// First, nodes that consume the head segment.
	for _, n := range nodes {
		if !n.Matches(segments[0]) {
			continue
		}
		if len(segments) == 1 {
			return n, chain, true
		}
		if len(n.Children) > 0 {
			if node, c, ok := walk(n.Children, segments[1:], extend(chain, n.ID)); ok {
				return node, c, ok
			}
		}
	}
	// Then, containers descended through without consuming the segment.
	for _, n := range nodes {
		if n.Matches(segments[0]) || len(n.Children) == 0 {
			continue
		}
		if node, c, ok := walk(n.Children, segments, extend(chain, n.ID)); ok {
			return node, c, ok
		}
	}
	return nil, nil, false
}

// searchBySegment is the last-resort whole-tree search by a single segment.
// The ancestor chain it accumulates is whatever path the traversal took,
// which may not correspond to the URL at all.
func searchBySegment(nodes []*catalog.Node, segment string, chain []string) (*catalog.Node, []string, bool) {
	for _, n := range nodes {
		if n.Matches(segment) {
			return n, append([]string{}, chain...), true
		}
		if len(n.Children) > 0 {
			if node, c, ok := searchBySegment(n.Children, segment, extend(chain, n.ID)); ok {
				return node, c, ok
			}
		}
	}
	return nil, nil, false
}

// hasContainerChild reports whether any direct child is itself folder-like.
// Nodes containing only leaf pages are highlighted but not auto-expanded.
func hasContainerChild(n *catalog.Node) bool {
	for _, c := range n.Children {
		if c.IsContainer() {
			return true
		}
	}
	return false
}

func extend(chain []string, id string) []string {
	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	return append(next, id)
}
