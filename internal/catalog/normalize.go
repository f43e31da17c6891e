package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ucimeto/ucimeto/internal/textnorm"
)

// Audience selects which normalization passes apply when loading a tree.
type Audience string

const (
	AudienceFull    Audience = "full"
	AudienceStudent Audience = "student"
)

// corruptLabel is the placeholder label left behind by a known upstream
// editor defect. Leaves carrying it are dropped; folders are kept.
const corruptLabel = "Nová stránka"

// blockedKeywords are matched (normalized, substring) against labels when
// filtering for a student audience.
var blockedKeywords = []string{
	"reseni",
	"test",
	"pisemka",
	"zkouseni",
	"metodika",
	"metodicky",
}

// pageNumPrefix matches an existing "str. N" label prefix so workbook
// expansion can strip it before regenerating its own.
var pageNumPrefix = regexp.MustCompile(`^str\.\s*\d+\.?\s*[-–]?\s*`)

// Normalize applies the normalization passes to a freshly fetched tree:
// the corruption filter, the audience filter (student mode only), and
// workbook expansion. The input slice is not mutated.
func Normalize(nodes []*Node, audience Audience) []*Node {
	out := dropCorrupt(nodes)
	if audience == AudienceStudent {
		out = filterBlocked(out)
	}
	expandWorkbooks(out, out)
	return out
}

// dropCorrupt removes leaf nodes whose label exactly equals the corrupt
// placeholder and which have no children. Folders are preserved and
// recursed into.
func dropCorrupt(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Label == corruptLabel && len(n.Children) == 0 && !n.IsContainer() {
			continue
		}
		m := *n
		if n.Children != nil {
			m.Children = dropCorrupt(n.Children)
		}
		out = append(out, &m)
	}
	return out
}

// filterBlocked removes nodes whose label contains a blocked keyword,
// together with all their descendants. Surviving folders are recursed into.
func filterBlocked(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if labelBlocked(n.Label) {
			continue
		}
		m := *n
		if n.Children != nil {
			m.Children = filterBlocked(n.Children)
		}
		out = append(out, &m)
	}
	return out
}

func labelBlocked(label string) bool {
	norm := textnorm.Normalize(label)
	for _, kw := range blockedKeywords {
		if strings.Contains(norm, kw) {
			return true
		}
	}
	return false
}

// expandWorkbooks synthesizes children for workbook nodes that carry flat
// page references instead of real children. References are sorted by page
// number and cross-referenced against the whole tree by page id, so edits
// to the referenced pages are reflected on the next load.
func expandWorkbooks(nodes []*Node, root []*Node) {
	for _, n := range nodes {
		if n.NormalKind() == KindWorkbook && len(n.PageRefs) > 0 && len(n.Children) == 0 {
			n.Children = synthesizePages(n.PageRefs, root)
		}
		expandWorkbooks(n.Children, root)
	}
}

func synthesizePages(refs []PageRef, root []*Node) []*Node {
	sorted := append([]PageRef(nil), refs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, aerr := strconv.Atoi(strings.TrimSpace(sorted[i].PageNumber))
		b, berr := strconv.Atoi(strings.TrimSpace(sorted[j].PageNumber))
		if aerr == nil && berr == nil {
			return a < b
		}
		return sorted[i].PageNumber < sorted[j].PageNumber
	})

	children := make([]*Node, 0, len(sorted))
	for _, ref := range sorted {
		child := &Node{
			ID:         ref.PageID,
			Kind:       KindPage,
			DocType:    DocWorksheet,
			PageNumber: ref.PageNumber,
		}
		label := ""
		if src := FindByID(root, ref.PageID); src != nil {
			label = pageNumPrefix.ReplaceAllString(src.Label, "")
			child.Slug = src.Slug
			child.CoverImage = src.CoverImage
			if src.DocType != "" {
				child.DocType = src.DocType
			}
		}
		child.Label = strings.TrimSpace(fmt.Sprintf("str. %s %s", ref.PageNumber, label))
		children = append(children, child)
	}
	return children
}
