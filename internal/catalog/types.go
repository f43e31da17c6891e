// Package catalog loads, normalizes, and caches the hierarchical content
// catalog (folders, workbooks, pages, boards) for each top-level category.
package catalog

import (
	"strings"

	"github.com/ucimeto/ucimeto/internal/textnorm"
)

// Kind identifies the structural role of a catalog node.
type Kind string

const (
	KindFolder   Kind = "folder"
	KindWorkbook Kind = "workbook"
	KindPage     Kind = "page"
	KindBoard    Kind = "board"
	KindLink     Kind = "link"
)

// DocType is the document sub-type carried by page nodes. It is used for
// grouping, ordering, and icon selection, and to recognize board content.
type DocType string

const (
	DocLesson      DocType = "lesson"
	DocWorksheet   DocType = "worksheet"
	DocTextbook    DocType = "textbook"
	DocExperiment  DocType = "experiment"
	DocMethodology DocType = "methodology"
	DocTest        DocType = "test"
	DocExam        DocType = "exam"
	DocPractice    DocType = "practice"
)

// PageRef is a flat workbook page reference, expanded into a synthesized
// child node by the workbook expansion pass.
type PageRef struct {
	PageNumber string `json:"pageNumber"`
	PageID     string `json:"pageId"`
}

// Node is one entry in the content catalog tree.
//
// Slug may be absent (folder-only groupings), may itself contain "/"
// (legacy full-path slugs), and is not unique across depths. Children is
// present (possibly empty) for containers and absent for leaf pages.
type Node struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Slug        string    `json:"slug,omitempty"`
	Kind        Kind      `json:"kind,omitempty"`
	DocType     DocType   `json:"docType,omitempty"`
	ExternalURL string    `json:"externalUrl,omitempty"`
	Children    []*Node   `json:"children,omitempty"`
	PageRefs    []PageRef `json:"pages,omitempty"`
	PageNumber  string    `json:"pageNumber,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Color       string    `json:"color,omitempty"`
}

// kindAliases maps legacy type markers still present in older catalog data
// onto the current kinds.
var kindAliases = map[Kind]Kind{
	"dir":      KindFolder,
	"slozka":   KindFolder,
	"sesit":    KindWorkbook,
	"stranka":  KindPage,
	"external": KindLink,
}

// NormalKind returns the node's kind with legacy aliases resolved.
func (n *Node) NormalKind() Kind {
	if k, ok := kindAliases[n.Kind]; ok {
		return k
	}
	return n.Kind
}

// IsContainer reports whether the node is folder-like: it has a children
// array (possibly empty) or an explicit folder/workbook kind.
func (n *Node) IsContainer() bool {
	if n.Children != nil {
		return true
	}
	k := n.NormalKind()
	return k == KindFolder || k == KindWorkbook
}

// Matches reports whether the node matches a URL path segment, using the
// documented priority: normalized slug, normalized last slug segment,
// normalized label, raw id.
func (n *Node) Matches(segment string) bool {
	want := textnorm.Normalize(segment)
	if want == "" {
		return false
	}
	if n.Slug != "" {
		if textnorm.Normalize(n.Slug) == want {
			return true
		}
		if i := strings.LastIndex(n.Slug, "/"); i >= 0 {
			if textnorm.Normalize(n.Slug[i+1:]) == want {
				return true
			}
		}
	}
	if textnorm.Normalize(n.Label) == want {
		return true
	}
	return n.ID == segment
}

// FindByID returns the first node with the given id in root-to-leaf,
// listed-order traversal, or nil.
func FindByID(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := FindByID(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// AncestorsOf returns the ids of the ancestors of the node with the given
// id, root first, and whether the node was found.
func AncestorsOf(nodes []*Node, id string) ([]string, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return nil, true
		}
		if chain, ok := AncestorsOf(n.Children, id); ok {
			return append([]string{n.ID}, chain...), true
		}
	}
	return nil, false
}
