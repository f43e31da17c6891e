package search

import (
	"context"
	"strings"
	"time"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/pages"
)

// Indexer builds search documents out of catalog trees and loaded documents.
type Indexer struct {
	store *Store
}

func NewIndexer(store *Store) *Indexer {
	return &Indexer{store: store}
}

// IndexMenu replaces the menu documents of a category with documents built
// from the given tree. Containers and leaves are both indexed so that a
// search can land on a chapter as well as on a single page.
func (ix *Indexer) IndexMenu(ctx context.Context, category string, tree []*catalog.Node) error {
	if err := ix.store.DeleteCategory(ctx, category, SourceMenu); err != nil {
		return err
	}
	docs := MenuDocuments(category, tree)
	return ix.store.AddDocuments(ctx, docs)
}

// IndexPage adds documents for the section media attached to a document.
// Media texts are short instructional snippets, one document per section.
func (ix *Indexer) IndexPage(ctx context.Context, category string, page *pages.Page) error {
	docs := MediaDocuments(category, page)
	return ix.store.AddDocuments(ctx, docs)
}

// MenuDocuments flattens a catalog tree into search documents. The content
// of each document is the node label prefixed with its ancestor labels, so
// that "Objem" indexed under "Veličiny" can be found by either term.
func MenuDocuments(category string, tree []*catalog.Node) []Document {
	var docs []Document
	now := time.Now()

	var visit func(nodes []*catalog.Node, trail []string, slugs []string)
	visit = func(nodes []*catalog.Node, trail []string, slugs []string) {
		for _, n := range nodes {
			if n.Label == "" {
				continue
			}
			labels := append(append([]string{}, trail...), n.Label)
			path := append(append([]string{}, slugs...), nodeSegment(n))

			docs = append(docs, Document{
				ID:      category + ":menu:" + n.ID,
				Content: strings.Join(labels, " / "),
				Metadata: Metadata{
					Category:    category,
					Path:        strings.Join(path, "/"),
					Source:      SourceMenu,
					DocType:     string(n.DocType),
					LastUpdated: now,
				},
			})

			visit(n.Children, labels, path)
		}
	}
	visit(tree, nil, nil)

	return docs
}

// MediaDocuments builds one document per media section of a page, combining
// the section heading with the step names and narration texts.
func MediaDocuments(category string, page *pages.Page) []Document {
	var docs []Document
	now := time.Now()

	for _, section := range page.SectionImages {
		parts := []string{section.Heading}
		if section.Sequence != nil {
			if section.Sequence.Intro != "" {
				parts = append(parts, section.Sequence.Intro)
			}
			for _, step := range section.Sequence.Steps {
				if step.Name != "" {
					parts = append(parts, step.Name)
				}
				if step.Text != "" {
					parts = append(parts, step.Text)
				}
			}
		}
		content := strings.TrimSpace(strings.Join(parts, "\n"))
		if content == "" {
			continue
		}

		docs = append(docs, Document{
			ID:      category + ":media:" + page.Slug + ":" + section.ID,
			Content: content,
			Metadata: Metadata{
				Category:    category,
				Path:        page.Slug,
				Source:      SourceMedia,
				DocType:     string(page.DocType),
				PageSlug:    page.Slug,
				LastUpdated: now,
			},
		})
	}

	return docs
}

func nodeSegment(n *catalog.Node) string {
	if n.Slug != "" {
		if i := strings.LastIndex(n.Slug, "/"); i >= 0 {
			return n.Slug[i+1:]
		}
		return n.Slug
	}
	return n.ID
}
