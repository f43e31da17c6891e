package boards

import (
	"context"
	"fmt"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/pages"
	"github.com/ucimeto/ucimeto/internal/progress"
)

// BulkResult summarizes a bulk generation run.
type BulkResult struct {
	Generated int
	Skipped   int
	Failed    []string
}

// BulkGenerate creates a practice board for every lesson and worksheet
// leaf in a category. Documents without a slug or without a fetchable
// record are skipped; generation failures are collected, not fatal.
func BulkGenerate(ctx context.Context, cat *catalog.Service, pageSvc *pages.Service, gen *Generator, store *Store, category string, reporter progress.Reporter) (*BulkResult, error) {
	tree := cat.Load(ctx, category)
	if len(tree) == 0 {
		return nil, fmt.Errorf("category %q has no loaded catalog", category)
	}

	var targets []*catalog.Node
	collectLessonLeaves(tree, &targets)

	result := &BulkResult{}
	reporter.Start(len(targets))
	defer reporter.Finish()

	for i, n := range targets {
		reporter.Update(i+1, n.Label)

		page, err := pageSvc.Get(ctx, category, n.Slug)
		if err != nil {
			result.Skipped++
			continue
		}

		board, err := gen.Generate(ctx, category, page, catalog.DocPractice, 0)
		if err != nil {
			result.Failed = append(result.Failed, n.Slug)
			continue
		}
		if err := store.Save(ctx, board); err != nil {
			result.Failed = append(result.Failed, n.Slug)
			continue
		}
		result.Generated++
	}

	return result, nil
}

func collectLessonLeaves(nodes []*catalog.Node, out *[]*catalog.Node) {
	for _, n := range nodes {
		if !n.IsContainer() && n.Slug != "" {
			switch n.DocType {
			case catalog.DocLesson, catalog.DocWorksheet, "":
				*out = append(*out, n)
			}
		}
		collectLessonLeaves(n.Children, out)
	}
}
