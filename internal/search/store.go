package search

import (
	"context"
	"fmt"
	"time"

	chromem "github.com/philippgille/chromem-go"
)

const collectionName = "ucimeto"

// Source identifies where an indexed document came from.
type Source string

const (
	// SourceMenu marks documents built from catalog entries.
	SourceMenu Source = "menu"
	// SourceMedia marks documents built from section media texts.
	SourceMedia Source = "media"
)

// Document represents a piece of content to be stored and searched.
type Document struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Metadata holds structured information about an indexed document.
type Metadata struct {
	Category    string    `json:"category"`
	Path        string    `json:"path,omitempty"`
	Source      Source    `json:"source"`
	DocType     string    `json:"documentType,omitempty"`
	PageSlug    string    `json:"pageSlug,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Result pairs a document with its similarity score.
type Result struct {
	Document   Document `json:"document"`
	Similarity float32  `json:"similarity"`
}

// Filter allows narrowing search results by metadata fields.
type Filter struct {
	Category *string
	Source   *Source
}

// Store holds indexed documents in an in-memory chromem-go collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   Embedder
	embedFunc  chromem.EmbeddingFunc
}

// NewStore creates a new in-memory Store.
func NewStore(embedder Embedder) (*Store, error) {
	db := chromem.NewDB()
	ef := ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Store{
		db:         db,
		collection: col,
		embedder:   embedder,
		embedFunc:  ef,
	}, nil
}

func (s *Store) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

func (s *Store) Search(ctx context.Context, query string, limit int, filter *Filter) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	if count := s.collection.Count(); limit > count && count > 0 {
		limit = count
	} else if count == 0 {
		return nil, nil
	}

	where := buildWhereClause(filter)

	results, err := s.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	searchResults := make([]Result, len(results))
	for i, r := range results {
		searchResults[i] = Result{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}

	return searchResults, nil
}

// DeleteCategory removes all documents of the given source within a category.
// Reindexing a category deletes its stale documents first.
func (s *Store) DeleteCategory(ctx context.Context, category string, source Source) error {
	where := map[string]string{
		"category": category,
		"source":   string(source),
	}
	return s.collection.Delete(ctx, where, nil)
}

func (s *Store) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(dir+"/search.gob.gz", true, "")
}

func (s *Store) Load(ctx context.Context, dir string) error {
	err := s.db.ImportFromFile(dir+"/search.gob.gz", "")
	if err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *Store) Count() int {
	return s.collection.Count()
}

// metadataToMap converts Metadata to a flat map[string]string for chromem.
func metadataToMap(m Metadata) map[string]string {
	return map[string]string{
		"category":     m.Category,
		"path":         m.Path,
		"source":       string(m.Source),
		"doc_type":     m.DocType,
		"page_slug":    m.PageSlug,
		"last_updated": m.LastUpdated.Format(time.RFC3339),
	}
}

// mapToMetadata converts a flat map[string]string back to Metadata.
func mapToMetadata(m map[string]string) Metadata {
	lastUpdated, _ := time.Parse(time.RFC3339, m["last_updated"])

	return Metadata{
		Category:    m["category"],
		Path:        m["path"],
		Source:      Source(m["source"]),
		DocType:     m["doc_type"],
		PageSlug:    m["page_slug"],
		LastUpdated: lastUpdated,
	}
}

// buildWhereClause converts a Filter to a chromem where clause.
func buildWhereClause(filter *Filter) map[string]string {
	if filter == nil {
		return nil
	}

	where := make(map[string]string)
	if filter.Category != nil {
		where["category"] = *filter.Category
	}
	if filter.Source != nil {
		where["source"] = string(*filter.Source)
	}

	if len(where) == 0 {
		return nil
	}
	return where
}
