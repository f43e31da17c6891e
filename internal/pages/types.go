// Package pages fetches document records from the content service and
// caches them for the lifetime of the process.
package pages

import (
	"errors"
	"fmt"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/mediasync"
)

// Page is one document record.
type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	// Content is raw HTML or Markdown; the renderer decides which.
	Content     string          `json:"content"`
	DocType     catalog.DocType `json:"documentType,omitempty"`
	ExternalURL string          `json:"externalUrl,omitempty"`
	CoverImage  string          `json:"coverImage,omitempty"`
	// SectionImages are the media attachments keyed by heading text.
	SectionImages []mediasync.SectionMedia `json:"sectionImages,omitempty"`
	// PageRefs is set for workbook records.
	PageRefs []catalog.PageRef `json:"pages,omitempty"`
}

// ErrNotFound marks a document the service does not have. Callers resolve
// it against the catalog (synthesizing a workbook or folder view) instead
// of surfacing an error.
var ErrNotFound = errors.New("page not found")

// LoadError is a transport or decode failure, distinct from ErrNotFound so
// policy layers can choose how to degrade.
type LoadError struct {
	Slug string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading page %q: %v", e.Slug, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
