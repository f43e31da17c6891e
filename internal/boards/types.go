// Package boards generates and stores quiz/test boards for documents. A
// board is the interactive content the navigation core routes to via the
// board:// scheme and the board_<slug> id convention.
package boards

import (
	"time"

	"github.com/ucimeto/ucimeto/internal/catalog"
)

// QuestionType enumerates the supported question forms.
type QuestionType string

const (
	QuestionChoice QuestionType = "choice"
	QuestionOpen   QuestionType = "open"
	QuestionPairs  QuestionType = "pairs"
)

// Pair is one left/right match in a pairing question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is one generated quiz question.
type Question struct {
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	Correct int          `json:"correct,omitempty"`
	Answer  string       `json:"answer,omitempty"`
	Pairs   []Pair       `json:"pairs,omitempty"`
}

// Board is a generated quiz bound to a document.
type Board struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	PageSlug  string          `json:"pageSlug"`
	Title     string          `json:"title"`
	Kind      catalog.DocType `json:"kind"` // test, exam, or practice
	Questions []Question      `json:"questions"`
	Model     string          `json:"model,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
