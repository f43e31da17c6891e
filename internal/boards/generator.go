package boards

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/llm"
	"github.com/ucimeto/ucimeto/internal/pages"
)

// maxSourceLen bounds how much document text is sent to the model.
const maxSourceLen = 12000

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Generator produces quiz boards from document content.
type Generator struct {
	provider llm.Provider
	model    string
}

// NewGenerator creates a generator using the given provider and model.
func NewGenerator(provider llm.Provider, model string) *Generator {
	return &Generator{provider: provider, model: model}
}

// generatedBoard is the JSON shape the model is asked to produce.
type generatedBoard struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Generate builds a board of the given kind from a document. The board id
// follows the board_<slug> convention so the navigation core routes to it.
func (g *Generator) Generate(ctx context.Context, category string, page *pages.Page, kind catalog.DocType, count int) (*Board, error) {
	if count <= 0 {
		count = 5
	}

	source := tagRe.ReplaceAllString(page.Content, " ")
	if len(source) > maxSourceLen {
		source = source[:maxSourceLen]
	}

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: userPrompt(page.Title, source, string(kind), count)},
		},
		Temperature: 0.4,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating board for %q: %w", page.Slug, err)
	}

	var gen generatedBoard
	if err := json.Unmarshal([]byte(resp.Content), &gen); err != nil {
		return nil, fmt.Errorf("decoding generated board for %q: %w", page.Slug, err)
	}
	if len(gen.Questions) == 0 {
		return nil, fmt.Errorf("generated board for %q has no questions", page.Slug)
	}
	if gen.Title == "" {
		gen.Title = page.Title
	}

	return &Board{
		ID:        boardID(page),
		Category:  category,
		PageSlug:  page.Slug,
		Title:     gen.Title,
		Kind:      kind,
		Questions: gen.Questions,
		Model:     resp.Model,
	}, nil
}

// boardID synthesizes the conventional id: board_<slug>, or a random id
// for slugless documents.
func boardID(page *pages.Page) string {
	if page.Slug != "" {
		return "board_" + page.Slug
	}
	return "board_" + uuid.New().String()
}

const systemPrompt = `You are a teacher preparing quizzes from lesson material. ` +
	`Respond with a single JSON object: {"title": string, "questions": [...]}. ` +
	`Each question is {"type": "choice"|"open"|"pairs", "prompt": string, ` +
	`"options": [string], "correct": int, "answer": string, "pairs": [{"left": string, "right": string}]}. ` +
	`Use only facts present in the material. Write in the language of the material.`

func userPrompt(title, source, kind string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d questions of kind %q for the lesson %q.\n\n", count, kind, title)
	b.WriteString("Lesson material:\n\n")
	b.WriteString(source)
	return b.String()
}
