package boards

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/db"
	"github.com/ucimeto/ucimeto/internal/llm"
	"github.com/ucimeto/ucimeto/internal/pages"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func sampleBoard() *Board {
	return &Board{
		ID:       "board_castice",
		Category: "fyzika",
		PageSlug: "castice",
		Title:    "Test: Částice hmoty",
		Kind:     catalog.DocTest,
		Questions: []Question{
			{Type: QuestionChoice, Prompt: "Z čeho se skládá hmota?", Options: []string{"z částic", "z éteru"}, Correct: 0},
		},
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleBoard()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fetched, err := store.GetByID(ctx, "board_castice")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected board, got nil")
	}
	if fetched.Title != "Test: Částice hmoty" || len(fetched.Questions) != 1 {
		t.Errorf("unexpected board: %+v", fetched)
	}
	if fetched.Questions[0].Options[0] != "z částic" {
		t.Errorf("unexpected question: %+v", fetched.Questions[0])
	}
}

func TestStoreSaveReplacesQuestions(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	b := sampleBoard()
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b.Questions = append(b.Questions, Question{Type: QuestionOpen, Prompt: "Popiš difuzi.", Answer: "samovolné pronikání částic"})
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	fetched, _ := store.GetByID(ctx, b.ID)
	if len(fetched.Questions) != 2 {
		t.Errorf("expected 2 questions after regenerate, got %d", len(fetched.Questions))
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := setupTestStore(t)
	board, err := store.GetByID(context.Background(), "board_missing")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if board != nil {
		t.Errorf("expected nil for missing board, got %+v", board)
	}
}

func TestStoreList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.Save(ctx, sampleBoard())
	other := sampleBoard()
	other.ID = "board_hmota"
	other.Category = "chemie"
	store.Save(ctx, other)

	list, err := store.List(ctx, "fyzika")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != "board_castice" {
		t.Errorf("unexpected list: %+v", list)
	}
}

// fakeProvider returns a canned completion.
type fakeProvider struct {
	content string
	lastReq llm.CompletionRequest
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.lastReq = req
	return &llm.CompletionResponse{Content: p.content, Model: "fake-model"}, nil
}

func TestGeneratorGenerate(t *testing.T) {
	provider := &fakeProvider{content: `{"title":"Test: Hmota","questions":[{"type":"choice","prompt":"Co je hmota?","options":["látka","nic"],"correct":0}]}`}
	gen := NewGenerator(provider, "fake-model")

	page := &pages.Page{Slug: "hmota", Title: "Hmota", Content: "<h2>Hmota</h2><p>Hmota se skládá z částic.</p>"}
	board, err := gen.Generate(context.Background(), "fyzika", page, catalog.DocTest, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if board.ID != "board_hmota" {
		t.Errorf("expected conventional board id, got %q", board.ID)
	}
	if board.Kind != catalog.DocTest || len(board.Questions) != 1 {
		t.Errorf("unexpected board: %+v", board)
	}
	if !provider.lastReq.JSONMode {
		t.Error("expected JSON mode request")
	}
	// HTML tags are stripped from the material sent to the model.
	prompt := provider.lastReq.Messages[len(provider.lastReq.Messages)-1].Content
	if strings.Contains(prompt, "<h2>") {
		t.Errorf("prompt should not contain raw HTML: %s", prompt)
	}
}

func TestGeneratorRejectsEmptyQuestions(t *testing.T) {
	provider := &fakeProvider{content: `{"title":"x","questions":[]}`}
	gen := NewGenerator(provider, "m")

	_, err := gen.Generate(context.Background(), "fyzika", &pages.Page{Slug: "s", Content: "text"}, catalog.DocTest, 1)
	if err == nil {
		t.Fatal("expected error for empty question list")
	}
}

type stubPageFetcher struct{ page *pages.Page }

func (f stubPageFetcher) FetchPage(ctx context.Context, category, slug string) (*pages.Page, error) {
	if f.page == nil {
		return nil, pages.ErrNotFound
	}
	return f.page, nil
}

func TestHandleGenerate(t *testing.T) {
	store := setupTestStore(t)
	provider := &fakeProvider{content: `{"title":"Test","questions":[{"type":"open","prompt":"Proč?","answer":"Proto."}]}`}
	gen := NewGenerator(provider, "m")
	pageSvc := pages.NewService(stubPageFetcher{page: &pages.Page{Slug: "hmota", Title: "Hmota", Content: "text"}})

	r := chi.NewRouter()
	RegisterRoutes(r, store, gen, pageSvc)

	body := strings.NewReader(`{"category":"fyzika","slug":"hmota","kind":"test"}`)
	req := httptest.NewRequest("POST", "/api/boards/generate", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 201 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var board Board
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("decoding board: %v", err)
	}
	if board.ID != "board_hmota" {
		t.Errorf("unexpected id %q", board.ID)
	}

	// The generated board is retrievable by its conventional id.
	req = httptest.NewRequest("GET", "/api/boards/board_hmota", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("GET status %d", rec.Code)
	}
}

type nopReporter struct{}

func (nopReporter) Start(int)          {}
func (nopReporter) Update(int, string) {}
func (nopReporter) Finish()            {}

type stubTreeFetcher struct{ tree []*catalog.Node }

func (f stubTreeFetcher) FetchMenu(ctx context.Context, category string) ([]*catalog.Node, error) {
	return f.tree, nil
}

func TestBulkGenerate(t *testing.T) {
	store := setupTestStore(t)
	provider := &fakeProvider{content: `{"title":"T","questions":[{"type":"open","prompt":"?","answer":"!"}]}`}
	gen := NewGenerator(provider, "m")

	tree := []*catalog.Node{
		{ID: "f", Label: "Hmota", Kind: catalog.KindFolder, Children: []*catalog.Node{
			{ID: "p1", Label: "Částice", Slug: "castice", DocType: catalog.DocLesson},
			{ID: "p2", Label: "Bez slugu", DocType: catalog.DocLesson},
		}},
	}
	cat := catalog.NewService(stubTreeFetcher{tree: tree}, catalog.AudienceFull)
	pageSvc := pages.NewService(stubPageFetcher{page: &pages.Page{Slug: "castice", Title: "Částice", Content: "text"}})

	result, err := BulkGenerate(context.Background(), cat, pageSvc, gen, store, "fyzika", nopReporter{})
	if err != nil {
		t.Fatalf("BulkGenerate: %v", err)
	}
	if result.Generated != 1 {
		t.Errorf("expected 1 generated, got %+v", result)
	}

	board, _ := store.GetByID(context.Background(), "board_castice")
	if board == nil {
		t.Error("expected bulk-generated board in store")
	}
}
