package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDropCorrupt(t *testing.T) {
	tree := []*Node{
		{ID: "f1", Label: "Nová stránka", Kind: KindFolder, Children: []*Node{
			{ID: "p1", Label: "Hmota"},
			{ID: "p2", Label: "Nová stránka"},
		}},
		{ID: "p3", Label: "Nová stránka"},
		{ID: "p4", Label: "Částice"},
	}

	out := Normalize(tree, AudienceFull)

	if len(out) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(out))
	}
	if out[0].ID != "f1" {
		t.Errorf("folder with placeholder label should survive, got %q first", out[0].ID)
	}
	if len(out[0].Children) != 1 || out[0].Children[0].ID != "p1" {
		t.Errorf("placeholder leaf inside folder should be dropped, got %+v", out[0].Children)
	}
	if out[1].ID != "p4" {
		t.Errorf("expected p4 to survive, got %q", out[1].ID)
	}
}

func TestAudienceFilter(t *testing.T) {
	tree := []*Node{
		{ID: "f1", Label: "Hmota", Kind: KindFolder, Children: []*Node{
			{ID: "p1", Label: "Úvod"},
			{ID: "p2", Label: "Řešení úloh"},
			{ID: "p3", Label: "Velká PÍSEMKA"},
			{ID: "p4", Label: "TEST z hmoty"},
		}},
		{ID: "f2", Label: "Metodika pro učitele", Kind: KindFolder, Children: []*Node{
			{ID: "p5", Label: "Postupy"},
		}},
	}

	out := Normalize(tree, AudienceStudent)

	if len(out) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(out))
	}
	if len(out[0].Children) != 1 || out[0].Children[0].ID != "p1" {
		t.Errorf("blocked children should be removed, got %+v", out[0].Children)
	}

	// Full audience keeps everything.
	full := Normalize(tree, AudienceFull)
	if len(full) != 2 || len(full[0].Children) != 4 {
		t.Errorf("full audience should keep all nodes")
	}
}

func TestWorkbookExpansion(t *testing.T) {
	tree := []*Node{
		{ID: "w1", Label: "Pracovní sešit", Kind: KindWorkbook, PageRefs: []PageRef{
			{PageNumber: "2", PageID: "X"},
			{PageNumber: "1", PageID: "Y"},
		}},
		{ID: "X", Label: "str. 7 Měření délky", Slug: "mereni-delky", CoverImage: "x.png"},
		{ID: "Y", Label: "Objem", Slug: "objem"},
	}

	out := Normalize(tree, AudienceFull)

	wb := out[0]
	if len(wb.Children) != 2 {
		t.Fatalf("expected 2 synthesized children, got %d", len(wb.Children))
	}
	if wb.Children[0].ID != "Y" || wb.Children[1].ID != "X" {
		t.Fatalf("children not ordered by page number: %q, %q", wb.Children[0].ID, wb.Children[1].ID)
	}
	if wb.Children[0].Label != "str. 1 Objem" {
		t.Errorf("unexpected label: %q", wb.Children[0].Label)
	}
	if wb.Children[1].Label != "str. 2 Měření délky" {
		t.Errorf("existing page prefix should be stripped before re-adding: %q", wb.Children[1].Label)
	}
	if wb.Children[1].Slug != "mereni-delky" || wb.Children[1].CoverImage != "x.png" {
		t.Errorf("slug/cover should be resolved from the referenced page: %+v", wb.Children[1])
	}
	if wb.Children[0].PageNumber != "1" {
		t.Errorf("page number should be carried: %q", wb.Children[0].PageNumber)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		node Node
		seg  string
		want bool
	}{
		{Node{Slug: "castice-hmoty"}, "castice-hmoty", true},
		{Node{Slug: "zaklady/hmota/castice-hmoty"}, "castice-hmoty", true},
		{Node{Label: "Částice hmoty"}, "castice hmoty", true},
		{Node{ID: "abc-123"}, "abc-123", true},
		{Node{Slug: "hmota", Label: "Hmota"}, "energie", false},
		{Node{}, "", false},
	}
	for _, tt := range tests {
		if got := tt.node.Matches(tt.seg); got != tt.want {
			t.Errorf("Matches(%+v, %q) = %v, want %v", tt.node, tt.seg, got, tt.want)
		}
	}
}

type stubFetcher struct {
	calls int
	tree  []*Node
	err   error
}

func (f *stubFetcher) FetchMenu(ctx context.Context, category string) ([]*Node, error) {
	f.calls++
	return f.tree, f.err
}

func TestServiceCacheTTL(t *testing.T) {
	fetcher := &stubFetcher{tree: []*Node{{ID: "a", Label: "A"}}}
	svc := NewService(fetcher, AudienceFull)

	now := time.Now()
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	svc.Load(ctx, "fyzika")
	svc.Load(ctx, "fyzika")
	if fetcher.calls != 1 {
		t.Fatalf("expected 1 fetch within TTL, got %d", fetcher.calls)
	}

	// A different category is a separate cache slot.
	svc.Load(ctx, "chemie")
	if fetcher.calls != 2 {
		t.Fatalf("expected separate fetch per category, got %d", fetcher.calls)
	}

	now = now.Add(cacheTTL + time.Second)
	svc.Load(ctx, "fyzika")
	if fetcher.calls != 3 {
		t.Fatalf("expected refetch after TTL, got %d", fetcher.calls)
	}
}

func TestServiceLoadFailureYieldsEmptyTree(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	svc := NewService(fetcher, AudienceFull)

	tree := svc.Load(context.Background(), "fyzika")
	if len(tree) != 0 {
		t.Fatalf("expected empty tree on failure, got %d nodes", len(tree))
	}

	// Failures are not cached.
	svc.Load(context.Background(), "fyzika")
	if fetcher.calls != 2 {
		t.Errorf("failed load should not populate the cache, calls=%d", fetcher.calls)
	}
}

func TestServiceRefreshHook(t *testing.T) {
	fetcher := &stubFetcher{tree: []*Node{{ID: "a", Label: "A"}}}
	svc := NewService(fetcher, AudienceFull)

	var refreshed []string
	svc.OnRefresh(func(category string) { refreshed = append(refreshed, category) })

	svc.Load(context.Background(), "fyzika")
	svc.Load(context.Background(), "fyzika") // cached, no hook
	if len(refreshed) != 1 || refreshed[0] != "fyzika" {
		t.Errorf("expected one refresh event for fyzika, got %v", refreshed)
	}
}

func TestClientFetchMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "fyzika" {
			t.Errorf("unexpected category %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer anon-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"menu":[{"id":"a","label":"A","children":[{"id":"b","label":"B"}]}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")
	tree, err := client.FetchMenu(context.Background(), "fyzika")
	if err != nil {
		t.Fatalf("FetchMenu: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "a" || len(tree[0].Children) != 1 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
	if !tree[0].IsContainer() {
		t.Error("node with children should be a container")
	}
}

func TestClientFetchMenuErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.FetchMenu(context.Background(), "fyzika"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
