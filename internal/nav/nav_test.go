package nav

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ucimeto/ucimeto/internal/catalog"
)

func testTree() []*catalog.Node {
	return []*catalog.Node{
		{ID: "zak", Label: "Základy", Slug: "zaklady", Kind: catalog.KindFolder, Children: []*catalog.Node{
			{ID: "hmo", Label: "Hmota", Slug: "hmota", Kind: catalog.KindFolder, Children: []*catalog.Node{
				{ID: "cas", Label: "Částice hmoty", Slug: "castice-hmoty"},
				{ID: "ske", Label: "Skupenství", Slug: "skupenstvi", Children: []*catalog.Node{
					{ID: "led", Label: "Led", Slug: "led"},
				}},
			}},
			{ID: "vel", Label: "Veličiny", Slug: "veliciny", Kind: catalog.KindFolder, Children: []*catalog.Node{
				{ID: "del", Label: "Délka", Slug: "delka"},
			}},
		}},
		{ID: "pok", Label: "Pokusy", Slug: "pokusy", Kind: catalog.KindFolder, Children: []*catalog.Node{
			// Same slug at a different depth as zak/hmo/cas.
			{ID: "cas2", Label: "Částice jinak", Slug: "castice-hmoty"},
			{ID: "uid-1234"},
		}},
	}
}

func TestResolveFullPath(t *testing.T) {
	res := Resolve(testTree(), "zaklady/hmota/castice-hmoty")
	if res.Node == nil || res.Node.ID != "cas" {
		t.Fatalf("expected cas, got %+v", res.Node)
	}
	if !reflect.DeepEqual(res.Ancestors, []string{"zak", "hmo"}) {
		t.Errorf("unexpected ancestors: %v", res.Ancestors)
	}
	// cas has no children, so it is not in the expansion set itself.
	if !reflect.DeepEqual(res.Expanded, []string{"zak", "hmo"}) {
		t.Errorf("unexpected expansion: %v", res.Expanded)
	}
}

func TestResolveScopedToSubtree(t *testing.T) {
	// The duplicate slug under pokusy must not shadow the scoped walk.
	res := Resolve(testTree(), "pokusy/castice-hmoty")
	if res.Node == nil || res.Node.ID != "cas2" {
		t.Fatalf("expected cas2, got %+v", res.Node)
	}
	if !reflect.DeepEqual(res.Ancestors, []string{"pok"}) {
		t.Errorf("unexpected ancestors: %v", res.Ancestors)
	}
}

func TestResolveSkipsOmittedContainer(t *testing.T) {
	// URL omits the "hmota" level; the walk descends through it without
	// consuming a segment.
	res := Resolve(testTree(), "zaklady/castice-hmoty")
	if res.Node == nil || res.Node.ID != "cas" {
		t.Fatalf("expected cas, got %+v", res.Node)
	}
	if !reflect.DeepEqual(res.Ancestors, []string{"zak", "hmo"}) {
		t.Errorf("unexpected ancestors: %v", res.Ancestors)
	}
}

func TestResolveLastSegmentFallback(t *testing.T) {
	// Legacy full-path slug: no segment-by-segment match, falls back to
	// the last segment and finds the first match in traversal order.
	res := Resolve(testTree(), "stary/odkaz/delka")
	if res.Node == nil || res.Node.ID != "del" {
		t.Fatalf("expected del via fallback, got %+v", res.Node)
	}
	if !reflect.DeepEqual(res.Ancestors, []string{"zak", "vel"}) {
		t.Errorf("fallback should keep its accumulated chain: %v", res.Ancestors)
	}
}

func TestResolveBareID(t *testing.T) {
	res := Resolve(testTree(), "uid-1234")
	if res.Node == nil || res.Node.ID != "uid-1234" {
		t.Fatalf("expected uid-1234, got %+v", res.Node)
	}
}

func TestResolveDuplicateSlugFallbackOrder(t *testing.T) {
	// In the loose fallback, traversal order is the tie-break: the node
	// under zaklady comes first.
	res := Resolve(testTree(), "castice-hmoty")
	if res.Node == nil || res.Node.ID != "cas" {
		t.Fatalf("expected cas (first in traversal order), got %+v", res.Node)
	}
}

func TestResolveNoMatch(t *testing.T) {
	res := Resolve(testTree(), "neexistuje/vubec")
	if res.Node != nil {
		t.Fatalf("expected no match, got %+v", res.Node)
	}
	if len(res.Ancestors) != 0 || len(res.Expanded) != 0 {
		t.Errorf("empty resolution should have empty chains: %+v", res)
	}
}

func TestResolveExpandsNodeWithContainerChild(t *testing.T) {
	// hmota contains the subfolder skupenstvi, so resolving it expands it.
	res := Resolve(testTree(), "zaklady/hmota")
	if res.Node == nil || res.Node.ID != "hmo" {
		t.Fatalf("expected hmo, got %+v", res.Node)
	}
	if !reflect.DeepEqual(res.Expanded, []string{"zak", "hmo"}) {
		t.Errorf("node with a folder-like child should self-expand: %v", res.Expanded)
	}

	// veliciny contains only leaf pages: matched but not self-expanded.
	res = Resolve(testTree(), "zaklady/veliciny")
	if res.Node == nil || res.Node.ID != "vel" {
		t.Fatalf("expected vel, got %+v", res.Node)
	}
	if !reflect.DeepEqual(res.Expanded, []string{"zak"}) {
		t.Errorf("leaf-only container should not self-expand: %v", res.Expanded)
	}
}

func TestControllerStrictAccordion(t *testing.T) {
	c := NewController(testTree())

	c.Navigate("zaklady/hmota/skupenstvi/led")
	want := []string{"hmo", "ske", "zak"}
	if got := c.Expanded(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after navigate, expansion = %v, want %v", got, want)
	}

	// Navigating elsewhere replaces the set; nothing from the previous
	// branch survives.
	c.Navigate("pokusy/castice-hmoty")
	if got := c.Expanded(); !reflect.DeepEqual(got, []string{"pok"}) {
		t.Fatalf("expansion not replaced: %v", got)
	}
}

func TestControllerToggle(t *testing.T) {
	c := NewController(testTree())
	c.Navigate("zaklady/hmota/skupenstvi/led")

	// Manual open of an unrelated branch collapses everything else.
	c.Toggle("vel")
	want := []string{"vel", "zak"}
	if got := c.Expanded(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after toggle open, expansion = %v, want %v", got, want)
	}

	// Closing removes only the clicked id.
	c.Toggle("vel")
	if got := c.Expanded(); !reflect.DeepEqual(got, []string{"zak"}) {
		t.Fatalf("after toggle close, expansion = %v", got)
	}

	// Toggling an unknown id clears to empty rather than inventing state.
	c.Toggle("missing")
	if got := c.Expanded(); len(got) != 0 {
		t.Fatalf("unknown id should yield empty expansion, got %v", got)
	}
}

func TestBoardRouting(t *testing.T) {
	tree := []*catalog.Node{
		{ID: "t1", Label: "Test síl", Slug: "test-sil", DocType: catalog.DocTest},
		{ID: "t2", Label: "Externí", ExternalURL: "board://abc123"},
		{ID: "t3", Label: "Procvičování", DocType: catalog.DocPractice},
		{ID: "t4", Label: "Lekce", Slug: "lekce", DocType: catalog.DocLesson},
	}

	res := Resolve(tree, "test-sil")
	if res.Board == nil || res.Board.ID != "board_test-sil" {
		t.Errorf("expected synthesized board id, got %+v", res.Board)
	}

	res = Resolve(tree, "t2")
	if res.Board == nil || res.Board.ID != "abc123" {
		t.Errorf("expected scheme-extracted board id, got %+v", res.Board)
	}

	res = Resolve(tree, "t3")
	if res.Board == nil || res.Board.ID != "board_t3" {
		t.Errorf("slugless board should fall back to catalog id, got %+v", res.Board)
	}

	res = Resolve(tree, "lekce")
	if res.Board != nil {
		t.Errorf("lesson should not route to a board: %+v", res.Board)
	}
}

type stubFetcher struct{ tree []*catalog.Node }

func (f *stubFetcher) FetchMenu(ctx context.Context, category string) ([]*catalog.Node, error) {
	return f.tree, nil
}

func TestHandleResolve(t *testing.T) {
	svc := catalog.NewService(&stubFetcher{tree: testTree()}, catalog.AudienceFull)
	r := chi.NewRouter()
	RegisterRoutes(r, svc)

	req := httptest.NewRequest("GET", "/api/resolve?category=fyzika&path=zaklady/hmota/castice-hmoty", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res Resolution
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.Node == nil || res.Node.ID != "cas" {
		t.Errorf("unexpected node: %+v", res.Node)
	}
	got := append([]string(nil), res.Ancestors...)
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"hmo", "zak"}) {
		t.Errorf("unexpected ancestors: %v", res.Ancestors)
	}
}
