package pages

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/mediasync"
	"github.com/ucimeto/ucimeto/internal/nav"
	"github.com/ucimeto/ucimeto/internal/render"
)

// View is the payload served for one document path: the resolved catalog
// position, the rendered document, and its section media.
type View struct {
	Resolution *nav.Resolution          `json:"resolution"`
	Page       *Page                    `json:"page,omitempty"`
	HTML       string                   `json:"html,omitempty"`
	Headings   []string                 `json:"headings,omitempty"`
	Media      []mediasync.SectionMedia `json:"media,omitempty"`
	Board      *nav.BoardRoute          `json:"board,omitempty"`
	// Virtual marks a view synthesized from the catalog because the
	// service has no standalone document record (workbooks, folders).
	Virtual bool `json:"virtual,omitempty"`
}

// RegisterRoutes mounts the document view API.
func RegisterRoutes(r chi.Router, svc *Service, cat *catalog.Service, renderer *render.Renderer) {
	r.Get("/api/pages/{category}/*", handleView(svc, cat, renderer))
}

func handleView(svc *Service, cat *catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		path := chi.URLParam(r, "*")
		mode := render.Mode(r.URL.Query().Get("mode"))
		if mode == "" {
			mode = render.ModeNormal
		}

		tree := cat.Load(r.Context(), category)
		res := nav.Resolve(tree, path)

		view := &View{Resolution: res}

		if res.Board != nil {
			view.Board = res.Board
			writeJSON(w, http.StatusOK, view)
			return
		}

		page, err := svc.Get(r.Context(), category, documentSlug(res, path))
		if err != nil {
			if errors.Is(err, ErrNotFound) && res.Node != nil {
				// No standalone record: show the catalog-derived view.
				view.Virtual = true
				view.Page = virtualPage(res.Node)
				writeJSON(w, http.StatusOK, view)
				return
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
			return
		}

		if route := nav.BoardRouteForURL(page.ExternalURL); route != nil {
			view.Board = route
			writeJSON(w, http.StatusOK, view)
			return
		}

		html, err := renderer.Render(page.Content, mode)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		headings, err := render.Headings(html, 2)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		view.Page = page
		view.HTML = html
		view.Headings = headings
		view.Media = page.SectionImages
		writeJSON(w, http.StatusOK, view)
	}
}

// documentSlug picks the slug to fetch: the resolved node's slug (last
// segment for legacy full-path slugs), its id when no slug exists, or the
// raw last path segment when nothing resolved.
func documentSlug(res *nav.Resolution, path string) string {
	if res.Node != nil {
		if res.Node.Slug != "" {
			s := res.Node.Slug
			if i := strings.LastIndex(s, "/"); i >= 0 {
				s = s[i+1:]
			}
			return s
		}
		return res.Node.ID
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	return segments[len(segments)-1]
}

// virtualPage synthesizes a record for catalog-only content.
func virtualPage(n *catalog.Node) *Page {
	return &Page{
		Slug:       n.Slug,
		Title:      n.Label,
		DocType:    n.DocType,
		CoverImage: n.CoverImage,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
