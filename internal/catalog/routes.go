package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the catalog API routes.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/menu/{category}", handleMenu(svc))
}

func handleMenu(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		tree := svc.Load(r.Context(), category)
		if tree == nil {
			tree = []*Node{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"menu": tree})
	}
}
