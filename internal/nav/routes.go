package nav

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ucimeto/ucimeto/internal/catalog"
)

// RegisterRoutes mounts the path resolution API.
func RegisterRoutes(r chi.Router, svc *catalog.Service) {
	r.Get("/api/resolve", handleResolve(svc))
}

func handleResolve(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		path := r.URL.Query().Get("path")
		if category == "" || path == "" {
			http.Error(w, `{"error":"category and path are required"}`, http.StatusBadRequest)
			return
		}

		tree := svc.Load(r.Context(), category)
		res := Resolve(tree, path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}
}
