package boards

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/pages"
)

// RegisterRoutes mounts the board API routes.
func RegisterRoutes(r chi.Router, store *Store, gen *Generator, pageSvc *pages.Service) {
	r.Route("/api/boards", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/generate", handleGenerate(store, gen, pageSvc))
		r.Get("/{id}", handleGetByID(store))
		r.Delete("/{id}", handleDelete(store))
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category == "" {
			http.Error(w, `{"error":"category is required"}`, http.StatusBadRequest)
			return
		}
		list, err := store.List(r.Context(), category)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []Board{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if board == nil {
			http.Error(w, `{"error":"board not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(board)
	}
}

type generateRequest struct {
	Category string `json:"category"`
	Slug     string `json:"slug"`
	Kind     string `json:"kind"`
	Count    int    `json:"count"`
}

func handleGenerate(store *Store, gen *Generator, pageSvc *pages.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			http.Error(w, `{"error":"board generation is not configured"}`, http.StatusServiceUnavailable)
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Category == "" || req.Slug == "" {
			http.Error(w, `{"error":"category and slug are required"}`, http.StatusBadRequest)
			return
		}
		kind := catalog.DocType(req.Kind)
		if kind == "" {
			kind = catalog.DocTest
		}

		page, err := pageSvc.Get(r.Context(), req.Category, req.Slug)
		if err != nil {
			http.Error(w, `{"error":"page not found"}`, http.StatusNotFound)
			return
		}

		board, err := gen.Generate(r.Context(), req.Category, page, kind, req.Count)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if err := store.Save(r.Context(), board); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(board)
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
