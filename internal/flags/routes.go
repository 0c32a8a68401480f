package flags

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the tour flag API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/tours", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{key}", handleGet(store))
		r.Put("/{key}/complete", handleComplete(store))
		r.Delete("/{key}", handleReset(store))
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if list == nil {
			list = []Flag{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		f, err := store.Get(r.Context(), key)
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusOK, Flag{Key: key})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

func handleComplete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if err := store.MarkCompleted(r.Context(), key); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		f, err := store.Get(r.Context(), key)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

func handleReset(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.Reset(r.Context(), chi.URLParam(r, "key"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
