package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/knolage/knolage/internal/quiz"
)

// GET /tests?article_id=... — the filter returns tests associated with
// that article, in collection order.
func ListTestsHandler(repo *quiz.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list []*quiz.Test
			err  error
		)
		if articleID := strings.TrimSpace(r.URL.Query().Get("article_id")); articleID != "" {
			list, err = repo.ByArticleID(articleID)
		} else {
			list, err = repo.All()
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, list)
	}
}

// GET /tests/{testID}
func GetTestHandler(repo *quiz.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok, err := repo.Get(chi.URLParam(r, "testID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !ok {
			http.Error(w, "test not found", http.StatusNotFound)
			return
		}
		writeJSON(w, t)
	}
}

// PUT /tests — upsert
func SaveTestHandler(repo *quiz.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t quiz.Test
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		saved, err := repo.Save(&t)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, saved)
	}
}

// DELETE /tests/{testID}
func DeleteTestHandler(repo *quiz.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Delete(chi.URLParam(r, "testID")); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
