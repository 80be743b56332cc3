package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knolage/knolage/internal/knowledge"
)

// GET /articles
func ListArticlesHandler(repo *knowledge.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := repo.All()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, list)
	}
}

// GET /articles/{articleID}
func GetArticleHandler(repo *knowledge.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok, err := repo.Get(chi.URLParam(r, "articleID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !ok {
			http.Error(w, "article not found", http.StatusNotFound)
			return
		}
		writeJSON(w, a)
	}
}

// PUT /articles — upsert; the body is the complete desired article.
func SaveArticleHandler(repo *knowledge.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a knowledge.KnowledgeArticle
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		saved, err := repo.Save(&a)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, saved)
	}
}

// DELETE /articles/{articleID} — also cascades media cleanup; deleting an
// absent article succeeds.
func DeleteArticleHandler(repo *knowledge.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Delete(chi.URLParam(r, "articleID")); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
