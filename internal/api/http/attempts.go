package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/knolage/knolage/internal/attempt"
	"github.com/knolage/knolage/internal/grading"
	"github.com/knolage/knolage/internal/quiz"
	syncx "github.com/knolage/knolage/internal/sync"
)

type submitRequest struct {
	TestID string `json:"test_id"`
	// question id -> selected option ids; omit or empty for unanswered
	Selections map[string][]string `json:"selections"`
}

type submitResponse struct {
	AttemptID int64 `json:"attempt_id"`
	Score     int   `json:"score"`
	MaxScore  int   `json:"max_score"`
	Perfect   bool  `json:"perfect"`
}

// POST /attempts — grade the selections against the test and append the
// attempt with its answer rows. The event-log append afterwards is best
// effort: a failure there is logged, not returned.
func SubmitAttemptHandler(tests *quiz.Repo, attempts *attempt.SQLStore, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		t, ok, err := tests.Get(req.TestID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !ok {
			http.Error(w, "test not found", http.StatusNotFound)
			return
		}

		out := grading.Grade(t, req.Selections)
		a := attempt.Attempt{
			TestID:      t.ID,
			CompletedAt: time.Now().UTC(),
			Score:       out.Score,
			MaxScore:    out.MaxScore,
		}
		id, err := attempts.AddAttempt(r.Context(), a, out.Answers)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		if events != nil {
			data, _ := json.Marshal(map[string]any{
				"test_id": t.ID, "score": out.Score, "max_score": out.MaxScore,
			})
			if err := events.Append(r.Context(), syncx.Event{
				Type:     syncx.TypeAttemptRecorded,
				Key:      strconv.FormatInt(id, 10),
				DataJSON: string(data),
			}); err != nil {
				log.Printf("event log append: %v", err)
			}
		}

		writeJSON(w, submitResponse{
			AttemptID: id,
			Score:     out.Score,
			MaxScore:  out.MaxScore,
			Perfect:   a.Perfect(),
		})
	}
}

// GET /tests/{testID}/attempts — newest first
func ListAttemptsHandler(attempts *attempt.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := attempts.AttemptsByTest(r.Context(), chi.URLParam(r, "testID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, list)
	}
}

// GET /tests/{testID}/attempts/latest
func LastAttemptHandler(attempts *attempt.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := attempts.LastAttemptForTest(r.Context(), chi.URLParam(r, "testID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if a == nil {
			http.Error(w, "no attempts", http.StatusNotFound)
			return
		}
		writeJSON(w, a)
	}
}

// GET /attempts/{attemptID}
func GetAttemptHandler(attempts *attempt.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "attemptID"), 10, 64)
		if err != nil {
			http.Error(w, "bad attempt id", http.StatusBadRequest)
			return
		}
		a, answers, err := attempts.AttemptWithAnswers(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{"attempt": a, "answers": answers})
	}
}
