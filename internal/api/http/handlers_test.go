package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/knolage/knolage/internal/api/http"
	"github.com/knolage/knolage/internal/attempt"
	"github.com/knolage/knolage/internal/db"
	"github.com/knolage/knolage/internal/knowledge"
	"github.com/knolage/knolage/internal/quiz"
	"github.com/knolage/knolage/internal/storage"
	syncx "github.com/knolage/knolage/internal/sync"
)

func newServer(t *testing.T) (*httptest.Server, *quiz.Repo) {
	t.Helper()

	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:apitest_"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	media, err := storage.NewFSMediaStore(filepath.Join(t.TempDir(), "media"))
	if err != nil {
		t.Fatal(err)
	}
	articles := knowledge.NewRepo(filepath.Join(t.TempDir(), "articles.json"), media)
	tests := quiz.NewRepo(filepath.Join(t.TempDir(), "tests.json"))
	attempts := attempt.NewSQLStore(dbh)
	events := syncx.NewEventRepo(dbh)

	r := chi.NewRouter()
	r.Get("/articles", api.ListArticlesHandler(articles))
	r.Put("/articles", api.SaveArticleHandler(articles))
	r.Delete("/articles/{articleID}", api.DeleteArticleHandler(articles))
	r.Get("/tests", api.ListTestsHandler(tests))
	r.Get("/tests/{testID}", api.GetTestHandler(tests))
	r.Put("/tests", api.SaveTestHandler(tests))
	r.Post("/attempts", api.SubmitAttemptHandler(tests, attempts, events))
	r.Get("/attempts/{attemptID}", api.GetAttemptHandler(attempts))
	r.Get("/tests/{testID}/attempts", api.ListAttemptsHandler(attempts))
	r.Get("/tests/{testID}/attempts/latest", api.LastAttemptHandler(attempts))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, tests
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, url, err)
		}
	}
	return resp
}

func TestSubmitAttemptFlow(t *testing.T) {
	srv, _ := newServer(t)

	var saved quiz.Test
	resp := doJSON(t, "PUT", srv.URL+"/tests", quiz.Test{
		Title:      "Go basics",
		ArticleIDs: []string{"a1"},
		Questions: []quiz.TestQuestion{
			{ID: "q1", Options: []quiz.TestAnswerOption{
				{ID: "a", IsCorrect: true},
				{ID: "b", IsCorrect: true},
				{ID: "c"},
			}},
			{ID: "q2", Options: []quiz.TestAnswerOption{
				{ID: "x", IsCorrect: true},
				{ID: "y"},
			}},
		},
	}, &saved)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save test: status %d", resp.StatusCode)
	}
	if saved.ID == "" {
		t.Fatal("no id assigned on save")
	}

	var got struct {
		AttemptID int64 `json:"attempt_id"`
		Score     int   `json:"score"`
		MaxScore  int   `json:"max_score"`
		Perfect   bool  `json:"perfect"`
	}
	resp = doJSON(t, "POST", srv.URL+"/attempts", map[string]any{
		"test_id": saved.ID,
		"selections": map[string][]string{
			"q1": {"a", "b"},
			"q2": {"y"},
		},
	}, &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: status %d", resp.StatusCode)
	}
	if got.Score != 1 || got.MaxScore != 2 || got.Perfect {
		t.Fatalf("submit result = %+v", got)
	}

	var detail struct {
		Attempt attempt.Attempt  `json:"attempt"`
		Answers []attempt.Answer `json:"answers"`
	}
	resp = doJSON(t, "GET", srv.URL+"/attempts/"+strconv.FormatInt(got.AttemptID, 10), nil, &detail)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get attempt: status %d", resp.StatusCode)
	}
	if detail.Attempt.ID != got.AttemptID || detail.Attempt.TestID != saved.ID {
		t.Fatalf("attempt detail = %+v", detail.Attempt)
	}
	// q1: two option rows; q2: one row (answered with one wrong option)
	if len(detail.Answers) != 3 {
		t.Fatalf("answer rows = %+v", detail.Answers)
	}
	for _, row := range detail.Answers {
		if row.AttemptID != got.AttemptID {
			t.Fatalf("row not linked: %+v", row)
		}
	}

	var latest attempt.Attempt
	resp = doJSON(t, "GET", srv.URL+"/tests/"+saved.ID+"/attempts/latest", nil, &latest)
	if resp.StatusCode != http.StatusOK || latest.ID != got.AttemptID {
		t.Fatalf("latest: status %d attempt %+v", resp.StatusCode, latest)
	}
}

func TestSubmitUnknownTest(t *testing.T) {
	srv, _ := newServer(t)
	resp := doJSON(t, "POST", srv.URL+"/attempts", map[string]any{
		"test_id": "ghost", "selections": map[string][]string{},
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestListTestsByArticle(t *testing.T) {
	srv, tests := newServer(t)
	for _, seed := range []*quiz.Test{
		{ID: "t1", ArticleIDs: []string{"A1"}},
		{ID: "t2", ArticleIDs: []string{"a2"}},
	} {
		if _, err := tests.Save(seed); err != nil {
			t.Fatal(err)
		}
	}
	var list []quiz.Test
	resp := doJSON(t, "GET", srv.URL+"/tests?article_id=a1", nil, &list)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if len(list) != 1 || list[0].ID != "t1" {
		t.Fatalf("filtered list = %+v", list)
	}
}

func TestArticleLifecycleOverHTTP(t *testing.T) {
	srv, _ := newServer(t)

	var saved knowledge.KnowledgeArticle
	resp := doJSON(t, "PUT", srv.URL+"/articles", knowledge.KnowledgeArticle{
		Title: "Concurrency",
		Blocks: []knowledge.ArticleBlock{
			{Type: knowledge.BlockHeader, Content: "Locks"},
		},
	}, &saved)
	if resp.StatusCode != http.StatusOK || saved.ID == "" {
		t.Fatalf("save article: status %d, %+v", resp.StatusCode, saved)
	}

	req, _ := http.NewRequest("DELETE", srv.URL+"/articles/"+saved.ID, nil)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: status %d", del.StatusCode)
	}

	var list []knowledge.KnowledgeArticle
	doJSON(t, "GET", srv.URL+"/articles", nil, &list)
	if len(list) != 0 {
		t.Fatalf("article survived delete: %+v", list)
	}
}
