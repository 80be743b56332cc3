package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/knolage/knolage/internal/api/http"
	"github.com/knolage/knolage/internal/attempt"
	"github.com/knolage/knolage/internal/auth"
	"github.com/knolage/knolage/internal/config"
	"github.com/knolage/knolage/internal/db"
	"github.com/knolage/knolage/internal/knowledge"
	"github.com/knolage/knolage/internal/quiz"
	"github.com/knolage/knolage/internal/storage"
	syncx "github.com/knolage/knolage/internal/sync"
)

func main() {
	cfg := config.FromEnv()

	// --- Attempt DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	attempts := attempt.NewSQLStore(dbh)
	events := syncx.NewEventRepo(dbh)

	// --- Document stores ---
	media, err := storage.NewFSMediaStore(cfg.MediaDir)
	if err != nil {
		log.Fatalf("media store: %v", err)
	}
	articles := knowledge.NewRepo(cfg.ArticlesFile, media)
	tests := quiz.NewRepo(cfg.TestsFile)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))
	}

	r.Group(func(pr chi.Router) {
		if cfg.EnableLocalAuth {
			pr.Use(auth.JWTMiddleware(authSvc))
		}

		pr.Get("/articles", api.ListArticlesHandler(articles))
		pr.Get("/articles/{articleID}", api.GetArticleHandler(articles))
		pr.Put("/articles", api.SaveArticleHandler(articles))
		pr.Delete("/articles/{articleID}", api.DeleteArticleHandler(articles))

		pr.Get("/tests", api.ListTestsHandler(tests))
		pr.Get("/tests/{testID}", api.GetTestHandler(tests))
		pr.Put("/tests", api.SaveTestHandler(tests))
		pr.Delete("/tests/{testID}", api.DeleteTestHandler(tests))

		pr.Post("/attempts", api.SubmitAttemptHandler(tests, attempts, events))
		pr.Get("/attempts/{attemptID}", api.GetAttemptHandler(attempts))
		pr.Get("/tests/{testID}/attempts", api.ListAttemptsHandler(attempts))
		pr.Get("/tests/{testID}/attempts/latest", api.LastAttemptHandler(attempts))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
