package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.Mode != ModeOffline {
		t.Fatalf("default mode = %s", cfg.Mode)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("default driver = %s", cfg.DBDriver)
	}
	if cfg.ArticlesFile == "" || cfg.TestsFile == "" || cfg.MediaDir == "" {
		t.Fatalf("blank paths: %+v", cfg)
	}
	if len(cfg.CORSOrigins()) == 0 {
		t.Fatal("no offline CORS origins")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("ARTICLES_FILE", "/srv/kb/articles.json")
	t.Setenv("ENABLE_LOCAL_AUTH", "false")
	t.Setenv("CORS_ORIGINS_ONLINE", "https://a.example, https://b.example")

	cfg := FromEnv()
	if cfg.Mode != ModeOnline || cfg.DBDriver != "postgres" {
		t.Fatalf("overrides lost: %+v", cfg)
	}
	if cfg.ArticlesFile != "/srv/kb/articles.json" {
		t.Fatalf("articles file = %s", cfg.ArticlesFile)
	}
	if cfg.EnableLocalAuth {
		t.Fatal("local auth should be off")
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("online origins = %v", origins)
	}
}

func TestBogusModeFallsBackToOffline(t *testing.T) {
	t.Setenv("MODE", "hybrid")
	if cfg := FromEnv(); cfg.Mode != ModeOffline {
		t.Fatalf("mode = %s", cfg.Mode)
	}
}
