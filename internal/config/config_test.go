package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"trip-planner-go/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"HTTP_PORT", "ACCESS_CACHE_BACKEND", "INVITE_SWEEP_INTERVAL", "INVITE_DEFAULT_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.AccessCache.Backend != AccessCacheMemory {
		t.Fatalf("expected memory cache backend, got %q", cfg.AccessCache.Backend)
	}
	if cfg.Invites.SweepInterval != 5*time.Minute {
		t.Fatalf("expected 5m sweep interval, got %v", cfg.Invites.SweepInterval)
	}
	if cfg.Invites.DefaultTTL != 0 {
		t.Fatalf("expected no default invite ttl, got %v", cfg.Invites.DefaultTTL)
	}
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	contents := "HTTP_PORT=9090\nINVITE_DEFAULT_TTL=72h\n# comment\nDB_NAME=\"trips_test\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	nested := filepath.Join(dir, "cmd", "trip-planner")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(nested)
	t.Setenv("HTTP_PORT", "7070")
	// Registered so t.Setenv restores them after dotenv sets them.
	t.Setenv("INVITE_DEFAULT_TTL", "")
	os.Unsetenv("INVITE_DEFAULT_TTL")
	t.Setenv("DB_NAME", "")
	os.Unsetenv("DB_NAME")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "7070" {
		t.Fatalf("expected env to win, got %q", cfg.HTTPPort)
	}
	if cfg.Invites.DefaultTTL != 72*time.Hour {
		t.Fatalf("expected ttl from .env, got %v", cfg.Invites.DefaultTTL)
	}
	if cfg.DB.Name != "trips_test" {
		t.Fatalf("expected db name from .env, got %q", cfg.DB.Name)
	}
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ACCESS_CACHE_BACKEND", "memcached")

	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", TimeZone: "UTC"}
	want := "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if got := cfg.GetDSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	cfg.DSN = "postgres://x"
	if got := cfg.GetDSN(); got != "postgres://x" {
		t.Fatalf("expected explicit dsn, got %q", got)
	}
}

func TestFindUpMatchesKind(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "migrations"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(filepath.Join(nested, "migrations.d"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", "migrations"), nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Chdir(nested)

	path, err := FindUp("migrations", true)
	if err != nil {
		t.Fatalf("expected directory, got %v", err)
	}
	if path != filepath.Join(root, "migrations") {
		t.Fatalf("expected file in a/ to be skipped, got %s", path)
	}

	if _, err := FindUp("missing.env", false); !os.IsNotExist(err) {
		t.Fatalf("expected not exist, got %v", err)
	}
}
