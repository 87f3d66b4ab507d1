package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("SITE_BASE_URL", "https://example.test/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.SiteBaseURL != "https://example.test" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", cfg.SiteBaseURL)
	}
	if cfg.DatabasePath != "peartree.db" {
		t.Fatalf("expected default database path, got %q", cfg.DatabasePath)
	}
}

func TestLoadHonoursListenAddr(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9100" {
		t.Fatalf("expected explicit listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %q", cfg.Port)
	}
}
