package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default address :8080, got %q", cfg.Server.Address)
	}
	if cfg.Catalog.Source != "file" {
		t.Errorf("expected default catalog source file, got %q", cfg.Catalog.Source)
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("expected 1h expiration, got %v", cfg.JWT.Expiration)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  address: \":9090\"\ncatalog:\n  source: s3\n  object_key: lib/exercises.json\njwt:\n  secret: abc\n  expiration: 30m\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_PATH", "/data/exercises.json")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Catalog.Source != "s3" || cfg.Catalog.ObjectKey != "lib/exercises.json" {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Catalog.Path != "/data/exercises.json" {
		t.Errorf("env override not applied, path = %q", cfg.Catalog.Path)
	}
	if cfg.JWT.Secret != "abc" || cfg.JWT.Expiration != 30*time.Minute {
		t.Errorf("jwt = %+v", cfg.JWT)
	}
}

func TestInsightsConfig_Location(t *testing.T) {
	if loc := (InsightsConfig{Timezone: "Local"}).Location(); loc != time.Local {
		t.Errorf("expected time.Local, got %v", loc)
	}
	if loc := (InsightsConfig{Timezone: "UTC"}).Location(); loc.String() != "UTC" {
		t.Errorf("expected UTC, got %v", loc)
	}
	if loc := (InsightsConfig{Timezone: "Not/AZone"}).Location(); loc != time.Local {
		t.Errorf("expected fallback to time.Local, got %v", loc)
	}
}
