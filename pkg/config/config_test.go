package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNBuildsFromParts(t *testing.T) {
	cfg := DBConfig{
		Host:     "localhost",
		Port:     5433,
		User:     "fm",
		Password: "s3cret",
		Name:     "freshmart",
		SSLMode:  "disable",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	for _, want := range []string{"postgres://", "fm:s3cret@localhost:5433", "/freshmart", "sslmode=disable"} {
		if !strings.Contains(cfg.DSN, want) {
			t.Fatalf("dsn %q missing %q", cfg.DSN, want)
		}
	}
}

func TestEnsureDSNKeepsExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://x"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	if cfg.DSN != "postgres://x" {
		t.Fatalf("dsn was rewritten to %q", cfg.DSN)
	}
}

func TestEnsureDSNReportsMissingParts(t *testing.T) {
	cfg := DBConfig{Host: "localhost"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing user/name")
	}
	if !strings.Contains(err.Error(), "FRESHMART_DB_USER") {
		t.Fatalf("expected missing var names in error, got %v", err)
	}
}
