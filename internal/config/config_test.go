package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxStat != 100 {
		t.Fatalf("MaxStat = %d, want 100", cfg.MaxStat)
	}
	if cfg.DefaultLocale != "en-US" {
		t.Fatalf("DefaultLocale = %q, want en-US", cfg.DefaultLocale)
	}
	if !cfg.AllowsCurrency("gold") {
		t.Fatalf("expected gold to be an allowed currency")
	}
	if cfg.AllowsCurrency("doubloons") {
		t.Fatalf("expected doubloons to not be allowed")
	}
}
