package app

import "testing"

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{DataDir: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.UserID != "local" {
		t.Fatalf("expected default user, got %q", cfg.UserID)
	}
	if cfg.UI.StyleVariant != "dojo_dark" || cfg.UI.MotionLevel != "full" {
		t.Fatalf("expected default ui config, got %+v", cfg.UI)
	}
}

func TestValidateRejectsUnknownVariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.UI.StyleVariant = "neon_void"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown style variant")
	}

	cfg = DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.UI.MotionLevel = "warp"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown motion level")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PROMPTDOJO_DATA_DIR", t.TempDir())
	t.Setenv("PROMPTDOJO_USER", "sam")
	t.Setenv("PROMPTDOJO_STYLE", "retro_terminal")
	t.Setenv("PROMPTDOJO_DEBUG", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.UserID != "sam" {
		t.Fatalf("expected env user, got %q", cfg.UserID)
	}
	if cfg.UI.StyleVariant != "retro_terminal" {
		t.Fatalf("expected env style, got %q", cfg.UI.StyleVariant)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug on")
	}
	if cfg.PacksDir != "packs" {
		t.Fatalf("expected default packs dir, got %q", cfg.PacksDir)
	}
}

func TestFromEnvRejectsBadStyle(t *testing.T) {
	t.Setenv("PROMPTDOJO_DATA_DIR", t.TempDir())
	t.Setenv("PROMPTDOJO_STYLE", "nope")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for invalid style from env")
	}
}
