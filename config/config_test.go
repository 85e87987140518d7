package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.TrainFraction != 0.85 || p.Alpha != 0.05 || p.Seed != 42 {
		t.Errorf("defaults = %+v", p)
	}
	if p.BoxCoxMin != -2 || p.BoxCoxMax != 2 || p.BoxCoxStep != 0.1 {
		t.Errorf("grid defaults = %+v", p)
	}
	if p.CookMultiplier != 4 {
		t.Errorf("cook multiplier = %v, want 4", p.CookMultiplier)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regress.yaml")
	body := "data_path: films.csv\nseed: 7\ntrain_fraction: 0.7\nboxcox_step: 0.5\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.DataPath != "films.csv" || p.Seed != 7 || p.TrainFraction != 0.7 || p.BoxCoxStep != 0.5 {
		t.Errorf("overrides lost: %+v", p)
	}
	// Untouched keys keep their defaults.
	if p.Alpha != 0.05 || p.OutputDir != "out" {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REGRESS_SEED", "99")
	t.Setenv("REGRESS_ALPHA", "0.01")

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Seed != 99 {
		t.Errorf("seed = %d, want env override 99", p.Seed)
	}
	if p.Alpha != 0.01 {
		t.Errorf("alpha = %v, want env override 0.01", p.Alpha)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regress.yaml")
	if err := os.WriteFile(path, []byte("train_fraction: 1.5\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("out-of-range fraction should fail validation")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("explicit missing file should fail")
	}
}
