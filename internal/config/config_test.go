package config

import (
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultHorizonDays != 90 {
		t.Errorf("default horizon = %d, want 90", cfg.General.DefaultHorizonDays)
	}
	if cfg.General.DefaultMethod != "hybrid" {
		t.Errorf("default method = %q, want hybrid", cfg.General.DefaultMethod)
	}
	if cfg.Advice.LowBalanceThreshold != 500 {
		t.Errorf("default threshold = %v, want 500", cfg.Advice.LowBalanceThreshold)
	}
	if Exists() {
		t.Error("Exists reported a config file in an empty dir")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultHorizonDays = 30
	cfg.General.ScenarioPath = "/tmp/scenario.json"
	cfg.Advice.LowBalanceThreshold = 250
	cfg.Server.CacheDisabled = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.General.DefaultHorizonDays != 30 {
		t.Errorf("horizon = %d, want 30", loaded.General.DefaultHorizonDays)
	}
	if loaded.General.ScenarioPath != "/tmp/scenario.json" {
		t.Errorf("scenario path = %q", loaded.General.ScenarioPath)
	}
	if loaded.Advice.LowBalanceThreshold != 250 {
		t.Errorf("threshold = %v, want 250", loaded.Advice.LowBalanceThreshold)
	}
	if !loaded.Server.CacheDisabled {
		t.Error("cache_disabled not persisted")
	}
}
