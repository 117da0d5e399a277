package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerPort != "5000" {
		t.Errorf("ServerPort = %q, want 5000", cfg.ServerPort)
	}
	if cfg.DatabaseURL == "" {
		t.Error("DatabaseURL default is empty")
	}
	if cfg.ClientOrigin == "" {
		t.Error("ClientOrigin default is empty")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
}
