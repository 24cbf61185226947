package config

import "testing"

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.Port == "" || cfg.DatabaseURL == "" || cfg.DatabaseName == "" || cfg.LogLevel == "" {
		t.Errorf("Expected every field to carry a default, got %+v", cfg)
	}
}

func TestNewConfig_EmptyDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := NewConfig(); err == nil {
		t.Error("Expected an error for an explicitly empty DATABASE_URL")
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "tracker")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "mongodb://db:27017" {
		t.Errorf("Expected configured database URL, got %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseName != "tracker" {
		t.Errorf("Expected database name tracker, got %s", cfg.DatabaseName)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
}
