package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9090
tuio:
  host: "192.168.1.50"
  port: 3334
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.TUIO.Host != "192.168.1.50" {
		t.Errorf("TUIO.Host = %q, want %q", cfg.TUIO.Host, "192.168.1.50")
	}
	if cfg.TUIO.Port != 3334 {
		t.Errorf("TUIO.Port = %d, want 3334", cfg.TUIO.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("Load() on missing file should return error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}

	if cfg.Server.Port != DefaultListenPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultListenPort)
	}
	if cfg.TUIO.Port != DefaultTUIOPort {
		t.Errorf("TUIO.Port = %d, want default %d", cfg.TUIO.Port, DefaultTUIOPort)
	}
	if cfg.TUIO.Host != "127.0.0.1" {
		t.Errorf("TUIO.Host = %q, want default 127.0.0.1", cfg.TUIO.Host)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte(":::not valid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() with invalid YAML should return error")
	}
}
