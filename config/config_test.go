package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Network.SourceFile != DefaultSourceFile {
		t.Errorf("expected default source file, got %q", cfg.Network.SourceFile)
	}
	if cfg.Server.Port != defaultPort || cfg.Cache.Size != defaultCacheSize {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
network:
  sourceFile: maps/line.txt
server:
  enabled: true
  port: 9090
  allowedOrigins:
    - http://localhost:3000
cache:
  size: 0
logging:
  level: debug
  format: json
neo4j:
  uri: bolt://localhost:7687
  username: neo4j
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Network.SourceFile != "maps/line.txt" {
		t.Errorf("unexpected source file %q", cfg.Network.SourceFile)
	}
	if !cfg.Server.Enabled || cfg.Server.Port != 9090 || len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Cache.Size != 0 {
		t.Errorf("expected caching disabled, got %d", cfg.Cache.Size)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Neo4j.URI != "bolt://localhost:7687" {
		t.Errorf("unexpected neo4j uri %q", cfg.Neo4j.URI)
	}
	// fields missing from the file keep their defaults
	if cfg.Server.Host != defaultHost {
		t.Errorf("expected default host, got %q", cfg.Server.Host)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("TRAINMAP_FILE", "")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Network.SourceFile != "" {
		t.Errorf("expected TRAINMAP_FILE to clear the source file, got %q", cfg.Network.SourceFile)
	}
	if strings.Join(cfg.Server.AllowedOrigins, "|") != "http://a.example|http://b.example" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{"missing explicit file", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "absent.yml")
		}},
		{"malformed yaml", func(t *testing.T) string {
			return writeConfig(t, "server: [port\n")
		}},
		{"port out of range", func(t *testing.T) string {
			return writeConfig(t, "server:\n  port: 70000\n")
		}},
		{"unknown log format", func(t *testing.T) string {
			return writeConfig(t, "logging:\n  format: xml\n")
		}},
		{"bad neo4j uri", func(t *testing.T) string {
			return writeConfig(t, "neo4j:\n  uri: not a uri\n")
		}},
		{"non numeric env port", func(t *testing.T) string {
			t.Setenv("SERVER_PORT", "eighty")
			return writeConfig(t, "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.setup(t)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
