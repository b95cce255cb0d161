package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if len(cfg.Analysis.Stdlib) != 0 {
		t.Errorf("Stdlib = %v, want empty", cfg.Analysis.Stdlib)
	}
	if cfg.Compose.Platforms == nil {
		t.Error("Platforms should be a non-nil map")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected defaults, got version %d", cfg.Version)
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ConfigDir), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{
  "logging": {"level": "debug"},
  "analysis": {
    "stdlib": ["logging", "argparse"],
    "argTypeRules": [{"contains": "count", "type": "int"}]
  },
  "compose": {"platforms": {"bash": ["linux"]}}
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigDir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir, "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.Analysis.Stdlib) != 2 || cfg.Analysis.Stdlib[1] != "argparse" {
		t.Errorf("Stdlib = %v", cfg.Analysis.Stdlib)
	}
	if len(cfg.Analysis.ArgTypeRules) != 1 || cfg.Analysis.ArgTypeRules[0].Type != "int" {
		t.Errorf("ArgTypeRules = %+v", cfg.Analysis.ArgTypeRules)
	}
	if got := cfg.Compose.Platforms["bash"]; len(got) != 1 || got[0] != "linux" {
		t.Errorf("Platforms[bash] = %v", got)
	}
}

func TestLoadConfig_ExplicitYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockmeta.yaml")
	content := "analysis:\n  stdlib:\n    - logging\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("", path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Analysis.Stdlib) != 1 || cfg.Analysis.Stdlib[0] != "logging" {
		t.Errorf("Stdlib = %v", cfg.Analysis.Stdlib)
	}
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	_, err := LoadConfig("", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty contains",
			mutate:  func(c *Config) { c.Analysis.ArgTypeRules = []ArgTypeRule{{Contains: " ", Type: "int"}} },
			wantErr: "contains must not be empty",
		},
		{
			name:    "bad type",
			mutate:  func(c *Config) { c.Analysis.ArgTypeRules = []ArgTypeRule{{Contains: "n", Type: "float"}} },
			wantErr: "must be int or str",
		},
		{
			name:    "empty platforms",
			mutate:  func(c *Config) { c.Compose.Platforms["bash"] = nil },
			wantErr: "at least one platform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
