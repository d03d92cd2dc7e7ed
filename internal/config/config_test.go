package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file: %v", err)
	}
	if cfg.Game.Goal != nil || cfg.Sim.Rounds != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
goal = 10
duration = 20
spawn-ms = 700
bad-chance = 0.5

[sim]
reaction-ms = 300
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Goal == nil || *cfg.Game.Goal != 10 {
		t.Fatalf("unexpected goal: %v", cfg.Game.Goal)
	}
	if cfg.Game.Duration == nil || *cfg.Game.Duration != 20 {
		t.Fatalf("unexpected duration: %v", cfg.Game.Duration)
	}
	if cfg.Game.SpawnMs == nil || *cfg.Game.SpawnMs != 700 {
		t.Fatalf("unexpected spawn-ms: %v", cfg.Game.SpawnMs)
	}
	if cfg.Game.LifetimeMs != nil {
		t.Fatalf("expected lifetime-ms unset")
	}
	if cfg.Game.BadChance == nil || *cfg.Game.BadChance != 0.5 {
		t.Fatalf("unexpected bad-chance: %v", cfg.Game.BadChance)
	}
	if cfg.Sim.ReactionMs == nil || *cfg.Sim.ReactionMs != 300 {
		t.Fatalf("unexpected reaction-ms: %v", cfg.Sim.ReactionMs)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\ngoals = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "goals") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "cancatch", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
}
