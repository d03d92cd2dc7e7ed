// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
	Sim  SimConfig  `toml:"sim"`
}

// GameConfig maps round settings. Nil fields keep their defaults.
type GameConfig struct {
	Goal       *int     `toml:"goal"`
	Duration   *int     `toml:"duration"`
	SpawnMs    *int     `toml:"spawn-ms"`
	LifetimeMs *int     `toml:"lifetime-ms"`
	BadChance  *float64 `toml:"bad-chance"`
	Seed       *int64   `toml:"seed"`
}

// SimConfig maps bot player settings for the simulator.
type SimConfig struct {
	Rounds     *int     `toml:"rounds"`
	ReactionMs *int     `toml:"reaction-ms"`
	Accuracy   *float64 `toml:"accuracy"`
	Miss       *float64 `toml:"miss"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
