package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// GameSpec overrides one game's table settings. Games absent from the
// manifest run with their defaults.
type GameSpec struct {
	ID       string `yaml:"id"`
	Disabled bool   `yaml:"disabled"`
	MinBet   uint64 `yaml:"min_bet"`
	MaxBet   uint64 `yaml:"max_bet"`
}

type Manifest struct {
	Games []GameSpec `yaml:"games"`
}

func (m *Manifest) Spec(id string) *GameSpec {
	for i := range m.Games {
		if m.Games[i].ID == id {
			return &m.Games[i]
		}
	}
	return nil
}

// LoadManifest reads the optional games manifest. No path means every
// built-in game runs with defaults.
func (c *Config) LoadManifest() (*Manifest, error) {
	if c.GamesManifest == "" {
		return &Manifest{}, nil
	}
	raw, err := os.ReadFile(c.GamesManifest)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(raw, m); err != nil {
		return nil, err
	}
	return m, nil
}
