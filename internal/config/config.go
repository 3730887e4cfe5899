// Package config loads the auction configuration file.
//
// The file is YAML: team seeds, optional retained players, and policy
// overrides for the engine. Values left out fall back to the defaults
// in engine.DefaultRules; environment variables override the file for
// deployment-specific settings (database path, listen address).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/engine"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// TeamConfig seeds one franchise.
type TeamConfig struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name,omitempty"`
	Purse int64  `yaml:"purse"`
}

// RetainedConfig seeds a pre-auction roster entry. Retained players
// never pass through bidding; their price is deducted at load time.
type RetainedConfig struct {
	Team     string `yaml:"team"`
	Player   string `yaml:"player"`
	Price    int64  `yaml:"price"`
	Overseas bool   `yaml:"overseas,omitempty"`
}

// IncrementConfig is one tier of the bid increment ladder.
type IncrementConfig struct {
	Below int64 `yaml:"below"`
	Step  int64 `yaml:"step"`
}

// RulesConfig overrides engine policy constants. Zero values keep the
// defaults.
type RulesConfig struct {
	SquadCap          int               `yaml:"squad_cap,omitempty"`
	OverseasCap       int               `yaml:"overseas_cap,omitempty"`
	DefaultBasePrice  int64             `yaml:"default_base_price,omitempty"`
	ReleasedBasePrice int64             `yaml:"released_base_price,omitempty"`
	DefaultCountdown  int               `yaml:"default_countdown,omitempty"`
	Increments        []IncrementConfig `yaml:"increments,omitempty"`
	TopStep           int64             `yaml:"top_step,omitempty"`
}

// Config is the full auction configuration.
type Config struct {
	DBPath     string           `yaml:"db_path,omitempty"`
	ListenAddr string           `yaml:"listen_addr,omitempty"`
	Teams      []TeamConfig     `yaml:"teams"`
	Retained   []RetainedConfig `yaml:"retained,omitempty"`
	Rules      RulesConfig      `yaml:"rules,omitempty"`
}

// Load reads and validates a configuration file, then applies
// environment overrides (AUCTION_DB, AUCTION_ADDR).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if v := os.Getenv("AUCTION_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("AUCTION_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	return cfg, nil
}

// Parse decodes and validates raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "auction.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Teams) == 0 {
		return fmt.Errorf("config: at least one team is required")
	}
	seen := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.Code == "" {
			return fmt.Errorf("config: team with empty code")
		}
		if seen[t.Code] {
			return fmt.Errorf("config: duplicate team code %q", t.Code)
		}
		seen[t.Code] = true
		if t.Purse <= 0 {
			return fmt.Errorf("config: team %s: purse must be positive", t.Code)
		}
	}
	for _, r := range c.Retained {
		if !seen[r.Team] {
			return fmt.Errorf("config: retained player %q names unknown team %q", r.Player, r.Team)
		}
		if r.Player == "" {
			return fmt.Errorf("config: retained entry for %s with empty player name", r.Team)
		}
		if r.Price <= 0 {
			return fmt.Errorf("config: retained player %q: price must be positive", r.Player)
		}
	}
	for i, inc := range c.Rules.Increments {
		if inc.Step <= 0 {
			return fmt.Errorf("config: increment tier %d: step must be positive", i)
		}
		if i > 0 && inc.Below <= c.Rules.Increments[i-1].Below {
			return fmt.Errorf("config: increment tiers must be in ascending order")
		}
	}
	return nil
}

// Seeds converts the team section into store seeds.
func (c *Config) Seeds() []store.TeamSeed {
	seeds := make([]store.TeamSeed, 0, len(c.Teams))
	for _, t := range c.Teams {
		seeds = append(seeds, store.TeamSeed{Code: t.Code, Purse: t.Purse})
	}
	return seeds
}

// EngineRules merges the overrides section over the defaults.
func (c *Config) EngineRules() engine.Rules {
	r := engine.DefaultRules()
	if c.Rules.SquadCap > 0 {
		r.SquadCap = c.Rules.SquadCap
	}
	if c.Rules.OverseasCap > 0 {
		r.OverseasCap = c.Rules.OverseasCap
	}
	if c.Rules.DefaultBasePrice > 0 {
		r.DefaultBasePrice = c.Rules.DefaultBasePrice
	}
	if c.Rules.ReleasedBasePrice > 0 {
		r.ReleasedBasePrice = c.Rules.ReleasedBasePrice
	}
	if c.Rules.DefaultCountdown > 0 {
		r.DefaultCountdown = c.Rules.DefaultCountdown
	}
	if len(c.Rules.Increments) > 0 {
		steps := make([]engine.IncrementStep, 0, len(c.Rules.Increments))
		for _, inc := range c.Rules.Increments {
			steps = append(steps, engine.IncrementStep{Below: inc.Below, Step: inc.Step})
		}
		r.Increments = steps
	}
	if c.Rules.TopStep > 0 {
		r.TopStep = c.Rules.TopStep
	}
	return r
}
