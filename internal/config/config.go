// Package config loads the optional HCL file that sets up a match.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/passandshoot/internal/bot"
	"github.com/lox/passandshoot/internal/game"
)

// DefaultFile is read when no path is given on the command line.
const DefaultFile = "passandshoot.hcl"

// Config represents the complete configuration
type Config struct {
	Game     GameSettings     `hcl:"game,block"`
	Opponent OpponentSettings `hcl:"opponent,block"`
	UI       UISettings       `hcl:"ui,block"`
}

// GameSettings selects the human side and the random seed.
type GameSettings struct {
	HumanTeam string `hcl:"human_team,optional"`
	// Seed fixes the match RNG; zero draws a fresh seed.
	Seed int64 `hcl:"seed,optional"`
}

// OpponentSettings configures the computer team.
type OpponentSettings struct {
	Policy  string `hcl:"policy,optional"`
	DelayMS int    `hcl:"delay_ms,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel   string `hcl:"log_level,optional"`
	LogFile    string `hcl:"log_file,optional"`
	EventsTail int    `hcl:"events_tail,optional"`
	Color      *bool  `hcl:"color,optional"`
	TUI        bool   `hcl:"tui,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	color := true
	return &Config{
		Game: GameSettings{
			HumanTeam: game.Blue.String(),
		},
		Opponent: OpponentSettings{
			Policy:  bot.ForwardName,
			DelayMS: 1000,
		},
		UI: UISettings{
			LogLevel:   "warn",
			LogFile:    "passandshoot.log",
			EventsTail: 5,
			Color:      &color,
		},
	}
}

// Load reads filename. A missing file yields the defaults. The game, opponent
// and ui blocks must all be present, but any attribute left out keeps its
// default value.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default()

	if cfg.Game.HumanTeam == "" {
		cfg.Game.HumanTeam = defaults.Game.HumanTeam
	}
	if cfg.Opponent.Policy == "" {
		cfg.Opponent.Policy = defaults.Opponent.Policy
	}
	if cfg.Opponent.DelayMS == 0 {
		cfg.Opponent.DelayMS = defaults.Opponent.DelayMS
	}
	if cfg.UI.LogLevel == "" {
		cfg.UI.LogLevel = defaults.UI.LogLevel
	}
	if cfg.UI.LogFile == "" {
		cfg.UI.LogFile = defaults.UI.LogFile
	}
	if cfg.UI.EventsTail == 0 {
		cfg.UI.EventsTail = defaults.UI.EventsTail
	}
	if cfg.UI.Color == nil {
		cfg.UI.Color = defaults.UI.Color
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := game.ParseTeam(c.Game.HumanTeam); err != nil {
		return fmt.Errorf("invalid human team %q: %w", c.Game.HumanTeam, err)
	}

	if !validPolicy(c.Opponent.Policy) {
		return fmt.Errorf("invalid opponent policy: %s (available: %v)", c.Opponent.Policy, bot.Names())
	}

	if c.Opponent.DelayMS < 0 {
		return fmt.Errorf("opponent delay cannot be negative")
	}

	if c.UI.EventsTail <= 0 {
		return fmt.Errorf("events tail must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

func validPolicy(name string) bool {
	for _, n := range bot.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// HumanTeam returns the parsed human side. Call Validate first.
func (c *Config) HumanTeam() game.Team {
	t, _ := game.ParseTeam(c.Game.HumanTeam)
	return t
}

// OpponentDelay returns the opponent's pacing delay.
func (c *Config) OpponentDelay() time.Duration {
	return time.Duration(c.Opponent.DelayMS) * time.Millisecond
}

// UseColor reports whether output may carry colour.
func (c *Config) UseColor() bool {
	return c.UI.Color == nil || *c.UI.Color
}
