// Package config loads engine settings from a YAML file and HOTZONE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/hotzone/hotzone-server-go/internal/game"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. HOTZONE_GAME_MODE.
const EnvPrefix = "HOTZONE"

// Config is the full settings tree.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Replay   ReplayConfig   `mapstructure:"replay"`
	Database DatabaseConfig `mapstructure:"database"`
}

// GameConfig describes the table to set up.
type GameConfig struct {
	Mode       string   `mapstructure:"mode"`
	Difficulty string   `mapstructure:"difficulty"`
	Roles      []string `mapstructure:"roles"`
	Names      []string `mapstructure:"names"`
	// Seed makes shuffles reproducible; 0 means random.
	Seed uint64 `mapstructure:"seed"`
}

// LoggingConfig selects the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReplayConfig controls snapshot journaling.
type ReplayConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

// DatabaseConfig points at the Postgres snapshot store. An empty URL keeps
// snapshots in memory.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.mode", string(game.ModeCoop2))
	v.SetDefault("game.difficulty", string(game.DifficultyStandard))
	v.SetDefault("game.roles", []string{})
	v.SetDefault("game.names", []string{})
	v.SetDefault("game.seed", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.directory", "replays")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)
}

// Load reads path if it exists, applies environment overrides and validates
// the result. An empty path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if _, err := c.Game.Setup(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database: max_conns must be positive, got %d", c.Database.MaxConns)
	}
	return nil
}

// Setup converts the game section into a validated game.Setup.
func (gc GameConfig) Setup() (game.Setup, error) {
	mode, err := game.ParseMode(gc.Mode)
	if err != nil {
		return game.Setup{}, err
	}
	difficulty, err := game.ParseDifficulty(gc.Difficulty)
	if err != nil {
		return game.Setup{}, err
	}
	roles := make([]rules.Role, 0, len(gc.Roles))
	for _, name := range gc.Roles {
		role, err := rules.ParseRole(strings.TrimSpace(name))
		if err != nil {
			return game.Setup{}, err
		}
		roles = append(roles, role)
	}
	setup := game.Setup{
		Mode:       mode,
		Difficulty: difficulty,
		Roles:      roles,
		Names:      append([]string(nil), gc.Names...),
	}
	if err := setup.Validate(); err != nil {
		return game.Setup{}, err
	}
	return setup, nil
}

// Rand returns a seeded source when Seed is set, nil otherwise.
func (gc GameConfig) Rand() *rand.Rand {
	if gc.Seed == 0 {
		return nil
	}
	return game.SeededRand(gc.Seed)
}
