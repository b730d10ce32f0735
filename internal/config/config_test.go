package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hotzone/hotzone-server-go/internal/game"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "coop2", cfg.Game.Mode)
	assert.Equal(t, "standard", cfg.Game.Difficulty)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Replay.Enabled)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Nil(t, cfg.Game.Rand())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "coop2", cfg.Game.Mode)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotzone.yaml")
	yaml := `
game:
  mode: coop3
  difficulty: heroic
  roles: [Medic, Dispatcher]
  names: [Ana, Ben]
  seed: 42
logging:
  level: debug
  format: json
replay:
  enabled: false
database:
  url: postgres://localhost/hotzone
  max_conns: 8
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "coop3", cfg.Game.Mode)
	assert.Equal(t, []string{"Medic", "Dispatcher"}, cfg.Game.Roles)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.NotNil(t, cfg.Game.Rand())
	assert.False(t, cfg.Replay.Enabled)
	assert.Equal(t, "postgres://localhost/hotzone", cfg.Database.URL)
	assert.Equal(t, int32(8), cfg.Database.MaxConns)

	setup, err := cfg.Game.Setup()
	require.NoError(t, err)
	assert.Equal(t, game.ModeCoop3, setup.Mode)
	assert.Equal(t, game.DifficultyHeroic, setup.Difficulty)
	assert.Equal(t, []rules.Role{rules.RoleMedic, rules.RoleDispatcher}, setup.Roles)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOTZONE_GAME_MODE", "solo1")
	t.Setenv("HOTZONE_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "solo1", cfg.Game.Mode)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown mode", "HOTZONE_GAME_MODE", "solo9"},
		{"unknown difficulty", "HOTZONE_GAME_DIFFICULTY", "nightmare"},
		{"unknown format", "HOTZONE_LOGGING_FORMAT", "xml"},
		{"zero conns", "HOTZONE_DATABASE_MAX_CONNS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestSetupRejectsUnknownRole(t *testing.T) {
	gc := GameConfig{Mode: "coop2", Difficulty: "standard", Roles: []string{"Pilot"}}
	_, err := gc.Setup()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(LoggingConfig{Level: "bogus", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
