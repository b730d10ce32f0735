package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hotzone/hotzone-server-go/internal/config"
	"github.com/hotzone/hotzone-server-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Replay.Directory = t.TempDir()
	cfg.Game.Seed = 9
	return cfg
}

func TestNewGameUsesConfiguredTable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Game.Mode = "coop3"
	cfg.Game.Roles = []string{"Medic", "Dispatcher"}

	a, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	id, err := a.NewGame()
	require.NoError(t, err)

	s, err := a.Manager().State(id)
	require.NoError(t, err)
	require.Len(t, s.Players, 3)
	assert.Equal(t, "Medic", string(s.Players[0].Role))
	assert.Equal(t, "Dispatcher", string(s.Players[1].Role))
	assert.Equal(t, "Generalist", string(s.Players[2].Role))
}

func TestSeededGamesAreReproducible(t *testing.T) {
	states := make([]game.State, 2)
	for i := range states {
		a, err := New(context.Background(), testConfig(t), zaptest.NewLogger(t))
		require.NoError(t, err)
		id, err := a.NewGame()
		require.NoError(t, err)
		s, err := a.Manager().State(id)
		require.NoError(t, err)
		states[i] = *s
		a.Close()
	}
	assert.Equal(t, states[0].PlayerDeck, states[1].PlayerDeck)
	assert.Equal(t, states[0].InfectionDeck, states[1].InfectionDeck)
}

func TestFinishWritesSnapshotAndReplay(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	id, err := a.NewGame()
	require.NoError(t, err)
	require.NoError(t, a.Manager().Do(id, func(g *game.Game) { g.Drive("Miami") }))

	require.NoError(t, a.Finish(ctx, id))

	_, err = os.Stat(filepath.Join(cfg.Replay.Directory, id+".replay"))
	require.NoError(t, err)
	loaded, err := game.LoadReplayFromFile(cfg.Replay.Directory, id)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Size())

	require.NoError(t, a.Manager().Restore(ctx, id))
}

func TestFinishWithoutReplays(t *testing.T) {
	cfg := testConfig(t)
	cfg.Replay.Enabled = false
	a, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	id, err := a.NewGame()
	require.NoError(t, err)
	require.NoError(t, a.Finish(context.Background(), id))

	_, err = a.Manager().Replay(id)
	assert.Error(t, err)
}

func TestNewFailsOnBadDatabaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.URL = "://not a url"

	_, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
