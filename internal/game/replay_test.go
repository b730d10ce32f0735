package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func turnState(gameID string, turn int) *State {
	return &State{GameID: gameID, Turn: turn, Mode: ModeCoop2}
}

func recordTurns(r *Replay, n int) {
	for i := 0; i < n; i++ {
		r.Record(turnState(r.GameID, i+1))
	}
}

func TestNewReplay(t *testing.T) {
	replay := NewReplay("game-123")
	assert.Equal(t, "game-123", replay.GameID)
	assert.Equal(t, 0, replay.CurrentIndex)
	assert.Equal(t, 0, len(replay.States))
}

func TestReplayRecordCopiesState(t *testing.T) {
	replay := NewReplay("game-123")
	state := turnState("game-123", 1)

	replay.Record(state)
	state.Turn = 99

	require.Equal(t, 1, replay.Size())
	assert.Equal(t, 1, replay.At(0).Turn)
}

func TestReplayNavigation(t *testing.T) {
	replay := NewReplay("game-123")
	recordTurns(replay, 5)

	replay.Start()
	assert.Equal(t, 0, replay.CurrentIndex)

	state := replay.Next()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Turn)
	state = replay.Next()
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Turn)
	assert.Equal(t, 2, replay.CurrentIndex)

	// Previous steps back onto the snapshot Next just returned.
	state = replay.Previous()
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Turn)
	state = replay.Previous()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Turn)
	assert.Equal(t, 0, replay.CurrentIndex)

	replay.Start()
	assert.Nil(t, replay.Previous())

	for i := 0; i < 10; i++ {
		replay.Next()
	}
	assert.Nil(t, replay.Next())
}

func TestReplaySkip(t *testing.T) {
	replay := NewReplay("game-123")
	recordTurns(replay, 10)
	replay.Start()

	tests := []struct {
		skip      int
		wantTurn  int
		wantIndex int
	}{
		{3, 4, 3},
		{5, 9, 8},
		{100, 10, 9},
		{-5, 5, 4},
		{-100, 1, 0},
	}
	for _, tt := range tests {
		state := replay.Skip(tt.skip)
		require.NotNil(t, state)
		assert.Equal(t, tt.wantTurn, state.Turn, "skip %d", tt.skip)
		assert.Equal(t, tt.wantIndex, replay.CurrentIndex, "skip %d", tt.skip)
	}

	assert.Nil(t, NewReplay("empty").Skip(1))
}

func TestReplayAt(t *testing.T) {
	replay := NewReplay("game-123")
	recordTurns(replay, 5)

	assert.Equal(t, 1, replay.At(0).Turn)
	assert.Equal(t, 5, replay.At(4).Turn)
	assert.Nil(t, replay.At(-1))
	assert.Nil(t, replay.At(5))
}

func TestReplaySaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	g, _ := newTestGame(t)

	replay := NewReplay(g.ID())
	replay.Record(g.state)
	g.Drive("Miami")
	replay.Record(g.state)

	require.NoError(t, replay.SaveToFile(tempDir))
	_, err := os.Stat(filepath.Join(tempDir, g.ID()+".replay"))
	require.NoError(t, err)

	loaded, err := LoadReplayFromFile(tempDir, g.ID())
	require.NoError(t, err)
	assert.Equal(t, replay.GameID, loaded.GameID)
	require.Equal(t, replay.Size(), loaded.Size())

	for i := 0; i < replay.Size(); i++ {
		want, err := ComputeChecksum(replay.At(i))
		require.NoError(t, err)
		got, err := ComputeChecksum(loaded.At(i))
		require.NoError(t, err)
		assert.Equal(t, want, got, "snapshot %d", i)
	}
	assert.Equal(t, "Miami", string(loaded.At(1).Players[0].Location))
}

func TestReplaySaveCreatesDirectory(t *testing.T) {
	replay := NewReplay("game-123")
	recordTurns(replay, 1)

	dir := filepath.Join(t.TempDir(), "subdir", "another")
	require.NoError(t, replay.SaveToFile(dir))

	_, err := os.Stat(filepath.Join(dir, "game-123.replay"))
	require.NoError(t, err)
}

func TestReplayLoadNonexistentFile(t *testing.T) {
	_, err := LoadReplayFromFile(t.TempDir(), "nonexistent")
	assert.Error(t, err)
}

func TestReplayLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.replay"), []byte("not gzip"), 0o644))

	_, err := LoadReplayFromFile(dir, "bad")
	assert.Error(t, err)
}

func TestReplayRecorder(t *testing.T) {
	recorder := NewReplayRecorder(zap.NewNop(), t.TempDir())
	gameID := "game-123"

	// Nothing is kept until recording starts.
	recorder.Record(gameID, turnState(gameID, 0))
	_, exists := recorder.Replay(gameID)
	assert.False(t, exists)

	recorder.StartRecording(gameID)
	for i := 0; i < 5; i++ {
		recorder.Record(gameID, turnState(gameID, i+1))
	}

	replay, exists := recorder.Replay(gameID)
	require.True(t, exists)
	assert.Equal(t, 5, replay.Size())

	require.NoError(t, recorder.Save(gameID))
	_, exists = recorder.Replay(gameID)
	assert.False(t, exists, "saved replays leave memory")
	assert.Error(t, recorder.Save(gameID))

	loaded, err := recorder.Load(gameID)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Size())
	assert.Equal(t, 5, loaded.At(4).Turn)
}

func TestReplayRecorderKeepsReplayWhenSaveFails(t *testing.T) {
	// A regular file where the directory should be makes every write fail.
	dir := filepath.Join(t.TempDir(), "replays")
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))

	recorder := NewReplayRecorder(zap.NewNop(), dir)
	gameID := "game-123"
	recorder.StartRecording(gameID)
	recordTurns(mustReplay(t, recorder, gameID), 3)

	assert.Error(t, recorder.Save(gameID))
	assert.Equal(t, 3, mustReplay(t, recorder, gameID).Size())

	// Once the directory is usable the same journal is written out.
	require.NoError(t, os.Remove(dir))
	require.NoError(t, recorder.Save(gameID))
	_, exists := recorder.Replay(gameID)
	assert.False(t, exists)
	loaded, err := recorder.Load(gameID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Size())
}

func TestReplayRecorderClear(t *testing.T) {
	recorder := NewReplayRecorder(nil, t.TempDir())
	gameID := "game-123"

	recorder.StartRecording(gameID)
	recordTurns(mustReplay(t, recorder, gameID), 3)

	recorder.Clear(gameID)

	_, exists := recorder.Replay(gameID)
	assert.False(t, exists)
	recorder.Record(gameID, turnState(gameID, 4))
	_, exists = recorder.Replay(gameID)
	assert.False(t, exists)
}

func TestReplayRecorderMultipleGames(t *testing.T) {
	recorder := NewReplayRecorder(zap.NewNop(), t.TempDir())
	counts := map[string]int{"game-1": 3, "game-2": 5, "game-3": 7}

	for id, n := range counts {
		recorder.StartRecording(id)
		for i := 0; i < n; i++ {
			recorder.Record(id, turnState(id, i+1))
		}
	}

	for id, n := range counts {
		assert.Equal(t, n, mustReplay(t, recorder, id).Size(), id)
		require.NoError(t, recorder.Save(id))
	}
	for id, n := range counts {
		loaded, err := recorder.Load(id)
		require.NoError(t, err)
		assert.Equal(t, n, loaded.Size(), id)
	}
}

func mustReplay(t *testing.T, rr *ReplayRecorder, gameID string) *Replay {
	t.Helper()
	replay, ok := rr.Replay(gameID)
	require.True(t, ok, "no replay for %s", gameID)
	return replay
}
