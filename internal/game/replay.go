package game

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// replayVersion is bumped whenever the file layout changes.
const replayVersion = 1

// Replay is an ordered journal of state snapshots with a playback cursor.
type Replay struct {
	GameID       string
	States       []*State
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay for a game.
func NewReplay(gameID string) *Replay {
	return &Replay{
		GameID: gameID,
		States: make([]*State, 0),
	}
}

// Record appends a copy of state to the journal.
func (r *Replay) Record(state *State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = append(r.States, state.Clone())
}

// Start rewinds the cursor to the first snapshot.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the snapshot under the cursor and advances it, or nil at the end.
func (r *Replay) Next() *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.States) {
		state := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return state
	}
	return nil
}

// Previous steps the cursor back and returns that snapshot, or nil at the start.
func (r *Replay) Previous() *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Skip moves the cursor by count snapshots, clamped to the journal.
func (r *Replay) Skip(count int) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.States) == 0 {
		return nil
	}
	idx := r.CurrentIndex + count
	if idx >= len(r.States) {
		idx = len(r.States) - 1
	}
	if idx < 0 {
		idx = 0
	}
	r.CurrentIndex = idx
	return r.States[idx]
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.States)
}

// At returns the snapshot at index, or nil when out of range.
func (r *Replay) At(index int) *State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}

type replayHeader struct {
	GameID     string    `json:"gameId"`
	Timestamp  time.Time `json:"timestamp"`
	Version    int       `json:"version"`
	StateCount int       `json:"stateCount"`
}

func replayPath(directory, gameID string) string {
	return filepath.Join(directory, gameID+".replay")
}

// SaveToFile writes the replay to <directory>/<gameID>.replay as a gzipped
// stream of JSON values: a header, then one state per snapshot.
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(replayPath(directory, r.GameID))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	enc := json.NewEncoder(zw)
	header := replayHeader{
		GameID:     r.GameID,
		Timestamp:  time.Now().UTC(),
		Version:    replayVersion,
		StateCount: len(r.States),
	}
	if err := enc.Encode(&header); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	for i, state := range r.States {
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("failed to encode state %d: %w", i, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush replay: %w", err)
	}
	return nil
}

// LoadReplayFromFile reads a replay written by SaveToFile.
func LoadReplayFromFile(directory, gameID string) (*Replay, error) {
	file, err := os.Open(replayPath(directory, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer zr.Close()

	dec := json.NewDecoder(zr)
	var header replayHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	if header.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", header.Version)
	}

	replay := NewReplay(header.GameID)
	for i := 0; i < header.StateCount; i++ {
		var state State
		if err := dec.Decode(&state); err != nil {
			return nil, fmt.Errorf("failed to decode state %d: %w", i, err)
		}
		replay.States = append(replay.States, &state)
	}
	return replay, nil
}

// ReplayRecorder keeps one replay per game and can persist them to disk.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	replays map[string]*Replay
	saveDir string
}

// NewReplayRecorder creates a recorder that saves into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		replays: make(map[string]*Replay),
		saveDir: saveDir,
	}
}

// StartRecording begins a fresh replay for a game.
func (rr *ReplayRecorder) StartRecording(gameID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.replays[gameID] = NewReplay(gameID)
	rr.logger.Info("started replay recording", zap.String("game_id", gameID))
}

// Record appends a snapshot if the game is being recorded.
func (rr *ReplayRecorder) Record(gameID string, state *State) {
	rr.mu.RLock()
	replay := rr.replays[gameID]
	rr.mu.RUnlock()

	if replay == nil {
		return
	}
	replay.Record(state)
	rr.logger.Debug("recorded replay state",
		zap.String("game_id", gameID),
		zap.Int("state_count", replay.Size()),
	)
}

// Replay returns the in-memory replay for a game.
func (rr *ReplayRecorder) Replay(gameID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	replay, ok := rr.replays[gameID]
	return replay, ok
}

// Save writes a game's replay to disk and drops it from memory. A replay that
// fails to write stays in memory.
func (rr *ReplayRecorder) Save(gameID string) error {
	rr.mu.RLock()
	replay, ok := rr.replays[gameID]
	rr.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no replay found for game %s", gameID)
	}

	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}

	rr.mu.Lock()
	if rr.replays[gameID] == replay {
		delete(rr.replays, gameID)
	}
	rr.mu.Unlock()
	rr.logger.Info("saved replay to disk",
		zap.String("game_id", gameID),
		zap.Int("state_count", replay.Size()),
		zap.String("directory", rr.saveDir),
	)
	return nil
}

// Load reads a saved replay from disk.
func (rr *ReplayRecorder) Load(gameID string) (*Replay, error) {
	replay, err := LoadReplayFromFile(rr.saveDir, gameID)
	if err != nil {
		return nil, err
	}
	rr.logger.Info("loaded replay from disk",
		zap.String("game_id", gameID),
		zap.Int("state_count", replay.Size()),
	)
	return replay, nil
}

// Clear drops a replay without saving it.
func (rr *ReplayRecorder) Clear(gameID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	delete(rr.replays, gameID)
}
