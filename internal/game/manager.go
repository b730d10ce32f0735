package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"go.uber.org/zap"
)

var (
	// ErrGameNotFound is returned for an unknown game id.
	ErrGameNotFound = errors.New("game not found")
	// ErrNoStore is returned by Save and Restore when no store is configured.
	ErrNoStore = errors.New("no snapshot store configured")
)

// SnapshotStore persists exported games by id.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, gameID string, data []byte) error
	LoadSnapshot(ctx context.Context, gameID string) ([]byte, error)
	DeleteSnapshot(ctx context.Context, gameID string) error
}

// ManagerConfig wires a Manager's collaborators. Every field is optional.
type ManagerConfig struct {
	Logger *zap.Logger
	Store  SnapshotStore
	// Recorder journals a snapshot after every Do; nil disables replays.
	Recorder *ReplayRecorder
	Graph    *board.Graph
	// NewRand supplies the random source of each new or restored game.
	NewRand func() *rand.Rand
}

type managedGame struct {
	mu   sync.Mutex
	game *Game
}

// Manager hosts many games and serializes the calls into each of them.
type Manager struct {
	cfg    ManagerConfig
	logger *zap.Logger

	mu    sync.RWMutex
	games map[string]*managedGame
}

// NewManager creates an empty manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Manager{
		cfg:    cfg,
		logger: cfg.Logger.Named("manager"),
		games:  make(map[string]*managedGame),
	}
}

func (m *Manager) options() Options {
	opts := Options{
		Graph:  m.cfg.Graph,
		Sink:   NewZapSink(m.cfg.Logger),
		Logger: m.cfg.Logger,
	}
	if m.cfg.NewRand != nil {
		opts.Rand = m.cfg.NewRand()
	}
	return opts
}

// Create starts a new game and returns its id.
func (m *Manager) Create(setup Setup) (string, error) {
	g, err := New(setup, m.options())
	if err != nil {
		return "", err
	}
	id := g.ID()

	m.mu.Lock()
	m.games[id] = &managedGame{game: g}
	m.mu.Unlock()

	if m.cfg.Recorder != nil {
		m.cfg.Recorder.StartRecording(id)
		m.cfg.Recorder.Record(id, g.state)
	}
	m.logger.Info("game registered", zap.String("game_id", id))
	return id, nil
}

func (m *Manager) get(id string) (*managedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mg, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return mg, nil
}

// Do runs fn against a game while holding that game's lock. Calls into the
// same game never overlap; different games proceed in parallel.
func (m *Manager) Do(id string, fn func(*Game)) error {
	mg, err := m.get(id)
	if err != nil {
		return err
	}
	mg.mu.Lock()
	defer mg.mu.Unlock()

	fn(mg.game)
	if m.cfg.Recorder != nil {
		m.cfg.Recorder.Record(id, mg.game.state)
	}
	return nil
}

// State returns a copy of a game's state.
func (m *Manager) State(id string) (*State, error) {
	mg, err := m.get(id)
	if err != nil {
		return nil, err
	}
	mg.mu.Lock()
	defer mg.mu.Unlock()

	return mg.game.State(), nil
}

// IDs lists the hosted games in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Save exports a game into the snapshot store.
func (m *Manager) Save(ctx context.Context, id string) error {
	if m.cfg.Store == nil {
		return ErrNoStore
	}
	mg, err := m.get(id)
	if err != nil {
		return err
	}
	mg.mu.Lock()
	data, err := Export(mg.game)
	mg.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to export game %s: %w", id, err)
	}
	if err := m.cfg.Store.SaveSnapshot(ctx, id, data); err != nil {
		return fmt.Errorf("failed to save game %s: %w", id, err)
	}
	m.logger.Info("game saved", zap.String("game_id", id), zap.Int("bytes", len(data)))
	return nil
}

// Restore loads a game from the snapshot store, replacing any hosted game
// with the same id. With a recorder configured, the game's replay restarts
// from the restored state.
func (m *Manager) Restore(ctx context.Context, id string) error {
	if m.cfg.Store == nil {
		return ErrNoStore
	}
	data, err := m.cfg.Store.LoadSnapshot(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load game %s: %w", id, err)
	}
	g, err := Import(data, m.options())
	if err != nil {
		return fmt.Errorf("failed to import game %s: %w", id, err)
	}
	if g.ID() != id {
		return fmt.Errorf("%w: snapshot %s holds game %s", ErrInvalidSave, id, g.ID())
	}

	m.mu.Lock()
	m.games[id] = &managedGame{game: g}
	m.mu.Unlock()

	if m.cfg.Recorder != nil {
		m.cfg.Recorder.StartRecording(id)
		m.cfg.Recorder.Record(id, g.state)
	}
	m.logger.Info("game restored from store", zap.String("game_id", id))
	return nil
}

// Remove drops a game from memory and from the store.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if m.cfg.Recorder != nil {
		m.cfg.Recorder.Clear(id)
	}
	if m.cfg.Store != nil {
		if err := m.cfg.Store.DeleteSnapshot(ctx, id); err != nil {
			return fmt.Errorf("failed to delete game %s: %w", id, err)
		}
	}
	m.logger.Info("game removed", zap.String("game_id", id))
	return nil
}

// Replay returns the recorded snapshots of a game.
func (m *Manager) Replay(id string) (*Replay, error) {
	if m.cfg.Recorder == nil {
		return nil, fmt.Errorf("replays are disabled")
	}
	replay, ok := m.cfg.Recorder.Replay(id)
	if !ok {
		return nil, fmt.Errorf("%w: no replay for %s", ErrGameNotFound, id)
	}
	return replay, nil
}
