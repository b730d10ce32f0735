// Package app assembles a game host from configuration: logger, snapshot
// store, replay recorder and game manager.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/hotzone/hotzone-server-go/internal/config"
	"github.com/hotzone/hotzone-server-go/internal/game"
	"github.com/hotzone/hotzone-server-go/internal/store"
	"go.uber.org/zap"
)

// App owns the collaborators built from one Config.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	manager  *game.Manager
	recorder *game.ReplayRecorder
	closers  []func()
}

// New wires an App. A nil logger is built from cfg.Logging. With no database
// URL configured, snapshots are kept in memory.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		var err error
		logger, err = config.NewLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	a := &App{cfg: cfg, logger: logger}

	var snapshots game.SnapshotStore
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgres(ctx, cfg.Database, logger.Named("store"))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		snapshots = pg
	} else {
		snapshots = store.NewMemory()
		logger.Info("no database configured, keeping snapshots in memory")
	}

	if cfg.Replay.Enabled {
		a.recorder = game.NewReplayRecorder(logger.Named("replay"), cfg.Replay.Directory)
		logger.Info("replay recording enabled", zap.String("directory", cfg.Replay.Directory))
	}

	a.manager = game.NewManager(game.ManagerConfig{
		Logger:   logger,
		Store:    snapshots,
		Recorder: a.recorder,
		NewRand:  seededRands(cfg.Game.Seed),
	})
	return a, nil
}

// seededRands gives every game its own source. A zero seed leaves the choice
// to the engine.
func seededRands(seed uint64) func() *rand.Rand {
	if seed == 0 {
		return nil
	}
	var n atomic.Uint64
	return func() *rand.Rand {
		return game.SeededRand(seed + n.Add(1) - 1)
	}
}

// Manager returns the game manager.
func (a *App) Manager() *game.Manager {
	return a.manager
}

// Logger returns the process logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// NewGame starts a game with the configured table.
func (a *App) NewGame() (string, error) {
	setup, err := a.cfg.Game.Setup()
	if err != nil {
		return "", fmt.Errorf("invalid game config: %w", err)
	}
	return a.manager.Create(setup)
}

// Finish saves a game's snapshot and, when replays are on, writes its replay
// to disk.
func (a *App) Finish(ctx context.Context, id string) error {
	if err := a.manager.Save(ctx, id); err != nil {
		return err
	}
	if a.recorder == nil {
		return nil
	}
	if err := a.recorder.Save(id); err != nil {
		return fmt.Errorf("failed to save replay for %s: %w", id, err)
	}
	return nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}
