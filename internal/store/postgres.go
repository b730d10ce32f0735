package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/hotzone/hotzone-server-go/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_snapshots (
	game_id    TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres keeps one snapshot row per game in the game_snapshots table.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres connects to the database, checks the connection and makes
// sure the snapshot table exists.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Postgres, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	stats := pool.Stat()
	logger.Info("snapshot store connected",
		zap.Int32("max_conns", stats.MaxConns()),
		zap.Int32("total_conns", stats.TotalConns()),
	)
	return &Postgres{pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// SaveSnapshot upserts the snapshot of a game.
func (p *Postgres) SaveSnapshot(ctx context.Context, gameID string, data []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO game_snapshots (game_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (game_id) DO UPDATE SET state = EXCLUDED.state, updated_at = now()
	`, gameID, data)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", gameID, err)
	}
	p.logger.Debug("snapshot saved", zap.String("game_id", gameID), zap.Int("bytes", len(data)))
	return nil
}

// LoadSnapshot returns the stored snapshot of a game.
func (p *Postgres) LoadSnapshot(ctx context.Context, gameID string) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, "SELECT state FROM game_snapshots WHERE game_id = $1", gameID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", gameID, err)
	}
	return data, nil
}

// DeleteSnapshot removes a game's snapshot. Deleting a missing id is not an
// error.
func (p *Postgres) DeleteSnapshot(ctx context.Context, gameID string) error {
	if _, err := p.pool.Exec(ctx, "DELETE FROM game_snapshots WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", gameID, err)
	}
	return nil
}

// IDs lists stored game ids, most recently saved first.
func (p *Postgres) IDs(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, "SELECT game_id FROM game_snapshots ORDER BY updated_at DESC, game_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return ids, nil
}
