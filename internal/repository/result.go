package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
)

type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (that *ResultStore) EnsureTables(ctx context.Context) error {
	_, err := that.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS game_results (
	id BIGSERIAL PRIMARY KEY,
	session_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	winner TEXT NOT NULL,
	against_ai BOOLEAN NOT NULL,
	moves INTEGER NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}

	_, err = that.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS game_results_kind_idx ON game_results (kind)`)
	if err != nil {
		return fmt.Errorf("failed to create results index: %w", err)
	}

	return nil
}

func (that *ResultStore) SaveResult(ctx context.Context, result *entity.Result) error {
	_, err := that.pool.Exec(ctx, `
INSERT INTO game_results (session_id, kind, winner, against_ai, moves, finished_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		result.SessionID, string(result.Kind), result.Winner, result.AgainstAI, result.Moves, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	return nil
}

// Leaderboard counts wins per winning side for one game. Draws are not counted.
func (that *ResultStore) Leaderboard(ctx context.Context, kind entity.Kind, limit int) ([]entity.LeaderboardRow, error) {
	rows, err := that.pool.Query(ctx, `
SELECT winner, COUNT(*) AS wins
FROM game_results
WHERE kind = $1 AND winner <> $2
GROUP BY winner
ORDER BY wins DESC, winner
LIMIT $3`, string(kind), game.ResultDraw, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	board, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.LeaderboardRow, error) {
		var item entity.LeaderboardRow
		err := row.Scan(&item.Winner, &item.Wins)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return board, nil
}
