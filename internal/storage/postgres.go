package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scythe504/loteria-backend/internal"
)

var (
	ErrUnexpectedDatabase = errors.New("unexpected database error")
	ErrDuplicateWin       = errors.New("win already recorded")
)

const (
	DefaultRecentWins = 20
	MaxRecentWins     = 200
)

// PostgresRepo is the ledger of announced wins.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// RecordWin stores one announced win.
func (r *PostgresRepo) RecordWin(ctx context.Context, win internal.WinRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO wins(id, room_id, player, pattern, winning_cards, drawn_count, won_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7)`,
		win.Id, win.RoomId, win.Player, win.Pattern, win.WinningCards, win.DrawnCount, win.WonAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateWin
		}
		return wrapErr(err)
	}
	return nil
}

// RecentWins returns the latest wins, newest first. An empty roomId means
// every room. limit is clamped to [1, MaxRecentWins].
func (r *PostgresRepo) RecentWins(ctx context.Context, roomId string, limit int) ([]internal.WinRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentWins
	}
	limit = min(limit, MaxRecentWins)

	rows, err := r.pool.Query(ctx,
		`SELECT id, room_id, player, pattern, winning_cards, drawn_count, won_at
		 FROM wins
		 WHERE $1::text = '' OR room_id = $1::text
		 ORDER BY won_at DESC, id
		 LIMIT $2`,
		roomId, limit,
	)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	wins := make([]internal.WinRecord, 0, limit)
	for rows.Next() {
		var w internal.WinRecord
		if err := rows.Scan(&w.Id, &w.RoomId, &w.Player, &w.Pattern, &w.WinningCards, &w.DrawnCount, &w.WonAt); err != nil {
			return nil, wrapErr(err)
		}
		wins = append(wins, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return wins, nil
}

func wrapErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
}
