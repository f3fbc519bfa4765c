package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyburst-games/popmeta/internal/domain"
)

const (
	queryGetSlot = `SELECT data FROM player_slots WHERE player_id = $1 AND slot = $2`

	queryUpsertSlot = `
		INSERT INTO player_slots (player_id, slot, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (player_id, slot)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`
)

// PostgresStore persists slots in the player_slots table as jsonb rows.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Get(ctx context.Context, playerID, slot string) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, queryGetSlot, playerID, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	return data, nil
}

func (p *PostgresStore) Put(ctx context.Context, playerID, slot string, data []byte) error {
	if _, err := p.pool.Exec(ctx, queryUpsertSlot, playerID, slot, data); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	return nil
}

func (p *PostgresStore) Close() {
	p.pool.Close()
}
