package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo is the read-through cache of enriched catalog entries.
type PostgresRepo struct {
	db        *pgxpool.Pool
	freshness time.Duration
	timeout   time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, freshness, timeout time.Duration) *PostgresRepo {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &PostgresRepo{db: db, freshness: freshness, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// GetEntry returns a cached entry fetched within the freshness window.
func (r *PostgresRepo) GetEntry(ctx context.Context, id int) (Entry, bool, error) {
	const sql = `
		SELECT payload, fetched_at
		FROM catalog_pokemon
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		payload   []byte
		fetchedAt time.Time
	)
	err := r.db.QueryRow(timeoutCtx, sql, id).Scan(&payload, &fetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get cached entry %d: %w", id, err)
	}
	if r.freshness > 0 && time.Since(fetchedAt) > r.freshness {
		return Entry{}, false, nil
	}

	var e Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cached entry %d: %w", id, err)
	}
	return e, true, nil
}

func (r *PostgresRepo) PutEntry(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry %d: %w", e.ID, err)
	}

	const sql = `
		INSERT INTO catalog_pokemon (id, name, generation, is_legendary, payload, fetched_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			generation = EXCLUDED.generation,
			is_legendary = EXCLUDED.is_legendary,
			payload = EXCLUDED.payload,
			fetched_at = now()`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, sql, e.ID, e.Name, e.Generation, e.IsLegendary, payload); err != nil {
		return fmt.Errorf("upsert cached entry %d: %w", e.ID, err)
	}
	return nil
}
