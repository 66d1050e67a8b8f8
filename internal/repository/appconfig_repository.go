package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// AppConfigRepository is the key/value store behind over-the-air client config.
// Writes go straight through to the table; there is no in-process copy.
type AppConfigRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// EnsureDefault writes the value only when the key is absent.
	EnsureDefault(ctx context.Context, key, value string) error
	ListAll(ctx context.Context) ([]domain.ConfigEntry, error)
}

type appConfigRepository struct {
	pool *pgxpool.Pool
}

// NewAppConfigRepository instantiates the repository.
func NewAppConfigRepository(pool *pgxpool.Pool) AppConfigRepository {
	return &appConfigRepository{pool: pool}
}

func (r *appConfigRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM app_config WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *appConfigRepository) Set(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO app_config (key, value) VALUES ($1,$2)
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *appConfigRepository) EnsureDefault(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO app_config (key, value) VALUES ($1,$2)
        ON CONFLICT (key) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *appConfigRepository) ListAll(ctx context.Context) ([]domain.ConfigEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value, updated_at FROM app_config ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ConfigEntry
	for rows.Next() {
		var entry domain.ConfigEntry
		if err := rows.Scan(&entry.Key, &entry.Value, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
