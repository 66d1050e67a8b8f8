package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// ReleaseRepository stores the distributed client build description.
type ReleaseRepository interface {
	// GetCurrent returns the newest release row, or nil when none was ever written.
	GetCurrent(ctx context.Context) (*domain.ReleaseInfo, error)
	// Upsert updates the newest release row in place, inserting on first write.
	Upsert(ctx context.Context, info *domain.ReleaseInfo) error
}

type releaseRepository struct {
	pool *pgxpool.Pool
}

// NewReleaseRepository instantiates the repository.
func NewReleaseRepository(pool *pgxpool.Pool) ReleaseRepository {
	return &releaseRepository{pool: pool}
}

func (r *releaseRepository) GetCurrent(ctx context.Context) (*domain.ReleaseInfo, error) {
	const query = `
        SELECT id, current_version, min_version, force_update, download_url, release_notes, updated_at
        FROM app_versions ORDER BY id DESC LIMIT 1`

	var info domain.ReleaseInfo
	if err := r.pool.QueryRow(ctx, query).Scan(
		&info.ID,
		&info.CurrentVersion,
		&info.MinVersion,
		&info.ForceUpdate,
		&info.DownloadURL,
		&info.ReleaseNotes,
		&info.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *releaseRepository) Upsert(ctx context.Context, info *domain.ReleaseInfo) error {
	current, err := r.GetCurrent(ctx)
	if err != nil {
		return err
	}

	if current == nil {
		const insert = `
            INSERT INTO app_versions (current_version, min_version, force_update, download_url, release_notes)
            VALUES ($1,$2,$3,$4,$5)
            RETURNING id, updated_at`
		return r.pool.QueryRow(ctx, insert,
			info.CurrentVersion,
			info.MinVersion,
			info.ForceUpdate,
			info.DownloadURL,
			info.ReleaseNotes,
		).Scan(&info.ID, &info.UpdatedAt)
	}

	const update = `
        UPDATE app_versions
        SET current_version=$1, min_version=$2, force_update=$3, download_url=$4, release_notes=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	info.ID = current.ID
	return r.pool.QueryRow(ctx, update,
		info.CurrentVersion,
		info.MinVersion,
		info.ForceUpdate,
		info.DownloadURL,
		info.ReleaseNotes,
		current.ID,
	).Scan(&info.UpdatedAt)
}
