package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, c *model.Collaboration) (string, error) {
	query := `
        INSERT INTO playlist_collaborations (id, playlist_id, user_id, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id
    `

	var id string
	err := r.pool.QueryRow(ctx, query, c.ID, c.PlaylistID, c.UserID).Scan(&id)
	if err != nil {
		// Two concurrent adds of the same pair race on the unique index;
		// the loser must see Conflict, not a raw storage error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fail.Conflict("collaboration already exists")
		}
		return "", fmt.Errorf("insert collaboration: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) Delete(ctx context.Context, playlistID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM playlist_collaborations WHERE playlist_id = $1 AND user_id = $2`,
		playlistID, userID)
	if err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("collaboration not found")
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, playlistID, userID string) (bool, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM playlist_collaborations WHERE playlist_id = $1 AND user_id = $2`,
		playlistID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check collaboration: %w", err)
	}
	return true, nil
}
