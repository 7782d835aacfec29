package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/song/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, s *model.Song) (string, error) {
	query := `
        INSERT INTO songs (id, title, year, genre, performer, duration, album_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id
    `

	var id string
	err := r.pool.QueryRow(ctx, query,
		s.ID, s.Title, s.Year, s.Genre, s.Performer, s.Duration, s.AlbumID,
	).Scan(&id)
	if err != nil {
		// 23503: the referenced album does not exist.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return "", fail.NotFound("album not found")
		}
		return "", fmt.Errorf("insert song: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Song, error) {
	query := `
        SELECT id, title, year, genre, performer, duration, album_id, created_at, updated_at
        FROM songs
        WHERE id = $1
    `

	var s model.Song
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Year, &s.Genre, &s.Performer, &s.Duration, &s.AlbumID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fail.NotFound("song not found")
		}
		return nil, fmt.Errorf("get song by id: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter model.Filter) ([]model.SongSummary, error) {
	query := `SELECT id, title, performer FROM songs`
	args := []interface{}{}
	conditions := []string{}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Performer != "" {
		args = append(args, "%"+filter.Performer+"%")
		conditions = append(conditions, fmt.Sprintf("performer ILIKE $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := []model.SongSummary{}
	for rows.Next() {
		var s model.SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, s *model.Song) error {
	query := `
        UPDATE songs
        SET title = $1, year = $2, genre = $3, performer = $4, duration = $5, album_id = $6, updated_at = NOW()
        WHERE id = $7
    `

	tag, err := r.pool.Exec(ctx, query,
		s.Title, s.Year, s.Genre, s.Performer, s.Duration, s.AlbumID, s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fail.NotFound("album not found")
		}
		return fmt.Errorf("update song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("song not found")
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("song not found")
	}
	return nil
}
