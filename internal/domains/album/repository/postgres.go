package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Album) (string, error) {
	query := `
        INSERT INTO albums (id, name, year, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id
    `

	var id string
	if err := r.pool.QueryRow(ctx, query, a.ID, a.Name, a.Year).Scan(&id); err != nil {
		return "", fmt.Errorf("insert album: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Album, error) {
	query := `
        SELECT id, name, year, cover_url, created_at, updated_at
        FROM albums
        WHERE id = $1
    `

	var a model.Album
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Year, &a.CoverURL, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fail.NotFound("album not found")
		}
		return nil, fmt.Errorf("get album by id: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Album, error) {
	query := `
        SELECT id, name, year, cover_url, created_at, updated_at
        FROM albums
        ORDER BY created_at
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := []model.Album{}
	for rows.Next() {
		var a model.Album
		if err := rows.Scan(&a.ID, &a.Name, &a.Year, &a.CoverURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

func (r *postgresRepository) GetSongs(ctx context.Context, albumID string) ([]model.SongSummary, error) {
	query := `SELECT id, title, performer FROM songs WHERE album_id = $1`

	rows, err := r.pool.Query(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("list album songs: %w", err)
	}
	defer rows.Close()

	songs := []model.SongSummary{}
	for rows.Next() {
		var s model.SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, fmt.Errorf("scan album song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Album) error {
	query := `
        UPDATE albums SET name = $1, year = $2, updated_at = NOW()
        WHERE id = $3
    `

	tag, err := r.pool.Exec(ctx, query, a.Name, a.Year, a.ID)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("album not found")
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("album not found")
	}
	return nil
}

func (r *postgresRepository) UpdateCoverURL(ctx context.Context, id, coverURL string) error {
	query := `
        UPDATE albums SET cover_url = $1, updated_at = NOW()
        WHERE id = $2
    `

	tag, err := r.pool.Exec(ctx, query, coverURL, id)
	if err != nil {
		return fmt.Errorf("update album cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("album not found")
	}
	return nil
}

func (r *postgresRepository) InsertLike(ctx context.Context, like *model.Like) (string, error) {
	query := `
        INSERT INTO album_likes (id, album_id, user_id, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id
    `

	var id string
	err := r.pool.QueryRow(ctx, query, like.ID, like.AlbumID, like.UserID).Scan(&id)
	if err != nil {
		// The unique (album_id, user_id) index decides concurrent likers;
		// the loser gets Conflict, not a raw storage error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fail.Conflict("album already liked")
		}
		return "", fmt.Errorf("insert like: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) HasLike(ctx context.Context, albumID, userID string) (bool, error) {
	query := `SELECT id FROM album_likes WHERE album_id = $1 AND user_id = $2`

	var id string
	err := r.pool.QueryRow(ctx, query, albumID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return true, nil
}

func (r *postgresRepository) DeleteLike(ctx context.Context, albumID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM album_likes WHERE album_id = $1 AND user_id = $2`, albumID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("like not found")
	}
	return nil
}

func (r *postgresRepository) CountLikes(ctx context.Context, albumID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM album_likes WHERE album_id = $1`, albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
