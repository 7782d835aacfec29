package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
	"github.com/alfrdzley/openmusic-api-v3/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Playlist) (string, error) {
	query := `
        INSERT INTO playlists (id, name, owner, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id
    `

	var id string
	if err := r.pool.QueryRow(ctx, query, p.ID, p.Name, p.Owner).Scan(&id); err != nil {
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) GetOwner(ctx context.Context, playlistID string) (string, error) {
	var owner string
	err := r.pool.QueryRow(ctx,
		`SELECT owner FROM playlists WHERE id = $1`, playlistID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fail.NotFound("playlist not found")
		}
		return "", fmt.Errorf("get playlist owner: %w", err)
	}
	return owner, nil
}

// GetAllByUser lists playlists the user owns plus those shared with them.
func (r *postgresRepository) GetAllByUser(ctx context.Context, userID string) ([]model.PlaylistSummary, error) {
	query := `
        SELECT DISTINCT p.id, p.name, u.username
        FROM playlists p
        LEFT JOIN users u ON u.id = p.owner
        LEFT JOIN playlist_collaborations pc ON pc.playlist_id = p.id
        WHERE p.owner = $1 OR pc.user_id = $1
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := []model.PlaylistSummary{}
	for rows.Next() {
		var p model.PlaylistSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("playlist not found")
	}
	return nil
}

func (r *postgresRepository) GetWithSongs(ctx context.Context, playlistID string) (*model.PlaylistWithSongs, error) {
	playlistQuery := `
        SELECT p.id, p.name, u.username
        FROM playlists p
        LEFT JOIN users u ON u.id = p.owner
        WHERE p.id = $1
    `

	var p model.PlaylistWithSongs
	err := r.pool.QueryRow(ctx, playlistQuery, playlistID).Scan(&p.ID, &p.Name, &p.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fail.NotFound("playlist not found")
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}

	songsQuery := `
        SELECT s.id, s.title, s.performer
        FROM songs s
        INNER JOIN playlist_songs ps ON ps.song_id = s.id
        WHERE ps.playlist_id = $1
    `

	rows, err := r.pool.Query(ctx, songsQuery, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	p.Songs = []model.SongSummary{}
	for rows.Next() {
		var s model.SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		p.Songs = append(p.Songs, s)
	}
	return &p, rows.Err()
}

// AddSong inserts the membership row and its activity entry in one
// transaction: either both land or neither does.
func (r *postgresRepository) AddSong(ctx context.Context, change *model.SongChange) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO playlist_songs (id, playlist_id, song_id) VALUES ($1, $2, $3)`,
			change.MembershipID, change.PlaylistID, change.SongID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fail.Conflict("song already in playlist")
			}
			return fmt.Errorf("insert playlist song: %w", err)
		}

		return r.appendActivity(ctx, tx, change, model.ActionAdd)
	})
}

// RemoveSong deletes the membership row and appends the delete activity in
// one transaction. A missing membership rolls back without an audit entry.
func (r *postgresRepository) RemoveSong(ctx context.Context, change *model.SongChange) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`,
			change.PlaylistID, change.SongID)
		if err != nil {
			return fmt.Errorf("delete playlist song: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fail.NotFound("song not found in playlist")
		}

		return r.appendActivity(ctx, tx, change, model.ActionDelete)
	})
}

func (r *postgresRepository) appendActivity(ctx context.Context, tx pgx.Tx, change *model.SongChange, action string) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO playlist_song_activities (id, playlist_id, song_id, user_id, action, time)
        VALUES ($1, $2, $3, $4, $5, NOW())
    `, change.ActivityID, change.PlaylistID, change.SongID, change.ActorID, action)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListActivities(ctx context.Context, playlistID string) ([]model.ActivityEntry, error) {
	query := `
        SELECT u.username, s.title, a.action, a.time
        FROM playlist_song_activities a
        INNER JOIN users u ON u.id = a.user_id
        INNER JOIN songs s ON s.id = a.song_id
        WHERE a.playlist_id = $1
        ORDER BY a.time ASC
    `

	rows, err := r.pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []model.ActivityEntry{}
	for rows.Next() {
		var a model.ActivityEntry
		if err := rows.Scan(&a.Username, &a.Title, &a.Action, &a.Time); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
