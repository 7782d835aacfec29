package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/user/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) (string, error) {
	query := `
        INSERT INTO users (id, username, password, fullname)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	var id string
	err := r.pool.QueryRow(ctx, query, u.ID, u.Username, u.Password, u.Fullname).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fail.Conflict("username already taken")
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, username, password, fullname FROM users WHERE id = $1`

	var u model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Password, &u.Fullname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fail.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password, fullname FROM users WHERE username = $1`

	var u model.User
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Password, &u.Fullname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fail.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) SaveRefreshToken(ctx context.Context, token string) error {
	if _, err := r.pool.Exec(ctx, `INSERT INTO authentications (token) VALUES ($1)`, token); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (r *postgresRepository) VerifyRefreshToken(ctx context.Context, token string) error {
	var exists string
	err := r.pool.QueryRow(ctx, `SELECT token FROM authentications WHERE token = $1`, token).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fail.NotFound("refresh token not found")
		}
		return fmt.Errorf("verify refresh token: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authentications WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fail.NotFound("refresh token not found")
	}
	return nil
}
