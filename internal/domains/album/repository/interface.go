package repository

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Album) (string, error)
	GetByID(ctx context.Context, id string) (*model.Album, error)
	GetAll(ctx context.Context) ([]model.Album, error)
	GetSongs(ctx context.Context, albumID string) ([]model.SongSummary, error)
	Update(ctx context.Context, a *model.Album) error
	Delete(ctx context.Context, id string) error
	UpdateCoverURL(ctx context.Context, id, coverURL string) error

	InsertLike(ctx context.Context, like *model.Like) (string, error)
	HasLike(ctx context.Context, albumID, userID string) (bool, error)
	DeleteLike(ctx context.Context, albumID, userID string) error
	CountLikes(ctx context.Context, albumID string) (int, error)
}
