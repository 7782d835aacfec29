package repository

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/song/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, s *model.Song) (string, error)
	GetByID(ctx context.Context, id string) (*model.Song, error)
	GetAll(ctx context.Context, filter model.Filter) ([]model.SongSummary, error)
	Update(ctx context.Context, s *model.Song) error
	Delete(ctx context.Context, id string) error
}
