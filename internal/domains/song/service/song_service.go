package service

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/song/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/song/repository"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.SongRequest) (string, error)
	GetByID(ctx context.Context, id string) (*model.Song, error)
	GetAll(ctx context.Context, filter model.Filter) ([]model.SongSummary, error)
	Update(ctx context.Context, id string, req *model.SongRequest) error
	Delete(ctx context.Context, id string) error
}

type songService struct {
	repo repository.RepositoryInterface
}

func NewSongService(repo repository.RepositoryInterface) ServiceInterface {
	return &songService{repo: repo}
}

func (s *songService) Create(ctx context.Context, req *model.SongRequest) (string, error) {
	song := &model.Song{
		ID:        utils.NewID("song"),
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
	return s.repo.Create(ctx, song)
}

func (s *songService) GetByID(ctx context.Context, id string) (*model.Song, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *songService) GetAll(ctx context.Context, filter model.Filter) ([]model.SongSummary, error) {
	return s.repo.GetAll(ctx, filter)
}

func (s *songService) Update(ctx context.Context, id string, req *model.SongRequest) error {
	song := &model.Song{
		ID:        id,
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
	return s.repo.Update(ctx, song)
}

func (s *songService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
