package service

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/model"
)

// CoverStorage is the slice of object storage the album service needs.
type CoverStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ServiceInterface interface {
	Create(ctx context.Context, req *model.AlbumRequest) (string, error)
	GetByID(ctx context.Context, id string) (*model.AlbumDetail, error)
	GetAll(ctx context.Context) ([]model.Album, error)
	Update(ctx context.Context, id string, req *model.AlbumRequest) error
	Delete(ctx context.Context, id string) error
	UploadCover(ctx context.Context, id string, data []byte, contentType string) (string, error)

	Like(ctx context.Context, albumID, userID string) error
	Unlike(ctx context.Context, albumID, userID string) error
	CountLikes(ctx context.Context, albumID string) (*model.LikeCount, error)
}
