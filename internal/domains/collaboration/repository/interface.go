package repository

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/model"
)

type RepositoryInterface interface {
	Insert(ctx context.Context, c *model.Collaboration) (string, error)
	Delete(ctx context.Context, playlistID, userID string) error
	Exists(ctx context.Context, playlistID, userID string) (bool, error)
}
