package repository

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Playlist) (string, error)
	GetOwner(ctx context.Context, playlistID string) (string, error)
	GetAllByUser(ctx context.Context, userID string) ([]model.PlaylistSummary, error)
	Delete(ctx context.Context, id string) error

	GetWithSongs(ctx context.Context, playlistID string) (*model.PlaylistWithSongs, error)
	AddSong(ctx context.Context, change *model.SongChange) error
	RemoveSong(ctx context.Context, change *model.SongChange) error
	ListActivities(ctx context.Context, playlistID string) ([]model.ActivityEntry, error)
}
