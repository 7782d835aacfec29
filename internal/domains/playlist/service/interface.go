package service

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
	songmodel "github.com/alfrdzley/openmusic-api-v3/internal/domains/song/model"
	usermodel "github.com/alfrdzley/openmusic-api-v3/internal/domains/user/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared"
)

// CollaboratorChecker is the capability the authorization fallback needs:
// nil means the pair is a collaborator, Forbidden means it is not.
// The collaboration service satisfies it.
type CollaboratorChecker interface {
	IsCollaborator(ctx context.Context, playlistID, userID string) error
}

// SongChecker confirms a song exists before it joins a playlist. The song
// repository satisfies it.
type SongChecker interface {
	GetByID(ctx context.Context, id string) (*songmodel.Song, error)
}

// UserChecker confirms the owner exists at playlist creation. The user
// repository satisfies it.
type UserChecker interface {
	GetByID(ctx context.Context, id string) (*usermodel.User, error)
}

// ExportQueue hands an export request to the background worker.
type ExportQueue interface {
	EnqueueExport(ctx context.Context, payload shared.ExportPlaylistPayload) error
}

type ServiceInterface interface {
	Create(ctx context.Context, name, ownerID string) (string, error)
	GetAllByUser(ctx context.Context, userID string) ([]model.PlaylistSummary, error)
	Delete(ctx context.Context, playlistID, actorID string) error

	VerifyOwner(ctx context.Context, playlistID, actorID string) error
	Authorize(ctx context.Context, playlistID, actorID string) error

	AddSong(ctx context.Context, playlistID, songID, actorID string) error
	GetSongs(ctx context.Context, playlistID, actorID string) (*model.PlaylistWithSongs, error)
	RemoveSong(ctx context.Context, playlistID, songID, actorID string) error
	ListActivities(ctx context.Context, playlistID, actorID string) ([]model.ActivityEntry, error)

	Export(ctx context.Context, playlistID, actorID, targetEmail string) error
}
