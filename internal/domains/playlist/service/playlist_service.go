package service

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/repository"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/utils"
)

type playlistService struct {
	repo          repository.RepositoryInterface
	collaborators CollaboratorChecker
	songs         SongChecker
	users         UserChecker
	exports       ExportQueue
}

func NewPlaylistService(
	repo repository.RepositoryInterface,
	collaborators CollaboratorChecker,
	songs SongChecker,
	users UserChecker,
	exports ExportQueue,
) ServiceInterface {
	return &playlistService{
		repo:          repo,
		collaborators: collaborators,
		songs:         songs,
		users:         users,
		exports:       exports,
	}
}

func (s *playlistService) Create(ctx context.Context, name, ownerID string) (string, error) {
	// The owner must exist now, not merely satisfy a foreign key later.
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return "", err
	}

	p := &model.Playlist{
		ID:    utils.NewID("playlist"),
		Name:  name,
		Owner: ownerID,
	}
	return s.repo.Create(ctx, p)
}

func (s *playlistService) GetAllByUser(ctx context.Context, userID string) ([]model.PlaylistSummary, error) {
	return s.repo.GetAllByUser(ctx, userID)
}

// Delete is owner-only; collaborators cannot delete a playlist.
func (s *playlistService) Delete(ctx context.Context, playlistID, actorID string) error {
	if err := s.VerifyOwner(ctx, playlistID, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, playlistID)
}

// VerifyOwner reports NotFound when the playlist does not exist and
// Forbidden when the actor is not its owner.
func (s *playlistService) VerifyOwner(ctx context.Context, playlistID, actorID string) error {
	owner, err := s.repo.GetOwner(ctx, playlistID)
	if err != nil {
		return err
	}
	if owner != actorID {
		return fail.Forbidden("you are not allowed to access this resource")
	}
	return nil
}

// Authorize grants owner OR collaborator, nothing else. The ownership check
// runs first; only its Forbidden triggers the collaborator fallback, so a
// missing playlist still surfaces as NotFound. When both checks refuse, the
// ownership check's Forbidden is the one returned, keeping the error
// identical whichever path ran.
func (s *playlistService) Authorize(ctx context.Context, playlistID, actorID string) error {
	ownErr := s.VerifyOwner(ctx, playlistID, actorID)
	if ownErr == nil {
		return nil
	}
	if !fail.IsForbidden(ownErr) {
		return ownErr
	}

	collabErr := s.collaborators.IsCollaborator(ctx, playlistID, actorID)
	if collabErr == nil {
		return nil
	}
	if !fail.IsForbidden(collabErr) {
		return collabErr
	}
	return ownErr
}

func (s *playlistService) AddSong(ctx context.Context, playlistID, songID, actorID string) error {
	if err := s.Authorize(ctx, playlistID, actorID); err != nil {
		return err
	}
	if _, err := s.songs.GetByID(ctx, songID); err != nil {
		return err
	}

	change := &model.SongChange{
		MembershipID: utils.NewID("playlist-song"),
		ActivityID:   utils.NewID("activity"),
		PlaylistID:   playlistID,
		SongID:       songID,
		ActorID:      actorID,
	}
	return s.repo.AddSong(ctx, change)
}

func (s *playlistService) GetSongs(ctx context.Context, playlistID, actorID string) (*model.PlaylistWithSongs, error) {
	if err := s.Authorize(ctx, playlistID, actorID); err != nil {
		return nil, err
	}
	return s.repo.GetWithSongs(ctx, playlistID)
}

func (s *playlistService) RemoveSong(ctx context.Context, playlistID, songID, actorID string) error {
	if err := s.Authorize(ctx, playlistID, actorID); err != nil {
		return err
	}

	change := &model.SongChange{
		ActivityID: utils.NewID("activity"),
		PlaylistID: playlistID,
		SongID:     songID,
		ActorID:    actorID,
	}
	return s.repo.RemoveSong(ctx, change)
}

func (s *playlistService) ListActivities(ctx context.Context, playlistID, actorID string) ([]model.ActivityEntry, error) {
	if err := s.Authorize(ctx, playlistID, actorID); err != nil {
		return nil, err
	}
	return s.repo.ListActivities(ctx, playlistID)
}

func (s *playlistService) Export(ctx context.Context, playlistID, actorID, targetEmail string) error {
	if err := s.Authorize(ctx, playlistID, actorID); err != nil {
		return err
	}

	return s.exports.EnqueueExport(ctx, shared.ExportPlaylistPayload{
		UserID:      actorID,
		PlaylistID:  playlistID,
		TargetEmail: targetEmail,
	})
}
