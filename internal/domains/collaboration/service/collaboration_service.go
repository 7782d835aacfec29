package service

import (
	"context"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/repository"
	usermodel "github.com/alfrdzley/openmusic-api-v3/internal/domains/user/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/utils"
)

// UserChecker is the slice of the user domain this service needs: confirm a
// collaborator-to-be actually exists. The user repository satisfies it.
type UserChecker interface {
	GetByID(ctx context.Context, id string) (*usermodel.User, error)
}

type ServiceInterface interface {
	AddCollaborator(ctx context.Context, playlistID, userID string) (string, error)
	RemoveCollaborator(ctx context.Context, playlistID, userID string) error
	IsCollaborator(ctx context.Context, playlistID, userID string) error
}

type collaborationService struct {
	repo  repository.RepositoryInterface
	users UserChecker
}

func NewCollaborationService(repo repository.RepositoryInterface, users UserChecker) ServiceInterface {
	return &collaborationService{repo: repo, users: users}
}

// AddCollaborator grants userID access to playlistID. The user must exist;
// a duplicate pair is Conflict.
func (s *collaborationService) AddCollaborator(ctx context.Context, playlistID, userID string) (string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", err
	}

	c := &model.Collaboration{
		ID:         utils.NewID("collab"),
		PlaylistID: playlistID,
		UserID:     userID,
	}
	return s.repo.Insert(ctx, c)
}

func (s *collaborationService) RemoveCollaborator(ctx context.Context, playlistID, userID string) error {
	return s.repo.Delete(ctx, playlistID, userID)
}

// IsCollaborator reports membership as an authorization decision: absence is
// Forbidden, never NotFound, so callers cannot learn whether the playlist or
// the user exists.
func (s *collaborationService) IsCollaborator(ctx context.Context, playlistID, userID string) error {
	ok, err := s.repo.Exists(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fail.Forbidden("you are not allowed to access this resource")
	}
	return nil
}
