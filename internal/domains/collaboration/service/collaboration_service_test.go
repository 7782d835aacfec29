package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/model"
	usermodel "github.com/alfrdzley/openmusic-api-v3/internal/domains/user/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type fakeCollabRepo struct {
	rows map[string]string // playlistID|userID -> collaboration id
}

func newFakeCollabRepo() *fakeCollabRepo {
	return &fakeCollabRepo{rows: map[string]string{}}
}

func pairKey(playlistID, userID string) string {
	return playlistID + "|" + userID
}

func (r *fakeCollabRepo) Insert(_ context.Context, c *model.Collaboration) (string, error) {
	key := pairKey(c.PlaylistID, c.UserID)
	if _, ok := r.rows[key]; ok {
		return "", fail.Conflict("collaboration already exists")
	}
	r.rows[key] = c.ID
	return c.ID, nil
}

func (r *fakeCollabRepo) Delete(_ context.Context, playlistID, userID string) error {
	key := pairKey(playlistID, userID)
	if _, ok := r.rows[key]; !ok {
		return fail.NotFound("collaboration not found")
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeCollabRepo) Exists(_ context.Context, playlistID, userID string) (bool, error) {
	_, ok := r.rows[pairKey(playlistID, userID)]
	return ok, nil
}

type stubUsers struct {
	ids map[string]bool
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*usermodel.User, error) {
	if !s.ids[id] {
		return nil, fail.NotFound("user not found")
	}
	return &usermodel.User{ID: id}, nil
}

func newCollabService() (ServiceInterface, *fakeCollabRepo) {
	repo := newFakeCollabRepo()
	users := &stubUsers{ids: map[string]bool{"user-alice": true, "user-bob": true}}
	return NewCollaborationService(repo, users), repo
}

func TestAddCollaborator(t *testing.T) {
	ctx := context.Background()

	t.Run("grants access and returns a collab id", func(t *testing.T) {
		svc, _ := newCollabService()
		id, err := svc.AddCollaborator(ctx, "playlist-1", "user-bob")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, "collab-"))

		require.NoError(t, svc.IsCollaborator(ctx, "playlist-1", "user-bob"))
	})

	t.Run("duplicate pair is conflict and row count stays one", func(t *testing.T) {
		svc, repo := newCollabService()
		_, err := svc.AddCollaborator(ctx, "playlist-1", "user-bob")
		require.NoError(t, err)

		_, err = svc.AddCollaborator(ctx, "playlist-1", "user-bob")
		assert.True(t, fail.IsConflict(err))
		assert.Len(t, repo.rows, 1)
	})

	t.Run("missing user is not found and nothing is stored", func(t *testing.T) {
		svc, repo := newCollabService()
		_, err := svc.AddCollaborator(ctx, "playlist-1", "user-ghost")
		assert.True(t, fail.IsNotFound(err))
		assert.Empty(t, repo.rows)
	})
}

func TestRemoveCollaborator(t *testing.T) {
	ctx := context.Background()

	t.Run("removal revokes the grant", func(t *testing.T) {
		svc, _ := newCollabService()
		_, err := svc.AddCollaborator(ctx, "playlist-1", "user-bob")
		require.NoError(t, err)

		require.NoError(t, svc.RemoveCollaborator(ctx, "playlist-1", "user-bob"))
		err = svc.IsCollaborator(ctx, "playlist-1", "user-bob")
		assert.True(t, fail.IsForbidden(err))
	})

	t.Run("missing pair is not found", func(t *testing.T) {
		svc, _ := newCollabService()
		err := svc.RemoveCollaborator(ctx, "playlist-1", "user-bob")
		assert.True(t, fail.IsNotFound(err))
	})
}

// IsCollaborator must answer absence with Forbidden, not NotFound, so the
// authorization path leaks nothing about what exists.
func TestIsCollaboratorAbsenceIsForbidden(t *testing.T) {
	svc, _ := newCollabService()
	err := svc.IsCollaborator(context.Background(), "playlist-unknown", "user-alice")
	assert.True(t, fail.IsForbidden(err))
	assert.False(t, fail.IsNotFound(err))
}
