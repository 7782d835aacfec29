package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
	songmodel "github.com/alfrdzley/openmusic-api-v3/internal/domains/song/model"
	usermodel "github.com/alfrdzley/openmusic-api-v3/internal/domains/user/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type fakePlaylistRepo struct {
	owners     map[string]string          // playlist id -> owner id
	songs      map[string]map[string]bool // playlist id -> song id set
	activities []model.SongChange
	actions    []string
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		owners: map[string]string{},
		songs:  map[string]map[string]bool{},
	}
}

func (r *fakePlaylistRepo) Create(_ context.Context, p *model.Playlist) (string, error) {
	r.owners[p.ID] = p.Owner
	return p.ID, nil
}

func (r *fakePlaylistRepo) GetOwner(_ context.Context, playlistID string) (string, error) {
	owner, ok := r.owners[playlistID]
	if !ok {
		return "", fail.NotFound("playlist not found")
	}
	return owner, nil
}

func (r *fakePlaylistRepo) GetAllByUser(_ context.Context, userID string) ([]model.PlaylistSummary, error) {
	var out []model.PlaylistSummary
	for id, owner := range r.owners {
		if owner == userID {
			out = append(out, model.PlaylistSummary{ID: id})
		}
	}
	return out, nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id string) error {
	delete(r.owners, id)
	return nil
}

func (r *fakePlaylistRepo) GetWithSongs(_ context.Context, playlistID string) (*model.PlaylistWithSongs, error) {
	if _, ok := r.owners[playlistID]; !ok {
		return nil, fail.NotFound("playlist not found")
	}
	p := &model.PlaylistWithSongs{ID: playlistID, Songs: []model.SongSummary{}}
	for songID := range r.songs[playlistID] {
		p.Songs = append(p.Songs, model.SongSummary{ID: songID})
	}
	return p, nil
}

func (r *fakePlaylistRepo) AddSong(_ context.Context, change *model.SongChange) error {
	if r.songs[change.PlaylistID] == nil {
		r.songs[change.PlaylistID] = map[string]bool{}
	}
	if r.songs[change.PlaylistID][change.SongID] {
		return fail.Conflict("song already in playlist")
	}
	r.songs[change.PlaylistID][change.SongID] = true
	r.activities = append(r.activities, *change)
	r.actions = append(r.actions, model.ActionAdd)
	return nil
}

func (r *fakePlaylistRepo) RemoveSong(_ context.Context, change *model.SongChange) error {
	if !r.songs[change.PlaylistID][change.SongID] {
		return fail.NotFound("song not found in playlist")
	}
	delete(r.songs[change.PlaylistID], change.SongID)
	r.activities = append(r.activities, *change)
	r.actions = append(r.actions, model.ActionDelete)
	return nil
}

func (r *fakePlaylistRepo) ListActivities(_ context.Context, playlistID string) ([]model.ActivityEntry, error) {
	var out []model.ActivityEntry
	for i, change := range r.activities {
		if change.PlaylistID == playlistID {
			out = append(out, model.ActivityEntry{
				Username: change.ActorID,
				Title:    change.SongID,
				Action:   r.actions[i],
			})
		}
	}
	return out, nil
}

type fakeCollaborators struct {
	pairs map[string]bool // playlistID|userID
}

func (f *fakeCollaborators) grant(playlistID, userID string) {
	if f.pairs == nil {
		f.pairs = map[string]bool{}
	}
	f.pairs[playlistID+"|"+userID] = true
}

func (f *fakeCollaborators) revoke(playlistID, userID string) {
	delete(f.pairs, playlistID+"|"+userID)
}

func (f *fakeCollaborators) IsCollaborator(_ context.Context, playlistID, userID string) error {
	if f.pairs[playlistID+"|"+userID] {
		return nil
	}
	return fail.Forbidden("you are not allowed to access this resource")
}

type fakeSongs struct {
	ids map[string]bool
}

func (f *fakeSongs) GetByID(_ context.Context, id string) (*songmodel.Song, error) {
	if !f.ids[id] {
		return nil, fail.NotFound("song not found")
	}
	return &songmodel.Song{ID: id}, nil
}

type fakeUsers struct {
	ids map[string]bool
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*usermodel.User, error) {
	if !f.ids[id] {
		return nil, fail.NotFound("user not found")
	}
	return &usermodel.User{ID: id}, nil
}

type fakeExportQueue struct {
	enqueued []shared.ExportPlaylistPayload
}

func (f *fakeExportQueue) EnqueueExport(_ context.Context, payload shared.ExportPlaylistPayload) error {
	f.enqueued = append(f.enqueued, payload)
	return nil
}

type fixture struct {
	svc     ServiceInterface
	repo    *fakePlaylistRepo
	collabs *fakeCollaborators
	songs   *fakeSongs
	exports *fakeExportQueue
}

func newFixture() *fixture {
	repo := newFakePlaylistRepo()
	repo.owners["playlist-1"] = "user-owner"
	collabs := &fakeCollaborators{}
	songs := &fakeSongs{ids: map[string]bool{"song-1": true}}
	users := &fakeUsers{ids: map[string]bool{"user-owner": true, "user-collab": true}}
	exports := &fakeExportQueue{}

	return &fixture{
		svc:     NewPlaylistService(repo, collabs, songs, users, exports),
		repo:    repo,
		collabs: collabs,
		songs:   songs,
		exports: exports,
	}
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	t.Run("owner is granted", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.svc.Authorize(ctx, "playlist-1", "user-owner"))
	})

	t.Run("collaborator is granted", func(t *testing.T) {
		f := newFixture()
		f.collabs.grant("playlist-1", "user-collab")
		require.NoError(t, f.svc.Authorize(ctx, "playlist-1", "user-collab"))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture()
		err := f.svc.Authorize(ctx, "playlist-1", "user-stranger")
		assert.True(t, fail.IsForbidden(err))
	})

	t.Run("missing playlist is not found, not forbidden", func(t *testing.T) {
		f := newFixture()
		err := f.svc.Authorize(ctx, "playlist-missing", "user-owner")
		assert.True(t, fail.IsNotFound(err))
	})

	t.Run("revoked collaborator loses access", func(t *testing.T) {
		f := newFixture()
		f.collabs.grant("playlist-1", "user-collab")
		require.NoError(t, f.svc.Authorize(ctx, "playlist-1", "user-collab"))

		f.collabs.revoke("playlist-1", "user-collab")
		err := f.svc.Authorize(ctx, "playlist-1", "user-collab")
		assert.True(t, fail.IsForbidden(err))
	})
}

func TestDeleteIsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.collabs.grant("playlist-1", "user-collab")

	err := f.svc.Delete(ctx, "playlist-1", "user-collab")
	assert.True(t, fail.IsForbidden(err))

	require.NoError(t, f.svc.Delete(ctx, "playlist-1", "user-owner"))
	_, err = f.repo.GetOwner(ctx, "playlist-1")
	assert.True(t, fail.IsNotFound(err))
}

func TestAddSong(t *testing.T) {
	ctx := context.Background()

	t.Run("records one add activity with actor attribution", func(t *testing.T) {
		f := newFixture()
		f.collabs.grant("playlist-1", "user-collab")

		require.NoError(t, f.svc.AddSong(ctx, "playlist-1", "song-1", "user-collab"))

		require.Len(t, f.repo.activities, 1)
		change := f.repo.activities[0]
		assert.Equal(t, "user-collab", change.ActorID)
		assert.Equal(t, "song-1", change.SongID)
		assert.True(t, strings.HasPrefix(change.MembershipID, "playlist-song-"))
		assert.True(t, strings.HasPrefix(change.ActivityID, "activity-"))
		assert.Equal(t, model.ActionAdd, f.repo.actions[0])
	})

	t.Run("missing song leaves playlist and audit untouched", func(t *testing.T) {
		f := newFixture()
		err := f.svc.AddSong(ctx, "playlist-1", "song-missing", "user-owner")
		assert.True(t, fail.IsNotFound(err))
		assert.Empty(t, f.repo.activities)
	})

	t.Run("stranger cannot add", func(t *testing.T) {
		f := newFixture()
		err := f.svc.AddSong(ctx, "playlist-1", "song-1", "user-stranger")
		assert.True(t, fail.IsForbidden(err))
		assert.Empty(t, f.repo.activities)
	})

	t.Run("duplicate membership is conflict", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.svc.AddSong(ctx, "playlist-1", "song-1", "user-owner"))
		err := f.svc.AddSong(ctx, "playlist-1", "song-1", "user-owner")
		assert.True(t, fail.IsConflict(err))
	})
}

func TestRemoveSong(t *testing.T) {
	ctx := context.Background()

	t.Run("remove then list shows both actions in order", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.svc.AddSong(ctx, "playlist-1", "song-1", "user-owner"))
		require.NoError(t, f.svc.RemoveSong(ctx, "playlist-1", "song-1", "user-owner"))

		entries, err := f.svc.ListActivities(ctx, "playlist-1", "user-owner")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, model.ActionAdd, entries[0].Action)
		assert.Equal(t, model.ActionDelete, entries[1].Action)
	})

	t.Run("song absent from playlist is not found", func(t *testing.T) {
		f := newFixture()
		err := f.svc.RemoveSong(ctx, "playlist-1", "song-1", "user-owner")
		assert.True(t, fail.IsNotFound(err))
	})
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("authorized actor enqueues the job", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.svc.Export(ctx, "playlist-1", "user-owner", "owner@example.com"))

		require.Len(t, f.exports.enqueued, 1)
		payload := f.exports.enqueued[0]
		assert.Equal(t, "playlist-1", payload.PlaylistID)
		assert.Equal(t, "user-owner", payload.UserID)
		assert.Equal(t, "owner@example.com", payload.TargetEmail)
	})

	t.Run("stranger enqueues nothing", func(t *testing.T) {
		f := newFixture()
		err := f.svc.Export(ctx, "playlist-1", "user-stranger", "x@example.com")
		assert.True(t, fail.IsForbidden(err))
		assert.Empty(t, f.exports.enqueued)
	})
}

func TestCreateRequiresExistingOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	id, err := f.svc.Create(ctx, "Rock Anthems", "user-owner")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "playlist-"))

	_, err = f.svc.Create(ctx, "Ghost Playlist", "user-missing")
	assert.True(t, fail.IsNotFound(err))
}
