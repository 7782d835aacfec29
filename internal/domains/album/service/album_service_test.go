package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type fakeAlbumRepo struct {
	albums map[string]*model.Album
	likes  map[string]bool // albumID|userID
}

func newFakeAlbumRepo() *fakeAlbumRepo {
	return &fakeAlbumRepo{
		albums: map[string]*model.Album{},
		likes:  map[string]bool{},
	}
}

func likeKey(albumID, userID string) string {
	return albumID + "|" + userID
}

func (r *fakeAlbumRepo) Create(_ context.Context, a *model.Album) (string, error) {
	r.albums[a.ID] = a
	return a.ID, nil
}

func (r *fakeAlbumRepo) GetByID(_ context.Context, id string) (*model.Album, error) {
	a, ok := r.albums[id]
	if !ok {
		return nil, fail.NotFound("album not found")
	}
	return a, nil
}

func (r *fakeAlbumRepo) GetAll(_ context.Context) ([]model.Album, error) {
	var out []model.Album
	for _, a := range r.albums {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAlbumRepo) GetSongs(_ context.Context, _ string) ([]model.SongSummary, error) {
	return []model.SongSummary{}, nil
}

func (r *fakeAlbumRepo) Update(_ context.Context, a *model.Album) error {
	if _, ok := r.albums[a.ID]; !ok {
		return fail.NotFound("album not found")
	}
	r.albums[a.ID] = a
	return nil
}

func (r *fakeAlbumRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.albums[id]; !ok {
		return fail.NotFound("album not found")
	}
	delete(r.albums, id)
	return nil
}

func (r *fakeAlbumRepo) UpdateCoverURL(_ context.Context, id, coverURL string) error {
	a, ok := r.albums[id]
	if !ok {
		return fail.NotFound("album not found")
	}
	a.CoverURL = &coverURL
	return nil
}

func (r *fakeAlbumRepo) InsertLike(_ context.Context, like *model.Like) (string, error) {
	key := likeKey(like.AlbumID, like.UserID)
	if r.likes[key] {
		return "", fail.Conflict("album already liked")
	}
	r.likes[key] = true
	return like.ID, nil
}

func (r *fakeAlbumRepo) HasLike(_ context.Context, albumID, userID string) (bool, error) {
	return r.likes[likeKey(albumID, userID)], nil
}

func (r *fakeAlbumRepo) DeleteLike(_ context.Context, albumID, userID string) error {
	key := likeKey(albumID, userID)
	if !r.likes[key] {
		return fail.NotFound("like not found")
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeAlbumRepo) CountLikes(_ context.Context, albumID string) (int, error) {
	count := 0
	for key := range r.likes {
		if strings.HasPrefix(key, albumID+"|") {
			count++
		}
	}
	return count, nil
}

// memoryCache mirrors the redis adapter's JSON round-trip semantics.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *memoryCache) Ping(_ context.Context) error { return nil }

// faultyCache fails every operation, standing in for an unreachable redis.
type faultyCache struct{}

var errCacheDown = errors.New("cache down")

func (faultyCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, errCacheDown
}
func (faultyCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return errCacheDown
}
func (faultyCache) Delete(_ context.Context, _ ...string) error { return errCacheDown }
func (faultyCache) Ping(_ context.Context) error                { return errCacheDown }

type stubCovers struct{}

func (stubCovers) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://storage.local/" + key, nil
}

func newAlbumFixture() (ServiceInterface, *fakeAlbumRepo, *memoryCache) {
	repo := newFakeAlbumRepo()
	repo.albums["album-1"] = &model.Album{ID: "album-1", Name: "Viva la Vida", Year: 2008}
	c := newMemoryCache()
	return NewAlbumService(repo, c, stubCovers{}), repo, c
}

func TestCountLikesCacheAside(t *testing.T) {
	ctx := context.Background()

	t.Run("miss computes from store and populates cache", func(t *testing.T) {
		svc, _, mem := newAlbumFixture()
		require.NoError(t, svc.Like(ctx, "album-1", "user-1"))

		first, err := svc.CountLikes(ctx, "album-1")
		require.NoError(t, err)
		assert.Equal(t, 1, first.Count)
		assert.Equal(t, model.LikeSourceDatabase, first.Source)
		assert.Contains(t, mem.entries, "album_likes:album-1")

		second, err := svc.CountLikes(ctx, "album-1")
		require.NoError(t, err)
		assert.Equal(t, 1, second.Count)
		assert.Equal(t, model.LikeSourceCache, second.Source)
	})

	t.Run("like invalidates so the next read recomputes", func(t *testing.T) {
		svc, _, mem := newAlbumFixture()
		require.NoError(t, svc.Like(ctx, "album-1", "user-1"))

		_, err := svc.CountLikes(ctx, "album-1")
		require.NoError(t, err)
		assert.Contains(t, mem.entries, "album_likes:album-1")

		require.NoError(t, svc.Like(ctx, "album-1", "user-2"))
		assert.NotContains(t, mem.entries, "album_likes:album-1")

		result, err := svc.CountLikes(ctx, "album-1")
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
		assert.Equal(t, model.LikeSourceDatabase, result.Source)
	})

	t.Run("unlike invalidates too", func(t *testing.T) {
		svc, _, mem := newAlbumFixture()
		require.NoError(t, svc.Like(ctx, "album-1", "user-1"))
		_, err := svc.CountLikes(ctx, "album-1")
		require.NoError(t, err)

		require.NoError(t, svc.Unlike(ctx, "album-1", "user-1"))
		assert.NotContains(t, mem.entries, "album_likes:album-1")

		result, err := svc.CountLikes(ctx, "album-1")
		require.NoError(t, err)
		assert.Equal(t, 0, result.Count)
	})

	t.Run("missing album is not found", func(t *testing.T) {
		svc, _, _ := newAlbumFixture()
		_, err := svc.CountLikes(ctx, "album-ghost")
		assert.True(t, fail.IsNotFound(err))
	})
}

func TestCountLikesSurvivesCacheOutage(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAlbumRepo()
	repo.albums["album-1"] = &model.Album{ID: "album-1", Name: "Viva la Vida", Year: 2008}
	svc := NewAlbumService(repo, faultyCache{}, stubCovers{})

	require.NoError(t, svc.Like(ctx, "album-1", "user-1"))
	require.NoError(t, svc.Like(ctx, "album-1", "user-2"))

	result, err := svc.CountLikes(ctx, "album-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, model.LikeSourceDatabase, result.Source)

	require.NoError(t, svc.Unlike(ctx, "album-1", "user-2"))
	result, err = svc.CountLikes(ctx, "album-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestLike(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate like is conflict and count stays one", func(t *testing.T) {
		svc, repo, _ := newAlbumFixture()
		require.NoError(t, svc.Like(ctx, "album-1", "user-1"))

		err := svc.Like(ctx, "album-1", "user-1")
		assert.True(t, fail.IsConflict(err))

		count, err := repo.CountLikes(ctx, "album-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("liking a missing album is not found", func(t *testing.T) {
		svc, _, _ := newAlbumFixture()
		err := svc.Like(ctx, "album-ghost", "user-1")
		assert.True(t, fail.IsNotFound(err))
	})

	t.Run("unliking without a like is not found", func(t *testing.T) {
		svc, _, _ := newAlbumFixture()
		err := svc.Unlike(ctx, "album-1", "user-1")
		assert.True(t, fail.IsNotFound(err))
	})
}

func TestUploadCover(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAlbumFixture()

	url, err := svc.UploadCover(ctx, "album-1", []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	require.NotNil(t, repo.albums["album-1"].CoverURL)
	assert.Equal(t, url, *repo.albums["album-1"].CoverURL)

	_, err = svc.UploadCover(ctx, "album-ghost", []byte{0xFF, 0xD8}, "image/jpeg")
	assert.True(t, fail.IsNotFound(err))
}
