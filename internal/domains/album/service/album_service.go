package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/repository"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/utils"
	"github.com/alfrdzley/openmusic-api-v3/pkg/cache"
)

const (
	likesCachePrefix = "album_likes:"
	likesCacheTTL    = 1800 * time.Second
)

func likesCacheKey(albumID string) string {
	return likesCachePrefix + albumID
}

type albumService struct {
	repo   repository.RepositoryInterface
	cache  cache.Cache
	covers CoverStorage
}

func NewAlbumService(repo repository.RepositoryInterface, c cache.Cache, covers CoverStorage) ServiceInterface {
	return &albumService{repo: repo, cache: c, covers: covers}
}

func (s *albumService) Create(ctx context.Context, req *model.AlbumRequest) (string, error) {
	a := &model.Album{
		ID:   utils.NewID("album"),
		Name: req.Name,
		Year: req.Year,
	}
	return s.repo.Create(ctx, a)
}

func (s *albumService) GetByID(ctx context.Context, id string) (*model.AlbumDetail, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	songs, err := s.repo.GetSongs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.AlbumDetail{Album: *a, Songs: songs}, nil
}

func (s *albumService) GetAll(ctx context.Context) ([]model.Album, error) {
	return s.repo.GetAll(ctx)
}

func (s *albumService) Update(ctx context.Context, id string, req *model.AlbumRequest) error {
	return s.repo.Update(ctx, &model.Album{ID: id, Name: req.Name, Year: req.Year})
}

func (s *albumService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// Songs and likes cascade in the store; the counter entry must not
	// outlive the album.
	s.invalidateLikesCache(ctx, id)
	return nil
}

func (s *albumService) UploadCover(ctx context.Context, id string, data []byte, contentType string) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("covers/%s/%d", id, time.Now().UnixNano())
	url, err := s.covers.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}

	if err := s.repo.UpdateCoverURL(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

// Like records that userID likes albumID, at most once per pair.
func (s *albumService) Like(ctx context.Context, albumID, userID string) error {
	if _, err := s.repo.GetByID(ctx, albumID); err != nil {
		return err
	}

	liked, err := s.repo.HasLike(ctx, albumID, userID)
	if err != nil {
		return err
	}
	if liked {
		return fail.Conflict("album already liked")
	}

	// The unique index still backstops a concurrent liker between the check
	// and the insert; InsertLike translates that to the same Conflict.
	like := &model.Like{
		ID:      utils.NewID("like"),
		AlbumID: albumID,
		UserID:  userID,
	}
	if _, err := s.repo.InsertLike(ctx, like); err != nil {
		return err
	}

	s.invalidateLikesCache(ctx, albumID)
	return nil
}

func (s *albumService) Unlike(ctx context.Context, albumID, userID string) error {
	if _, err := s.repo.GetByID(ctx, albumID); err != nil {
		return err
	}

	if err := s.repo.DeleteLike(ctx, albumID, userID); err != nil {
		return err
	}

	s.invalidateLikesCache(ctx, albumID)
	return nil
}

// CountLikes is cache-aside: a cache hit returns without touching the store;
// a miss or cache fault recomputes from the store and repopulates the cache.
func (s *albumService) CountLikes(ctx context.Context, albumID string) (*model.LikeCount, error) {
	key := likesCacheKey(albumID)

	var cached int
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("likes cache read failed, falling back to store")
	} else if found {
		return &model.LikeCount{Count: cached, Source: model.LikeSourceCache}, nil
	}

	if _, err := s.repo.GetByID(ctx, albumID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountLikes(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, count, likesCacheTTL); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("likes cache populate failed")
	}

	return &model.LikeCount{Count: count, Source: model.LikeSourceDatabase}, nil
}

// invalidateLikesCache deletes the counter entry so the next reader
// recomputes. Writers never write the new count themselves; that would race
// under concurrent likers.
func (s *albumService) invalidateLikesCache(ctx context.Context, albumID string) {
	key := likesCacheKey(albumID)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("likes cache invalidate failed")
	}
}
