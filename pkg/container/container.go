package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alfrdzley/openmusic-api-v3/internal/config"
	albumHandler "github.com/alfrdzley/openmusic-api-v3/internal/domains/album/handler"
	albumRepo "github.com/alfrdzley/openmusic-api-v3/internal/domains/album/repository"
	albumService "github.com/alfrdzley/openmusic-api-v3/internal/domains/album/service"
	collabHandler "github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/handler"
	collabRepo "github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/repository"
	collabService "github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/service"
	playlistHandler "github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/handler"
	playlistRepo "github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/repository"
	playlistService "github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/service"
	songHandler "github.com/alfrdzley/openmusic-api-v3/internal/domains/song/handler"
	songRepo "github.com/alfrdzley/openmusic-api-v3/internal/domains/song/repository"
	songService "github.com/alfrdzley/openmusic-api-v3/internal/domains/song/service"
	userHandler "github.com/alfrdzley/openmusic-api-v3/internal/domains/user/handler"
	userRepo "github.com/alfrdzley/openmusic-api-v3/internal/domains/user/repository"
	userService "github.com/alfrdzley/openmusic-api-v3/internal/domains/user/service"
	infraCache "github.com/alfrdzley/openmusic-api-v3/internal/infrastructure/cache"
	"github.com/alfrdzley/openmusic-api-v3/internal/infrastructure/database"
	"github.com/alfrdzley/openmusic-api-v3/internal/infrastructure/queue"
	"github.com/alfrdzley/openmusic-api-v3/internal/infrastructure/storage"
	"github.com/alfrdzley/openmusic-api-v3/pkg/jwt"
)

// Container is the root of the dependency graph. Initialization order is
// config, infrastructure, repositories, services, handlers; each layer only
// sees the layers below it.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *infraCache.RedisCache
	Storage    *storage.MinIOStorage
	Queue      *queue.Client
	JWTManager *jwt.Manager

	UserRepo     userRepo.RepositoryInterface
	AlbumRepo    albumRepo.RepositoryInterface
	SongRepo     songRepo.RepositoryInterface
	PlaylistRepo playlistRepo.RepositoryInterface
	CollabRepo   collabRepo.RepositoryInterface

	UserService     userService.ServiceInterface
	AlbumService    albumService.ServiceInterface
	SongService     songService.ServiceInterface
	PlaylistService playlistService.ServiceInterface
	CollabService   collabService.ServiceInterface

	UserHandler     *userHandler.UserHandler
	AlbumHandler    *albumHandler.AlbumHandler
	SongHandler     *songHandler.SongHandler
	PlaylistHandler *playlistHandler.PlaylistHandler
	CollabHandler   *collabHandler.CollaborationHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Str("env", cfg.App.Environment).Msg("container initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	db := database.NewPostgresDB(&c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("postgres health check: %w", err)
	}
	c.DB = db

	c.Cache = infraCache.NewRedisCache(
		c.Config.Redis.Addr,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	// Redis being down is degraded service, not a startup failure.
	if err := c.Cache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, cache-dependent reads fall back to the database")
	}

	st, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}
	c.Storage = st

	c.Queue = queue.NewClient(
		c.Config.Redis.Addr,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		c.Config.JWT.AccessExpiry,
		c.Config.JWT.RefreshExpiry,
	)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AlbumRepo = albumRepo.NewPostgresRepository(pool)
	c.SongRepo = songRepo.NewPostgresRepository(pool)
	c.PlaylistRepo = playlistRepo.NewPostgresRepository(pool)
	c.CollabRepo = collabRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.AlbumService = albumService.NewAlbumService(c.AlbumRepo, c.Cache, c.Storage)
	c.SongService = songService.NewSongService(c.SongRepo)
	c.CollabService = collabService.NewCollaborationService(c.CollabRepo, c.UserRepo)
	c.PlaylistService = playlistService.NewPlaylistService(
		c.PlaylistRepo,
		c.CollabService,
		c.SongRepo,
		c.UserRepo,
		c.Queue,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AlbumHandler = albumHandler.NewAlbumHandler(c.AlbumService)
	c.SongHandler = songHandler.NewSongHandler(c.SongService)
	c.PlaylistHandler = playlistHandler.NewPlaylistHandler(c.PlaylistService)
	c.CollabHandler = collabHandler.NewCollaborationHandler(c.CollabService, c.PlaylistService)
}

// Cleanup releases external connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("close task queue client")
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("container resources released")
}
