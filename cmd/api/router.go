package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfrdzley/openmusic-api-v3/internal/shared/middleware"
	"github.com/alfrdzley/openmusic-api-v3/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupUserRoutes(v1, c)
		setupAlbumRoutes(v1, c)
		setupSongRoutes(v1, c)
		setupPlaylistRoutes(v1, c)
		setupCollaborationRoutes(v1, c)
	}

	return router
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/users", c.UserHandler.Register)

	auth := v1.Group("/authentications")
	{
		auth.POST("", c.UserHandler.Login)
		auth.PUT("", c.UserHandler.Refresh)
		auth.DELETE("", c.UserHandler.Logout)
	}
}

func setupAlbumRoutes(v1 *gin.RouterGroup, c *container.Container) {
	albums := v1.Group("/albums")
	{
		albums.POST("", c.AlbumHandler.Create)
		albums.GET("", c.AlbumHandler.GetAll)
		albums.GET("/:id", c.AlbumHandler.GetByID)
		albums.PUT("/:id", c.AlbumHandler.Update)
		albums.DELETE("/:id", c.AlbumHandler.Delete)
		albums.POST("/:id/covers", c.AlbumHandler.UploadCover)

		// Liking requires an identity; reading the count does not.
		albums.GET("/:id/likes", c.AlbumHandler.CountLikes)
		albums.POST("/:id/likes", middleware.Auth(c.JWTManager), c.AlbumHandler.Like)
		albums.DELETE("/:id/likes", middleware.Auth(c.JWTManager), c.AlbumHandler.Unlike)
	}
}

func setupSongRoutes(v1 *gin.RouterGroup, c *container.Container) {
	songs := v1.Group("/songs")
	{
		songs.POST("", c.SongHandler.Create)
		songs.GET("", c.SongHandler.GetAll)
		songs.GET("/:id", c.SongHandler.GetByID)
		songs.PUT("/:id", c.SongHandler.Update)
		songs.DELETE("/:id", c.SongHandler.Delete)
	}
}

func setupPlaylistRoutes(v1 *gin.RouterGroup, c *container.Container) {
	playlists := v1.Group("/playlists")
	playlists.Use(middleware.Auth(c.JWTManager))
	{
		playlists.POST("", c.PlaylistHandler.Create)
		playlists.GET("", c.PlaylistHandler.GetAll)
		playlists.DELETE("/:id", c.PlaylistHandler.Delete)

		playlists.POST("/:id/songs", c.PlaylistHandler.AddSong)
		playlists.GET("/:id/songs", c.PlaylistHandler.GetSongs)
		playlists.DELETE("/:id/songs", c.PlaylistHandler.RemoveSong)

		playlists.GET("/:id/activities", c.PlaylistHandler.ListActivities)
		playlists.POST("/:id/exports", c.PlaylistHandler.Export)
	}
}

func setupCollaborationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	collabs := v1.Group("/collaborations")
	collabs.Use(middleware.Auth(c.JWTManager))
	{
		collabs.POST("", c.CollabHandler.Add)
		collabs.DELETE("", c.CollabHandler.Remove)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		health := gin.H{"status": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			health["cache"] = err.Error()
		}

		ctx.JSON(status, health)
	}
}
