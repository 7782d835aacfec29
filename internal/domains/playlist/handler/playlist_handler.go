package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/service"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/middleware"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/response"
)

type PlaylistHandler struct {
	service service.ServiceInterface
}

func NewPlaylistHandler(svc service.ServiceInterface) *PlaylistHandler {
	return &PlaylistHandler{service: svc}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req model.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	playlistID, err := h.service.Create(c.Request.Context(), req.Name, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"playlistId": playlistID})
}

func (h *PlaylistHandler) GetAll(c *gin.Context) {
	playlists, err := h.service.GetAllByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"playlists": playlists})
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "playlist deleted")
}

// AddSong handles POST /playlists/:id/songs.
func (h *PlaylistHandler) AddSong(c *gin.Context) {
	var req model.PlaylistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.AddSong(c.Request.Context(), c.Param("id"), req.SongID, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "song added to playlist")
}

// GetSongs handles GET /playlists/:id/songs.
func (h *PlaylistHandler) GetSongs(c *gin.Context) {
	playlist, err := h.service.GetSongs(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"playlist": playlist})
}

// RemoveSong handles DELETE /playlists/:id/songs.
func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	var req model.PlaylistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.RemoveSong(c.Request.Context(), c.Param("id"), req.SongID, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "song removed from playlist")
}

// ListActivities handles GET /playlists/:id/activities.
func (h *PlaylistHandler) ListActivities(c *gin.Context) {
	playlistID := c.Param("id")
	activities, err := h.service.ListActivities(c.Request.Context(), playlistID, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"playlistId": playlistID,
		"activities": activities,
	})
}

// Export handles POST /playlists/:id/exports.
func (h *PlaylistHandler) Export(c *gin.Context) {
	var req model.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.Export(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.TargetEmail)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "export request queued")
}
