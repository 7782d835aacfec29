package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/song/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/song/service"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/response"
)

type SongHandler struct {
	service service.ServiceInterface
}

func NewSongHandler(svc service.ServiceInterface) *SongHandler {
	return &SongHandler{service: svc}
}

func (h *SongHandler) Create(c *gin.Context) {
	var req model.SongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	songID, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"songId": songID})
}

func (h *SongHandler) GetByID(c *gin.Context) {
	song, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"song": song})
}

func (h *SongHandler) GetAll(c *gin.Context) {
	filter := model.Filter{
		Title:     c.Query("title"),
		Performer: c.Query("performer"),
	}

	songs, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"songs": songs})
}

func (h *SongHandler) Update(c *gin.Context) {
	var req model.SongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "song updated")
}

func (h *SongHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "song deleted")
}
