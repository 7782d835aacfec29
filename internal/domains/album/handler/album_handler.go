package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/album/service"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/middleware"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/response"
)

const maxCoverSize = 512 << 10 // 512 KiB, as the original API enforced

type AlbumHandler struct {
	service service.ServiceInterface
}

func NewAlbumHandler(svc service.ServiceInterface) *AlbumHandler {
	return &AlbumHandler{service: svc}
}

func (h *AlbumHandler) Create(c *gin.Context) {
	var req model.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	albumID, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"albumId": albumID})
}

func (h *AlbumHandler) GetByID(c *gin.Context) {
	album, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"album": album})
}

func (h *AlbumHandler) GetAll(c *gin.Context) {
	albums, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"albums": albums})
}

func (h *AlbumHandler) Update(c *gin.Context) {
	var req model.AlbumRequest
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

	response.SuccessMessage(c, http.StatusOK, "album updated")
}

func (h *AlbumHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "album deleted")
}

// UploadCover handles POST /albums/:id/covers (multipart field "cover").
func (h *AlbumHandler) UploadCover(c *gin.Context) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "cover file is required")
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "cover exceeds maximum size")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		response.BadRequest(c, "cover must be a jpeg, png, or webp image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.FromError(c, err)
		return
	}

	url, err := h.service.UploadCover(c.Request.Context(), c.Param("id"), data, contentType)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"coverUrl": url})
}

func (h *AlbumHandler) Like(c *gin.Context) {
	err := h.service.Like(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "album liked")
}

func (h *AlbumHandler) Unlike(c *gin.Context) {
	err := h.service.Unlike(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "album unliked")
}

// CountLikes reports the count and reveals the source in X-Data-Source.
func (h *AlbumHandler) CountLikes(c *gin.Context) {
	result, err := h.service.CountLikes(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("X-Data-Source", result.Source)
	response.Success(c, http.StatusOK, gin.H{"likes": result.Count})
}
