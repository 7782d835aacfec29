package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/domains/collaboration/service"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/middleware"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/response"
)

// OwnerVerifier checks that the actor owns the playlist. Only the owner may
// manage collaborators; collaborators cannot invite others.
type OwnerVerifier interface {
	VerifyOwner(ctx context.Context, playlistID, actorID string) error
}

type CollaborationHandler struct {
	service   service.ServiceInterface
	playlists OwnerVerifier
}

func NewCollaborationHandler(svc service.ServiceInterface, playlists OwnerVerifier) *CollaborationHandler {
	return &CollaborationHandler{service: svc, playlists: playlists}
}

// Add handles POST /collaborations.
func (h *CollaborationHandler) Add(c *gin.Context) {
	var req model.CollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.playlists.VerifyOwner(ctx, req.PlaylistID, middleware.UserID(c)); err != nil {
		response.FromError(c, err)
		return
	}

	collaborationID, err := h.service.AddCollaborator(ctx, req.PlaylistID, req.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"collaborationId": collaborationID})
}

// Remove handles DELETE /collaborations.
func (h *CollaborationHandler) Remove(c *gin.Context) {
	var req model.CollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.playlists.VerifyOwner(ctx, req.PlaylistID, middleware.UserID(c)); err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.RemoveCollaborator(ctx, req.PlaylistID, req.UserID); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "collaborator removed")
}
