package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Collaboration grants one user owner-equivalent access to one playlist.
// The (playlist_id, user_id) pair is unique in the store.
type Collaboration struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlistId"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CollaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (r CollaborationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PlaylistID, validation.Required.Error("playlistId is required")),
		validation.Field(&r.UserID, validation.Required.Error("userId is required")),
	)
}
