package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type PlaylistRequest struct {
	Name string `json:"name"`
}

func (r PlaylistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

type PlaylistSongRequest struct {
	SongID string `json:"songId"`
}

func (r PlaylistSongRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SongID, validation.Required.Error("songId is required")),
	)
}

type ExportRequest struct {
	TargetEmail string `json:"targetEmail"`
}

func (r ExportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TargetEmail,
			validation.Required.Error("targetEmail is required"),
			is.Email.Error("targetEmail must be a valid email address"),
		),
	)
}
