package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SongRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (r SongRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Min(1900),
			validation.Max(time.Now().Year()+1),
		),
		validation.Field(&r.Genre,
			validation.Required.Error("genre is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Performer,
			validation.Required.Error("performer is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Duration,
			validation.When(r.Duration != nil, validation.Min(0)),
		),
	)
}
