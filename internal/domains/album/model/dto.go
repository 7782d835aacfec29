package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AlbumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

func (r AlbumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Min(1900),
			validation.Max(time.Now().Year()+1),
		),
	)
}
