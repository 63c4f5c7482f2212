package model

import (
	"mime/multipart"

	"cinema_tickets/utils"
)

type Movie struct {
	DTO
	Title       string           `gorm:"not null;index" validate:"required" json:"title"`
	Duration    int              `gorm:"not null" validate:"required,gt=0" json:"duration"` // minutes
	Rating      string           `gorm:"not null;size:10" validate:"required" json:"rating"`
	Genre       string           `gorm:"index" json:"genre"`
	ReleaseDate utils.CustomDate `gorm:"type:date" json:"releaseDate"`
	Status      string           `gorm:"not null;default:'COMING_SOON'" json:"status"`
	Slug        string           `gorm:"uniqueIndex" json:"slug"`

	PosterUrl      *string `gorm:"type:varchar(255)" json:"posterUrl"`
	PosterPublicID *string `json:"-"`

	Sessions []Session `gorm:"foreignKey:MovieId" json:"sessions,omitempty"`
}

type Movies []Movie

type CreateMovieInput struct {
	Title       string           `validate:"required" json:"title"`
	Duration    int              `validate:"required,gt=0" json:"duration"`
	Rating      string           `validate:"required" json:"rating"`
	Genre       string           `json:"genre"`
	ReleaseDate utils.CustomDate `validate:"required" json:"releaseDate"`
}

type EditMovieInput struct {
	Title       *string           `json:"title"`
	Duration    *int              `json:"duration" validate:"omitempty,gt=0"`
	Rating      *string           `json:"rating"`
	Genre       *string           `json:"genre"`
	ReleaseDate *utils.CustomDate `json:"releaseDate"`
	Status      *string           `json:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
}

// DeleteMovieInput keeps the explicit password confirmation for the
// destructive path, on top of the admin role check.
type DeleteMovieInput struct {
	ArrayId
	Password string `validate:"required" json:"password"`
}

type FilterMovieInput struct {
	Pagination
	Title  string `query:"title"`
	Genre  string `query:"genre"`
	Status string `query:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
}

type UploadPosterInput struct {
	Poster  *multipart.FileHeader `json:"poster" validate:"required"`
	MovieId uint                  `json:"movieId" validate:"required"`
}
