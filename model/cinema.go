package model

type Cinema struct {
	DTO
	Name     string `gorm:"not null" validate:"required" json:"name"`
	Location string `gorm:"not null" validate:"required" json:"location"`
	Capacity int    `gorm:"not null" validate:"required,gt=0" json:"capacity"`
	Slug     string `gorm:"uniqueIndex" json:"slug"`

	Rooms []Room `gorm:"foreignKey:CinemaId" json:"rooms,omitempty"`
}

type Cinemas []Cinema

type CreateCinemaInput struct {
	Name     string `validate:"required" json:"name"`
	Location string `validate:"required" json:"location"`
	Capacity int    `validate:"required,gt=0" json:"capacity"`
}

type EditCinemaInput struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
}

type DeleteCinemaInput struct {
	ArrayId
	Password string `validate:"required" json:"password"`
}

type FilterCinema struct {
	Pagination
	SearchKey string `json:"searchKey" query:"searchKey"`
	Name      string `json:"name" query:"name"`
}
