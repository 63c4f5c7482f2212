package model

type Room struct {
	DTO
	Number   string `gorm:"not null;size:10" validate:"required" json:"number"`
	Capacity int    `gorm:"not null" validate:"required,gt=0" json:"capacity"`
	CinemaId uint   `gorm:"not null;index" json:"cinemaId"`
	Cinema   Cinema `gorm:"foreignKey:CinemaId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"cinema"`
}

type Rooms []Room

type CreateRoomInput struct {
	Number   string `validate:"required" json:"number"`
	Capacity int    `validate:"required,gt=0" json:"capacity"`
	CinemaId uint   `validate:"required,gt=0" json:"cinemaId"`
}

type EditRoomInput struct {
	Number   *string `json:"number"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
	CinemaId *uint   `json:"cinemaId" validate:"omitempty,gt=0"`
}

type FilterRoom struct {
	Pagination
	CinemaId uint   `json:"cinemaId" query:"cinemaId"`
	Number   string `json:"number" query:"number"`
}
