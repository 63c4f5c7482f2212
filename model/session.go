package model

import "time"

// Session is a scheduled screening of a movie in a room. One movie/room
// pair may have many sessions at different times; (room, time) overlap is
// reported on create but not constrained.
type Session struct {
	DTO
	MovieId   uint      `gorm:"not null;index" json:"movieId"`
	RoomId    uint      `gorm:"not null;index" json:"roomId"`
	StartTime time.Time `gorm:"not null" validate:"required" json:"startTime"`
	Price     float64   `gorm:"not null" validate:"required,gt=0" json:"price"`
	Movie     Movie     `gorm:"foreignKey:MovieId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"movie"`
	Room      Room      `gorm:"foreignKey:RoomId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"room"`

	SeatPurchases []SeatPurchase `gorm:"foreignKey:SessionId" json:"seatPurchases,omitempty"`
}

type Sessions []Session

type CreateSessionInput struct {
	MovieId   uint      `validate:"required,gt=0" json:"movieId"`
	RoomId    uint      `validate:"required,gt=0" json:"roomId"`
	StartTime time.Time `validate:"required" json:"startTime"`
	Price     float64   `validate:"required,gt=0" json:"price"`
}

type EditSessionInput struct {
	MovieId   *uint      `json:"movieId" validate:"omitempty,gt=0"`
	RoomId    *uint      `json:"roomId" validate:"omitempty,gt=0"`
	StartTime *time.Time `json:"startTime"`
	Price     *float64   `json:"price" validate:"omitempty,gt=0"`
}

type FilterSessionInput struct {
	Pagination
	MovieId   uint   `json:"movieId" query:"movieId"`
	RoomId    uint   `json:"roomId" query:"roomId"`
	CinemaId  uint   `json:"cinemaId" query:"cinemaId"`
	StartDate string `query:"startDate"` // YYYY-MM-DD
	EndDate   string `query:"endDate"`
}
