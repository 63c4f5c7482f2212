package model

import "time"

// Cart holds a user's pending selections until checkout. A user has at
// most one OPEN cart at a time; checked-out carts are terminal and keep
// their lines as the purchase record.
type Cart struct {
	DTO
	UserId       uint       `gorm:"not null;index;uniqueIndex:idx_user_open_cart,where:status = 'OPEN'" json:"userId"`
	PublicCode   string     `gorm:"size:20;uniqueIndex" json:"publicCode"`
	Status       string     `gorm:"not null;default:'OPEN'" json:"status"`
	Total        float64    `gorm:"not null;default:0" json:"total"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty"`

	User         User          `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE" json:"-"`
	FoodLines    []FoodLine    `gorm:"foreignKey:CartId" json:"foodLines"`
	SessionLines []SessionLine `gorm:"foreignKey:CartId" json:"sessionLines"`
}

type Carts []Cart

// FoodLine is one food selection in a cart. UnitPrice is a snapshot of
// the catalog price at the time the line was added; a later catalog
// price change never alters an existing line.
type FoodLine struct {
	DTO
	CartId     uint    `gorm:"not null;index" json:"cartId"`
	FoodItemId uint    `gorm:"not null" json:"foodItemId"`
	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`
	Subtotal   float64 `gorm:"not null" json:"subtotal"`

	Cart     Cart     `gorm:"foreignKey:CartId" json:"-"`
	FoodItem FoodItem `gorm:"foreignKey:FoodItemId" json:"foodItem"`
}

// SessionLine ties a seat purchase to a cart with the session price
// snapshot. Quantity is 1 per seat.
type SessionLine struct {
	DTO
	CartId    uint    `gorm:"not null;index" json:"cartId"`
	SessionId uint    `gorm:"not null" json:"sessionId"`
	SeatLabel string  `gorm:"not null;size:10" json:"seatLabel"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unitPrice"`
	Subtotal  float64 `gorm:"not null" json:"subtotal"`

	Cart    Cart    `gorm:"foreignKey:CartId" json:"-"`
	Session Session `gorm:"foreignKey:SessionId" json:"session"`
}

// SeatPurchase marks one seat of a session as taken. The composite
// unique index is the double-booking guard: the second insert for the
// same (session, seat) fails at the storage layer.
type SeatPurchase struct {
	DTO
	SessionId uint   `gorm:"not null;uniqueIndex:idx_session_seat" json:"sessionId"`
	SeatLabel string `gorm:"not null;size:10;uniqueIndex:idx_session_seat" json:"seatLabel"`
	CartId    uint   `gorm:"not null;index" json:"cartId"`

	Session Session `gorm:"foreignKey:SessionId" json:"-"`
	Cart    Cart    `gorm:"foreignKey:CartId" json:"-"`
}

type AddFoodLineInput struct {
	FoodItemId uint `validate:"required,gt=0" json:"foodItemId"`
	Quantity   int  `validate:"required,gt=0" json:"quantity"`
}

type AddSeatInput struct {
	SessionId uint   `validate:"required,gt=0" json:"sessionId"`
	SeatLabel string `validate:"required,max=10" json:"seatLabel"`
}

type RemoveSeatInput struct {
	SeatLabel string `validate:"required,max=10" json:"seatLabel"`
}

// ReceiptData feeds the checkout confirmation email template.
type ReceiptData struct {
	ReceiptCode string
	Name        string
	Lines       []ReceiptLine
	Total       float64
	DetailLink  string
}

type ReceiptLine struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}
