package model

import "cinema_tickets/utils"

type User struct {
	DTO
	Name      string           `gorm:"not null" validate:"required" json:"name"`
	Email     string           `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Password  string           `gorm:"not null" json:"-"`
	BirthDate utils.CustomDate `gorm:"type:date" json:"birthDate"`
	IsAdmin   bool             `gorm:"not null;default:false" json:"isAdmin"`
}

type Users []User

type RegisterUserInput struct {
	Name      string `validate:"required" json:"name"`
	Email     string `validate:"required,email" json:"email"`
	Password  string `validate:"required,min=6" json:"password"`
	BirthDate string `validate:"required" json:"birthDate"` // YYYY-MM-DD
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	BirthDate       *string `json:"birthDate"`
	CurrentPassword string  `validate:"required" json:"currentPassword"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=6"`
}

// DeleteUserInput asks the user to confirm identity and password before
// removing the account. Email must resolve to the authenticated user.
type DeleteUserInput struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type FilterUser struct {
	Pagination
	SearchKey string `json:"searchKey" query:"searchKey"`
	IsAdmin   *bool  `json:"isAdmin" query:"isAdmin"`
}
