package model

type FoodItem struct {
	DTO
	Name     string  `gorm:"not null" validate:"required" json:"name"`
	Price    float64 `gorm:"not null" validate:"required,gt=0" json:"price"`
	Category string  `gorm:"size:50" json:"category"`
}

type FoodItems []FoodItem

type CreateFoodItemInput struct {
	Name     string  `validate:"required" json:"name"`
	Price    float64 `validate:"required,gt=0" json:"price"`
	Category string  `json:"category"`
}

type EditFoodItemInput struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Category *string  `json:"category"`
}

type FilterFoodItem struct {
	Pagination
	SearchKey string `json:"searchKey" query:"searchKey"`
	Category  string `json:"category" query:"category"`
}
