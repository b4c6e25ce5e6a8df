package models

// MenuItem represents a purchasable item in the catalog
type MenuItem struct {
	Name        string  `json:"name" db:"name"`
	Type        string  `json:"type" db:"type"`
	Price       float64 `json:"price" db:"price"`
	Description string  `json:"description" db:"description"`
	ImageURL    string  `json:"image_url" db:"image_url"`
}
