package models

import "time"

// Car categories.
const (
	CategorySUV       = "SUV"
	CategorySedan     = "Sedan"
	Category4x4       = "4x4"
	CategoryHatchback = "Hatchback"
	CategoryVan       = "Van"
	CategoryLuxury    = "Luxury"
)

// Car is a rentable vehicle in the catalog.
type Car struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name" validate:"required"`
	Brand        string    `bson:"brand" json:"brand" validate:"required"`
	Model        string    `bson:"model" json:"model" validate:"required"`
	Year         int       `bson:"year" json:"year" validate:"required,gte=1950,lte=2100"`
	Category     string    `bson:"category" json:"category" validate:"required,oneof=SUV Sedan 4x4 Hatchback Van Luxury"`
	Transmission string    `bson:"transmission" json:"transmission" validate:"required,oneof=Automatic Manual"`
	FuelType     string    `bson:"fuelType" json:"fuelType" validate:"required,oneof=Petrol Diesel Hybrid Electric"`
	Seats        int       `bson:"seats" json:"seats" validate:"required,gte=2,lte=15"`
	PricePerDay  float64   `bson:"pricePerDay" json:"pricePerDay" validate:"required,gt=0"`
	Images       []string  `bson:"images" json:"images"`
	Features     []string  `bson:"features" json:"features" validate:"unique"`
	Available    bool      `bson:"available" json:"available"`
	Description  string    `bson:"description" json:"description" validate:"required"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CarFilter narrows a catalog listing. Nil/zero fields are ignored.
type CarFilter struct {
	Category     string
	Transmission string
	Available    *bool
	MinSeats     int
	MinPrice     float64
	MaxPrice     float64
}

// CarUpdate is a partial catalog update; nil fields are left untouched.
// NewImages are appended to the existing image list.
type CarUpdate struct {
	Name         *string   `json:"name,omitempty"`
	Brand        *string   `json:"brand,omitempty"`
	Model        *string   `json:"model,omitempty"`
	Year         *int      `json:"year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	Category     *string   `json:"category,omitempty" validate:"omitempty,oneof=SUV Sedan 4x4 Hatchback Van Luxury"`
	Transmission *string   `json:"transmission,omitempty" validate:"omitempty,oneof=Automatic Manual"`
	FuelType     *string   `json:"fuelType,omitempty" validate:"omitempty,oneof=Petrol Diesel Hybrid Electric"`
	Seats        *int      `json:"seats,omitempty" validate:"omitempty,gte=2,lte=15"`
	PricePerDay  *float64  `json:"pricePerDay,omitempty" validate:"omitempty,gt=0"`
	NewImages    []string  `json:"images,omitempty"`
	Features     *[]string `json:"features,omitempty"`
	Available    *bool     `json:"available,omitempty"`
	Description  *string   `json:"description,omitempty"`
}
