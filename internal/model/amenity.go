package model

import "time"

// Amenity represents one resort facility as stored in the `amenities` table.
type Amenity struct {
	ID          uint64    // amenities.amenity_id
	Name        string    // amenities.amenity_name
	Description string    // amenities.description
	PricePerUse float64   // amenities.price_per_use
	ImagePath   string    // amenities.image_path (empty when NULL)
	CreatedAt   time.Time // amenities.created_at
	UpdatedAt   time.Time // amenities.updated_at
}
