package model

import "time"

// Availability status values stored in accommodations.availability_status.
const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
	StatusReserved    = "reserved"
)

// AvailabilityStatuses lists every accepted status value.
var AvailabilityStatuses = []string{StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved}

// ValidStatus reports whether the given string is a known status value.
func ValidStatus(status string) bool {
	for _, s := range AvailabilityStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Accommodation represents one bookable unit as stored in the
// `accommodations` table.
type Accommodation struct {
	ID            uint64    // accommodations.accommodation_id
	Name          string    // accommodations.accommodation_name
	Description   string    // accommodations.description
	Capacity      int       // accommodations.capacity
	PricePerNight float64   // accommodations.price_per_night
	Status        string    // accommodations.availability_status
	ImageURL      string    // accommodations.image_url (empty when NULL)
	CreatedAt     time.Time // accommodations.created_at
	UpdatedAt     time.Time // accommodations.updated_at
}
