// Package model defines the core domain types shared across the application.
package model

import "time"

// PropertyCategory describes the kind of dwelling a property is.
type PropertyCategory string

const (
	// PropertyApartment represents an apartment unit.
	PropertyApartment PropertyCategory = "apartment"
	// PropertyHouse represents a standalone house.
	PropertyHouse PropertyCategory = "house"
	// PropertyCondo represents a condominium.
	PropertyCondo PropertyCategory = "condo"
	// PropertyTownhouse represents a townhouse.
	PropertyTownhouse PropertyCategory = "townhouse"
	// PropertyOther covers everything else.
	PropertyOther PropertyCategory = "other"
)

// ValidPropertyCategory reports whether c is one of the known categories.
func ValidPropertyCategory(c PropertyCategory) bool {
	switch c {
	case PropertyApartment, PropertyHouse, PropertyCondo, PropertyTownhouse, PropertyOther:
		return true
	}
	return false
}

// Property represents a single rental listing owned by a host.
type Property struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PurchaseDate  *time.Time
	ID            string
	OwnerID       string
	Name          string
	Address       string
	Category      PropertyCategory
	Notes         string
	Bedrooms      int
	Bathrooms     float64
	MaxGuests     int
	PurchasePrice float64
}
