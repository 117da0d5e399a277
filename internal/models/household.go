package models

// Household types accepted by the API.
const (
	HouseholdResidential = "residential"
	HouseholdCommercial  = "commercial"
	HouseholdIndustrial  = "industrial"
)

// Household is a waste-generating site tracked on the map.
type Household struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	Ward                 string  `json:"ward"`
	WasteGeneratedPerDay float64 `json:"waste_generated_per_day"`
	ContactInfo          *string `json:"contact_info"`
	HouseholdType        string  `json:"household_type"`
	Location             GeoJSON `json:"location"`
}

// CreateHouseholdRequest carries the form input for a new household.
// Location arrives as separate lat/lng fields; the repository composes them
// into a geographic point.
type CreateHouseholdRequest struct {
	Name                 string   `json:"name" validate:"required"`
	Ward                 string   `json:"ward" validate:"required"`
	WasteGeneratedPerDay *float64 `json:"waste_generated_per_day" validate:"omitempty,gte=0"`
	Lat                  *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng                  *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	ContactInfo          *string  `json:"contact_info"`
	HouseholdType        *string  `json:"household_type" validate:"omitempty,oneof=residential commercial industrial"`
}

// UpdateHouseholdRequest is a partial update; nil fields keep their current
// value (COALESCE semantics in the repository).
type UpdateHouseholdRequest struct {
	Name                 *string  `json:"name"`
	Ward                 *string  `json:"ward"`
	WasteGeneratedPerDay *float64 `json:"waste_generated_per_day" validate:"omitempty,gte=0"`
	Lat                  *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng                  *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	ContactInfo          *string  `json:"contact_info"`
	HouseholdType        *string  `json:"household_type" validate:"omitempty,oneof=residential commercial industrial"`
}
