package models

import "time"

// WasteType is a catalog entry for the kind of waste a collection carries.
type WasteType struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Recyclable  bool    `json:"recyclable"`
}

type CreateWasteTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Recyclable  *bool   `json:"recyclable"`
}

type UpdateWasteTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Recyclable  *bool   `json:"recyclable"`
}

// Assignment links a household to the bin it is expected to use, with a
// priority when several bins serve one household.
type Assignment struct {
	ID            int       `json:"id"`
	HouseholdID   int       `json:"household_id"`
	BinID         int       `json:"bin_id"`
	AssignedDate  time.Time `json:"assigned_date"`
	Priority      int       `json:"priority"`
	HouseholdName *string   `json:"household_name,omitempty"`
	Ward          *string   `json:"ward,omitempty"`
	BinCapacity   *float64  `json:"bin_capacity,omitempty"`
	FillLevel     *float64  `json:"fill_level,omitempty"`
}

// AssignmentBin is a household's view of one of its assigned bins.
type AssignmentBin struct {
	ID           int       `json:"id"`
	BinID        int       `json:"bin_id"`
	AssignedDate time.Time `json:"assigned_date"`
	Priority     int       `json:"priority"`
	Capacity     float64   `json:"capacity"`
	FillLevel    float64   `json:"fill_level"`
	Status       string    `json:"status"`
	Location     GeoJSON   `json:"location"`
}

// AssignmentHousehold is a bin's view of one of the households it serves.
type AssignmentHousehold struct {
	ID                   int       `json:"id"`
	HouseholdID          int       `json:"household_id"`
	AssignedDate         time.Time `json:"assigned_date"`
	Priority             int       `json:"priority"`
	Name                 string    `json:"name"`
	Ward                 string    `json:"ward"`
	WasteGeneratedPerDay float64   `json:"waste_generated_per_day"`
	Location             GeoJSON   `json:"location"`
}

type CreateAssignmentRequest struct {
	HouseholdID int  `json:"household_id" validate:"required"`
	BinID       int  `json:"bin_id" validate:"required"`
	Priority    *int `json:"priority" validate:"omitempty,gt=0"`
}

type UpdateAssignmentRequest struct {
	HouseholdID *int `json:"household_id"`
	BinID       *int `json:"bin_id"`
	Priority    *int `json:"priority" validate:"omitempty,gt=0"`
}
