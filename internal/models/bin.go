package models

import "time"

// Bin statuses.
const (
	BinActive      = "active"
	BinMaintenance = "maintenance"
	BinFull        = "full"
	BinInactive    = "inactive"
)

// Bin is a physical waste container. fill_level is mutated by collection
// events, status by maintenance workflows; both arrive through their own
// modules.
type Bin struct {
	ID            int        `json:"id"`
	Capacity      float64    `json:"capacity"`
	LastCollected *time.Time `json:"last_collected"`
	BinType       string     `json:"bin_type"`
	FillLevel     float64    `json:"fill_level"`
	Status        string     `json:"status"`
	Location      GeoJSON    `json:"location"`
}

type CreateBinRequest struct {
	Capacity      *float64   `json:"capacity" validate:"omitempty,gt=0"`
	LastCollected *time.Time `json:"last_collected"`
	Lat           *float64   `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng           *float64   `json:"lng" validate:"required,gte=-180,lte=180"`
	BinType       *string    `json:"bin_type"`
	FillLevel     *float64   `json:"fill_level" validate:"omitempty,gte=0,lte=100"`
	Status        *string    `json:"status" validate:"omitempty,oneof=active maintenance full inactive"`
}

type UpdateBinRequest struct {
	Capacity      *float64   `json:"capacity" validate:"omitempty,gt=0"`
	LastCollected *time.Time `json:"last_collected"`
	Lat           *float64   `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng           *float64   `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	BinType       *string    `json:"bin_type"`
	FillLevel     *float64   `json:"fill_level" validate:"omitempty,gte=0,lte=100"`
	Status        *string    `json:"status" validate:"omitempty,oneof=active maintenance full inactive"`
}
