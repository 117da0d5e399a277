package models

import "time"

// Vehicle is a collection truck or cart.
type Vehicle struct {
	ID           int     `json:"id"`
	LicensePlate string  `json:"license_plate"`
	Capacity     float64 `json:"capacity"`
	VehicleType  string  `json:"vehicle_type"`
	Status       string  `json:"status"`
	AssignedUser *string `json:"assigned_user"`
}

type CreateVehicleRequest struct {
	LicensePlate   string  `json:"license_plate" validate:"required"`
	Capacity       float64 `json:"capacity" validate:"required,gt=0"`
	VehicleType    string  `json:"vehicle_type" validate:"required"`
	AssignedUserID *int    `json:"assigned_user_id"`
	Status         *string `json:"status"`
}

type UpdateVehicleRequest struct {
	LicensePlate   *string  `json:"license_plate"`
	Capacity       *float64 `json:"capacity" validate:"omitempty,gt=0"`
	VehicleType    *string  `json:"vehicle_type"`
	AssignedUserID *int     `json:"assigned_user_id"`
	Status         *string  `json:"status"`
}

// Collection records one emptying of a bin.
type Collection struct {
	ID                   int       `json:"id"`
	BinID                int       `json:"bin_id"`
	VehicleID            *int      `json:"vehicle_id"`
	CollectorID          *int      `json:"collector_id"`
	CollectedAt          time.Time `json:"collected_at"`
	WasteAmountCollected float64   `json:"waste_amount_collected"`
	Notes                *string   `json:"notes"`
	BinCapacity          *float64  `json:"bin_capacity"`
	LicensePlate         *string   `json:"license_plate"`
	Collector            *string   `json:"collector"`
	WasteType            *string   `json:"waste_type"`
}

type CreateCollectionRequest struct {
	BinID                int     `json:"bin_id" validate:"required"`
	VehicleID            *int    `json:"vehicle_id"`
	CollectorID          *int    `json:"collector_id"`
	WasteAmountCollected float64 `json:"waste_amount_collected" validate:"gte=0"`
	WasteTypeID          *int    `json:"waste_type_id"`
	Notes                *string `json:"notes"`
}

type UpdateCollectionRequest struct {
	BinID                *int     `json:"bin_id"`
	VehicleID            *int     `json:"vehicle_id"`
	CollectorID          *int     `json:"collector_id"`
	WasteAmountCollected *float64 `json:"waste_amount_collected" validate:"omitempty,gte=0"`
	WasteTypeID          *int     `json:"waste_type_id"`
	Notes                *string  `json:"notes"`
}
