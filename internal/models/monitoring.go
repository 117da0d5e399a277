package models

import "time"

// Sensor is a fill-level or other probe mounted on a bin.
type Sensor struct {
	ID              int        `json:"id"`
	BinID           int        `json:"bin_id"`
	SensorType      string     `json:"sensor_type"`
	LastReading     *float64   `json:"last_reading"`
	LastReadingTime *time.Time `json:"last_reading_time"`
	BatteryLevel    *float64   `json:"battery_level"`
	Status          string     `json:"status"`
	BinCapacity     *float64   `json:"bin_capacity"`
	FillLevel       *float64   `json:"fill_level"`
}

type CreateSensorRequest struct {
	BinID           int        `json:"bin_id" validate:"required"`
	SensorType      string     `json:"sensor_type" validate:"required"`
	LastReading     *float64   `json:"last_reading"`
	LastReadingTime *time.Time `json:"last_reading_time"`
	BatteryLevel    *float64   `json:"battery_level" validate:"omitempty,gte=0,lte=100"`
	Status          *string    `json:"status"`
}

type UpdateSensorRequest struct {
	BinID           *int       `json:"bin_id"`
	SensorType      *string    `json:"sensor_type"`
	LastReading     *float64   `json:"last_reading"`
	LastReadingTime *time.Time `json:"last_reading_time"`
	BatteryLevel    *float64   `json:"battery_level" validate:"omitempty,gte=0,lte=100"`
	Status          *string    `json:"status"`
}

// Maintenance is a scheduled or completed service task on a bin.
type Maintenance struct {
	ID              int        `json:"id"`
	BinID           *int       `json:"bin_id"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	CompletedDate   *time.Time `json:"completed_date"`
	MaintenanceType string     `json:"maintenance_type"`
	Description     *string    `json:"description"`
	TechnicianID    *int       `json:"technician_id"`
	Cost            *float64   `json:"cost"`
	Status          string     `json:"status"`
	BinCapacity     *float64   `json:"bin_capacity"`
	Technician      *string    `json:"technician"`
}

type CreateMaintenanceRequest struct {
	BinID           *int       `json:"bin_id"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	MaintenanceType string     `json:"maintenance_type" validate:"required"`
	Description     *string    `json:"description"`
	TechnicianID    *int       `json:"technician_id"`
	Cost            *float64   `json:"cost" validate:"omitempty,gte=0"`
	Status          *string    `json:"status"`
}

type UpdateMaintenanceRequest struct {
	BinID           *int       `json:"bin_id"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	CompletedDate   *time.Time `json:"completed_date"`
	MaintenanceType *string    `json:"maintenance_type"`
	Description     *string    `json:"description"`
	TechnicianID    *int       `json:"technician_id"`
	Cost            *float64   `json:"cost" validate:"omitempty,gte=0"`
	Status          *string    `json:"status"`
}
