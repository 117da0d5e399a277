package models

import "time"

// Route statuses. planned -> active -> completed, with cancelled reachable
// from planned or active.
const (
	RoutePlanned   = "planned"
	RouteActive    = "active"
	RouteCompleted = "completed"
	RouteCancelled = "cancelled"
)

// Route is a named collection round over an ordered set of bins.
type Route struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	CreatedBy         *int      `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
	EstimatedDuration *int      `json:"estimated_duration"`
	Status            string    `json:"status"`
}

// RouteSummary is the list projection: a route plus its creator's username
// and how many bins it currently holds.
type RouteSummary struct {
	Route
	Creator     *string `json:"creator"`
	BinsInRoute int     `json:"bins_in_route"`
}

// RouteBin associates one bin with one route at a fixed traversal position.
// sequence_order values are unique within a route but not necessarily
// contiguous; removals leave gaps.
type RouteBin struct {
	ID                   int        `json:"id"`
	RouteID              int        `json:"route_id"`
	BinID                int        `json:"bin_id"`
	SequenceOrder        int        `json:"sequence_order"`
	EstimatedArrivalTime *time.Time `json:"estimated_arrival_time"`
}

// RouteBinDetail joins a RouteBin with the current state of its bin; this is
// what the map frontend renders as a numbered path. The displayed number is
// sequence_order, not array position.
type RouteBinDetail struct {
	RouteBin
	Capacity  float64 `json:"capacity"`
	FillLevel float64 `json:"fill_level"`
	Status    string  `json:"status"`
	Location  GeoJSON `json:"location"`
}

type CreateRouteRequest struct {
	Name              string  `json:"name" validate:"required"`
	Description       *string `json:"description"`
	CreatedBy         *int    `json:"created_by"`
	EstimatedDuration *int    `json:"estimated_duration" validate:"omitempty,gt=0"`
	Status            *string `json:"status" validate:"omitempty,oneof=planned active completed cancelled"`
}

type UpdateRouteRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	EstimatedDuration *int    `json:"estimated_duration" validate:"omitempty,gt=0"`
	Status            *string `json:"status" validate:"omitempty,oneof=planned active completed cancelled"`
}

// AddRouteBinRequest attaches a bin to a route at an explicit position.
type AddRouteBinRequest struct {
	BinID                int        `json:"binId" validate:"required"`
	SequenceOrder        int        `json:"sequenceOrder" validate:"required,gt=0"`
	EstimatedArrivalTime *time.Time `json:"estimatedArrivalTime"`
}
