package models

import "smart-waste/internal/geo"

// DefaultCoverageRadiusMeters is the coverage threshold applied when a
// request omits dist or supplies something unusable. The permissive
// fallback (rather than a 400) is load-bearing: existing clients send
// free-form values and expect the default.
const DefaultCoverageRadiusMeters = 300

// HouseholdSite is the read-only projection of a household the coverage
// engine works on. It is re-read from the store on every request.
type HouseholdSite struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	Ward                 string  `json:"ward"`
	WasteGeneratedPerDay float64 `json:"waste_generated_per_day"`
	Location             GeoJSON `json:"location"`
}

// BinSite is the location projection of a bin.
type BinSite struct {
	ID       int
	Location geo.Point
}

// SuggestedBin is a persisted placement proposal. Location is null when the
// suggestion was generated with no uncovered households to aggregate.
type SuggestedBin struct {
	ID       int      `json:"id"`
	Reason   string   `json:"reason"`
	Location *GeoJSON `json:"location"`
}

// BinCoverage reports how many households fall within the coverage radius
// of one bin.
type BinCoverage struct {
	BinID            int `json:"bin_id"`
	ServedHouseholds int `json:"served_households"`
}

// WardDistance is the average nearest-bin distance for one ward.
type WardDistance struct {
	Ward         string  `json:"ward"`
	AvgDistanceM float64 `json:"avg_distance_m"`
}

// SuggestBinRequest is the body of POST /api/analysis/suggest.
type SuggestBinRequest struct {
	Dist float64 `json:"dist"`
}
