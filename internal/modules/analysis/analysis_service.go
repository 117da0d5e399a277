package analysis

import (
	"context"
	"errors"
	"math"
	"sort"

	"smart-waste/internal/geo"
	"smart-waste/internal/models"
)

// UncoveredReason is the reason string stamped on every generated
// suggestion. Clients filter on it, so it is part of the wire contract.
const UncoveredReason = "Uncovered centroid"

// ServiceInterface is the coverage engine plus the suggestion generator.
// All reads are pure: they re-query current household/bin state and compute
// in memory, so two consecutive calls with no intervening writes agree.
type ServiceInterface interface {
	FarHouseholds(ctx context.Context, thresholdMeters float64) ([]models.HouseholdSite, error)
	BinCoverage(ctx context.Context, binID int, thresholdMeters float64) (*models.BinCoverage, error)
	AvgDistancePerWard(ctx context.Context) ([]models.WardDistance, error)
	SuggestBin(ctx context.Context, thresholdMeters float64) (*models.SuggestedBin, error)
	ListSuggestions(ctx context.Context) ([]models.SuggestedBin, error)
	ClearSuggestions(ctx context.Context) error
}

// Service implements ServiceInterface.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new analysis service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// normalizeThreshold replaces a non-positive or non-finite threshold with
// the default radius. Clients have always been able to send junk here and
// get the default back, so this stays permissive instead of erroring.
func normalizeThreshold(meters float64) float64 {
	if meters <= 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		return models.DefaultCoverageRadiusMeters
	}
	return meters
}

// FarHouseholds returns every household with no bin within thresholdMeters.
// The result is a set; ordering follows the household listing.
func (s *Service) FarHouseholds(ctx context.Context, thresholdMeters float64) ([]models.HouseholdSite, error) {
	threshold := normalizeThreshold(thresholdMeters)

	households, err := s.repo.ListHouseholdSites(ctx)
	if err != nil {
		return nil, err
	}
	bins, err := s.repo.ListBinSites(ctx)
	if err != nil {
		return nil, err
	}

	uncovered := make([]models.HouseholdSite, 0)
	for _, h := range households {
		if !servedByAny(h.Location.Point, bins, threshold) {
			uncovered = append(uncovered, h)
		}
	}
	return uncovered, nil
}

// servedByAny reports whether any bin lies within threshold of p.
// O(B) per household; at municipal scale (thousands of households, hundreds
// of bins) the full scan is cheaper than maintaining a spatial index.
func servedByAny(p geo.Point, bins []models.BinSite, threshold float64) bool {
	for _, b := range bins {
		if geo.Distance(p, b.Location) <= threshold {
			return true
		}
	}
	return false
}

// BinCoverage counts households within thresholdMeters of the given bin.
// A bin that does not exist degrades to a zero count instead of a 404; the
// dashboard polls this for bins that may have just been deleted.
func (s *Service) BinCoverage(ctx context.Context, binID int, thresholdMeters float64) (*models.BinCoverage, error) {
	threshold := normalizeThreshold(thresholdMeters)

	bin, err := s.repo.GetBinSite(ctx, binID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &models.BinCoverage{BinID: binID, ServedHouseholds: 0}, nil
		}
		return nil, err
	}

	households, err := s.repo.ListHouseholdSites(ctx)
	if err != nil {
		return nil, err
	}

	served := 0
	for _, h := range households {
		if geo.Distance(h.Location.Point, bin.Location) <= threshold {
			served++
		}
	}
	return &models.BinCoverage{BinID: binID, ServedHouseholds: served}, nil
}

// AvgDistancePerWard averages, per ward, each household's distance to its
// nearest bin. With zero bins in the system no household has a nearest-bin
// distance and the result is empty.
func (s *Service) AvgDistancePerWard(ctx context.Context) ([]models.WardDistance, error) {
	households, err := s.repo.ListHouseholdSites(ctx)
	if err != nil {
		return nil, err
	}
	bins, err := s.repo.ListBinSites(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.WardDistance, 0)
	if len(bins) == 0 {
		return result, nil
	}

	type acc struct {
		sum   float64
		count int
	}
	wards := make(map[string]*acc)
	for _, h := range households {
		min := math.MaxFloat64
		for _, b := range bins {
			if d := geo.Distance(h.Location.Point, b.Location); d < min {
				min = d
			}
		}
		a := wards[h.Ward]
		if a == nil {
			a = &acc{}
			wards[h.Ward] = a
		}
		a.sum += min
		a.count++
	}

	for ward, a := range wards {
		result = append(result, models.WardDistance{Ward: ward, AvgDistanceM: a.sum / float64(a.count)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Ward < result[j].Ward })
	return result, nil
}

// SuggestBin proposes a new bin at the centroid of the currently uncovered
// households and persists it. An empty uncovered set still inserts a row,
// with a null location, so callers always get one suggestion per call.
// Suggestions are historical proposals: repeated calls append, never dedup.
func (s *Service) SuggestBin(ctx context.Context, thresholdMeters float64) (*models.SuggestedBin, error) {
	uncovered, err := s.FarHouseholds(ctx, thresholdMeters)
	if err != nil {
		return nil, err
	}

	points := make([]geo.Point, 0, len(uncovered))
	for _, h := range uncovered {
		points = append(points, h.Location.Point)
	}

	center, err := geo.Centroid(points)
	if err != nil {
		if errors.Is(err, geo.ErrNoPoints) {
			// No uncovered households: record the suggestion with no location.
			return s.repo.InsertSuggestion(ctx, UncoveredReason, nil)
		}
		return nil, err
	}
	return s.repo.InsertSuggestion(ctx, UncoveredReason, &center)
}

// ListSuggestions returns all recorded suggestions in insertion order.
func (s *Service) ListSuggestions(ctx context.Context) ([]models.SuggestedBin, error) {
	return s.repo.ListSuggestions(ctx)
}

// ClearSuggestions deletes every suggestion and resets numbering.
func (s *Service) ClearSuggestions(ctx context.Context) error {
	return s.repo.ClearSuggestions(ctx)
}
