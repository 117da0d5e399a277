package analysis

import (
	"context"
	"math"
	"reflect"
	"testing"

	"smart-waste/internal/geo"
	"smart-waste/internal/models"
)

// fakeRepo is an in-memory stand-in for the PostGIS repository.
type fakeRepo struct {
	households  []models.HouseholdSite
	bins        []models.BinSite
	suggestions []models.SuggestedBin
}

func (f *fakeRepo) ListHouseholdSites(ctx context.Context) ([]models.HouseholdSite, error) {
	return append([]models.HouseholdSite(nil), f.households...), nil
}

func (f *fakeRepo) ListBinSites(ctx context.Context) ([]models.BinSite, error) {
	return append([]models.BinSite(nil), f.bins...), nil
}

func (f *fakeRepo) GetBinSite(ctx context.Context, binID int) (*models.BinSite, error) {
	for _, b := range f.bins {
		if b.ID == binID {
			site := b
			return &site, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) InsertSuggestion(ctx context.Context, reason string, location *geo.Point) (*models.SuggestedBin, error) {
	s := models.SuggestedBin{ID: len(f.suggestions) + 1, Reason: reason}
	if location != nil {
		s.Location = &models.GeoJSON{Point: *location}
	}
	f.suggestions = append(f.suggestions, s)
	return &s, nil
}

func (f *fakeRepo) ListSuggestions(ctx context.Context) ([]models.SuggestedBin, error) {
	return append([]models.SuggestedBin(nil), f.suggestions...), nil
}

func (f *fakeRepo) ClearSuggestions(ctx context.Context) error {
	f.suggestions = nil
	return nil
}

func household(id int, ward string, lon, lat float64) models.HouseholdSite {
	return models.HouseholdSite{
		ID:       id,
		Name:     "H",
		Ward:     ward,
		Location: models.GeoJSON{Point: geo.Point{Lon: lon, Lat: lat}},
	}
}

func TestFarHouseholds(t *testing.T) {
	// One household on top of the bin, one a full degree of latitude away.
	repo := &fakeRepo{
		households: []models.HouseholdSite{
			household(1, "north", 0, 0),
			household(2, "north", 0, 1),
		},
		bins: []models.BinSite{{ID: 10, Location: geo.Point{Lon: 0, Lat: 0}}},
	}
	svc := NewService(repo)

	far, err := svc.FarHouseholds(context.Background(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(far) != 1 || far[0].ID != 2 {
		t.Fatalf("FarHouseholds(300) = %v, want only household 2", far)
	}
}

func TestFarHouseholdsThresholdDefaulting(t *testing.T) {
	// ~222 m from the bin: covered under the default 300 m radius, which a
	// non-positive threshold must fall back to.
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(1, "north", 0, 0.002)},
		bins:       []models.BinSite{{ID: 10, Location: geo.Point{Lon: 0, Lat: 0}}},
	}
	svc := NewService(repo)

	for _, dist := range []float64{0, -5, math.NaN()} {
		far, err := svc.FarHouseholds(context.Background(), dist)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(far) != 0 {
			t.Fatalf("FarHouseholds(%v) = %v, want empty (default radius applies)", dist, far)
		}
	}
}

func TestFarHouseholdsReadIdempotence(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{
			household(1, "a", 0, 0),
			household(2, "a", 0, 1),
			household(3, "b", 1, 1),
		},
		bins: []models.BinSite{{ID: 10, Location: geo.Point{Lon: 0, Lat: 0}}},
	}
	svc := NewService(repo)

	first, err := svc.FarHouseholds(context.Background(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.FarHouseholds(context.Background(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("consecutive reads disagree: %v vs %v", first, second)
	}
}

func TestBinCoverage(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{
			household(1, "north", 0, 0),
			household(2, "north", 0, 1),
		},
		bins: []models.BinSite{{ID: 10, Location: geo.Point{Lon: 0, Lat: 0}}},
	}
	svc := NewService(repo)

	cov, err := svc.BinCoverage(context.Background(), 10, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cov.BinID != 10 || cov.ServedHouseholds != 1 {
		t.Fatalf("BinCoverage = %+v, want bin 10 serving 1", cov)
	}
}

func TestBinCoverageMissingBin(t *testing.T) {
	svc := NewService(&fakeRepo{})

	cov, err := svc.BinCoverage(context.Background(), 999, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cov.BinID != 999 || cov.ServedHouseholds != 0 {
		t.Fatalf("BinCoverage for absent bin = %+v, want zero count", cov)
	}
}

func TestAvgDistancePerWard(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{
			household(1, "east", 0, 0),
			household(2, "east", 0, 0.002),
			household(3, "west", 0, 1),
		},
		bins: []models.BinSite{
			{ID: 10, Location: geo.Point{Lon: 0, Lat: 0}},
			{ID: 11, Location: geo.Point{Lon: 0, Lat: 1}},
		},
	}
	svc := NewService(repo)

	wards, err := svc.AvgDistancePerWard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wards) != 2 {
		t.Fatalf("got %d wards, want 2", len(wards))
	}
	if wards[0].Ward != "east" || wards[1].Ward != "west" {
		t.Fatalf("ward order = %v, want east then west", wards)
	}
	// east: households at 0 m and ~222 m from their nearest bin.
	if got := wards[0].AvgDistanceM; math.Abs(got-111.195) > 1 {
		t.Errorf("east avg = %.3f m, want ~111.2", got)
	}
	if got := wards[1].AvgDistanceM; got != 0 {
		t.Errorf("west avg = %.3f m, want 0", got)
	}
}

func TestAvgDistancePerWardNoBins(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(1, "north", 0, 0)},
	}
	svc := NewService(repo)

	wards, err := svc.AvgDistancePerWard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wards) != 0 {
		t.Fatalf("with zero bins got %v, want empty", wards)
	}
}

func TestSuggestBinCentroid(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{
			household(1, "north", 0, 0),
			household(2, "north", 0, 0.001),
		},
	}
	svc := NewService(repo)

	suggestion, err := svc.SuggestBin(context.Background(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestion.Reason != UncoveredReason {
		t.Errorf("reason = %q, want %q", suggestion.Reason, UncoveredReason)
	}
	if suggestion.Location == nil {
		t.Fatal("expected a located suggestion")
	}
	if suggestion.Location.Lon != 0 || math.Abs(suggestion.Location.Lat-0.0005) > 1e-12 {
		t.Fatalf("centroid = %v, want midpoint {0 0.0005}", suggestion.Location.Point)
	}
}

func TestSuggestBinNoUncovered(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(1, "north", 0, 0)},
		bins:       []models.BinSite{{ID: 10, Location: geo.Point{Lon: 0, Lat: 0}}},
	}
	svc := NewService(repo)

	suggestion, err := svc.SuggestBin(context.Background(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestion.Location != nil {
		t.Fatalf("expected null location, got %v", suggestion.Location)
	}
	if len(repo.suggestions) != 1 {
		t.Fatalf("expected the empty suggestion to be persisted, have %d rows", len(repo.suggestions))
	}
}

func TestSuggestBinAppendsHistory(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(1, "north", 0, 1)},
	}
	svc := NewService(repo)

	for i := 0; i < 2; i++ {
		if _, err := svc.SuggestBin(context.Background(), 300); err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
	}

	all, err := svc.ListSuggestions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("two identical calls should append two rows, got %d", len(all))
	}
}
