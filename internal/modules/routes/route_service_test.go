package routes

import (
	"context"
	"errors"
	"sort"
	"testing"

	"smart-waste/internal/geo"
	"smart-waste/internal/models"
)

// fakeRepo models the store contract in memory: sequence uniqueness per
// route, foreign keys on route and bin ids, no renumbering on delete.
type fakeRepo struct {
	routes    map[int]models.Route
	bins      map[int]models.Bin
	routeBins []models.RouteBin
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		routes: map[int]models.Route{
			1: {ID: 1, Name: "Monday north loop", Status: models.RoutePlanned},
		},
		bins: map[int]models.Bin{
			101: {ID: 101, Capacity: 100, Status: models.BinActive, Location: models.GeoJSON{Point: geo.Point{Lon: 0, Lat: 0}}},
			102: {ID: 102, Capacity: 100, Status: models.BinActive, Location: models.GeoJSON{Point: geo.Point{Lon: 0, Lat: 0.001}}},
			103: {ID: 103, Capacity: 100, Status: models.BinFull, Location: models.GeoJSON{Point: geo.Point{Lon: 0, Lat: 0.002}}},
		},
	}
}

func (f *fakeRepo) ListRoutes(ctx context.Context) ([]models.RouteSummary, error) {
	var out []models.RouteSummary
	for _, rt := range f.routes {
		out = append(out, models.RouteSummary{Route: rt})
	}
	return out, nil
}

func (f *fakeRepo) GetRoute(ctx context.Context, id int) (*models.RouteSummary, error) {
	rt, ok := f.routes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.RouteSummary{Route: rt}, nil
}

func (f *fakeRepo) CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error) {
	rt := models.Route{ID: len(f.routes) + 1, Name: req.Name, Status: models.RoutePlanned}
	if req.Status != nil {
		rt.Status = *req.Status
	}
	f.routes[rt.ID] = rt
	return &rt, nil
}

func (f *fakeRepo) UpdateRoute(ctx context.Context, id int, req models.UpdateRouteRequest) (*models.Route, error) {
	rt, ok := f.routes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if req.Name != nil {
		rt.Name = *req.Name
	}
	if req.Status != nil {
		rt.Status = *req.Status
	}
	f.routes[id] = rt
	return &rt, nil
}

func (f *fakeRepo) DeleteRoute(ctx context.Context, id int) error {
	if _, ok := f.routes[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.routes, id)
	return nil
}

func (f *fakeRepo) AddBin(ctx context.Context, routeID int, req models.AddRouteBinRequest) (*models.RouteBin, error) {
	if _, ok := f.routes[routeID]; !ok {
		return nil, models.ErrNotFound
	}
	if _, ok := f.bins[req.BinID]; !ok {
		return nil, models.ErrNotFound
	}
	for _, rb := range f.routeBins {
		if rb.RouteID == routeID && rb.SequenceOrder == req.SequenceOrder {
			return nil, models.ErrDuplicateSequence
		}
	}
	f.nextID++
	rb := models.RouteBin{
		ID:                   f.nextID,
		RouteID:              routeID,
		BinID:                req.BinID,
		SequenceOrder:        req.SequenceOrder,
		EstimatedArrivalTime: req.EstimatedArrivalTime,
	}
	f.routeBins = append(f.routeBins, rb)
	return &rb, nil
}

func (f *fakeRepo) RemoveBin(ctx context.Context, routeID, binID int) error {
	for i, rb := range f.routeBins {
		if rb.RouteID == routeID && rb.BinID == binID {
			f.routeBins = append(f.routeBins[:i], f.routeBins[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeRepo) ListBins(ctx context.Context, routeID int) ([]models.RouteBinDetail, error) {
	var out []models.RouteBinDetail
	for _, rb := range f.routeBins {
		if rb.RouteID != routeID {
			continue
		}
		b := f.bins[rb.BinID]
		out = append(out, models.RouteBinDetail{
			RouteBin:  rb,
			Capacity:  b.Capacity,
			FillLevel: b.FillLevel,
			Status:    b.Status,
			Location:  b.Location,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceOrder < out[j].SequenceOrder })
	return out, nil
}

func TestAddBinOrdering(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	// Insert out of order; listing must follow sequence, not insertion.
	if _, err := svc.AddBin(ctx, 1, models.AddRouteBinRequest{BinID: 102, SequenceOrder: 2}); err != nil {
		t.Fatalf("add bin 102: %v", err)
	}
	if _, err := svc.AddBin(ctx, 1, models.AddRouteBinRequest{BinID: 101, SequenceOrder: 1}); err != nil {
		t.Fatalf("add bin 101: %v", err)
	}

	bins, err := svc.ListBins(ctx, 1)
	if err != nil {
		t.Fatalf("list bins: %v", err)
	}
	if len(bins) != 2 || bins[0].BinID != 101 || bins[1].BinID != 102 {
		t.Fatalf("list = %v, want [101 102]", bins)
	}
}

func TestRemoveBinKeepsGaps(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	mustAdd(t, svc, 1, 101, 1)
	mustAdd(t, svc, 1, 102, 2)

	if err := svc.RemoveBin(ctx, 1, 101); err != nil {
		t.Fatalf("remove bin: %v", err)
	}

	bins, err := svc.ListBins(ctx, 1)
	if err != nil {
		t.Fatalf("list bins: %v", err)
	}
	if len(bins) != 1 || bins[0].BinID != 102 {
		t.Fatalf("list = %v, want only bin 102", bins)
	}
	// No renumbering: the survivor keeps sequence 2.
	if bins[0].SequenceOrder != 2 {
		t.Fatalf("sequence = %d, want 2", bins[0].SequenceOrder)
	}
}

func TestDuplicateSequenceRejected(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	mustAdd(t, svc, 1, 101, 1)
	mustAdd(t, svc, 1, 102, 2)

	_, err := svc.AddBin(ctx, 1, models.AddRouteBinRequest{BinID: 103, SequenceOrder: 2})
	if !errors.Is(err, models.ErrDuplicateSequence) {
		t.Fatalf("reusing an occupied sequence: err = %v, want ErrDuplicateSequence", err)
	}
}

func TestVacatedSequenceReusable(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	mustAdd(t, svc, 1, 101, 1)
	mustAdd(t, svc, 1, 102, 2)
	if err := svc.RemoveBin(ctx, 1, 101); err != nil {
		t.Fatalf("remove bin: %v", err)
	}

	// Sequence 1 was vacated by the removal, so it is free again.
	if _, err := svc.AddBin(ctx, 1, models.AddRouteBinRequest{BinID: 103, SequenceOrder: 1}); err != nil {
		t.Fatalf("reusing vacated sequence: %v", err)
	}
}

func TestAddBinUnknownRefs(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.AddBin(ctx, 99, models.AddRouteBinRequest{BinID: 101, SequenceOrder: 1}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("unknown route: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.AddBin(ctx, 1, models.AddRouteBinRequest{BinID: 999, SequenceOrder: 1}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("unknown bin: err = %v, want ErrNotFound", err)
	}
}

func TestAddBinNonPositiveSequence(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.AddBin(context.Background(), 1, models.AddRouteBinRequest{BinID: 101, SequenceOrder: 0})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("sequence 0: err = %v, want ErrInvalidInput", err)
	}
}

func TestListBinsUnknownRouteIsEmpty(t *testing.T) {
	svc := NewService(newFakeRepo())

	bins, err := svc.ListBins(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bins) != 0 {
		t.Fatalf("unknown route: got %v, want empty list", bins)
	}
}

func mustAdd(t *testing.T, svc *Service, routeID, binID, seq int) {
	t.Helper()
	if _, err := svc.AddBin(context.Background(), routeID, models.AddRouteBinRequest{BinID: binID, SequenceOrder: seq}); err != nil {
		t.Fatalf("add bin %d at %d: %v", binID, seq, err)
	}
}
