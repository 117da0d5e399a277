package routes

import (
	"context"
	"fmt"

	"smart-waste/internal/models"
)

// ServiceInterface covers route lifecycle CRUD and the bin sequencer.
type ServiceInterface interface {
	ListRoutes(ctx context.Context) ([]models.RouteSummary, error)
	GetRoute(ctx context.Context, id int) (*models.RouteSummary, error)
	CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error)
	UpdateRoute(ctx context.Context, id int, req models.UpdateRouteRequest) (*models.Route, error)
	DeleteRoute(ctx context.Context, id int) error
	AddBin(ctx context.Context, routeID int, req models.AddRouteBinRequest) (*models.RouteBin, error)
	RemoveBin(ctx context.Context, routeID, binID int) error
	ListBins(ctx context.Context, routeID int) ([]models.RouteBinDetail, error)
}

// Service implements ServiceInterface. Route status transitions are plain
// field updates; the sequencer's own job is keeping the bin list coherent.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new route service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRoutes(ctx context.Context) ([]models.RouteSummary, error) {
	return s.repo.ListRoutes(ctx)
}

func (s *Service) GetRoute(ctx context.Context, id int) (*models.RouteSummary, error) {
	return s.repo.GetRoute(ctx, id)
}

func (s *Service) CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error) {
	return s.repo.CreateRoute(ctx, req)
}

func (s *Service) UpdateRoute(ctx context.Context, id int, req models.UpdateRouteRequest) (*models.Route, error) {
	return s.repo.UpdateRoute(ctx, id, req)
}

func (s *Service) DeleteRoute(ctx context.Context, id int) error {
	return s.repo.DeleteRoute(ctx, id)
}

// AddBin attaches a bin at an explicit position. The position must be a
// positive integer unused within the route; it does not have to be
// contiguous with existing positions.
func (s *Service) AddBin(ctx context.Context, routeID int, req models.AddRouteBinRequest) (*models.RouteBin, error) {
	if req.SequenceOrder <= 0 {
		return nil, fmt.Errorf("%w: sequenceOrder must be positive", models.ErrInvalidInput)
	}
	return s.repo.AddBin(ctx, routeID, req)
}

// RemoveBin detaches a bin without renumbering what remains: a route that
// held sequences 1,2,3 and loses 1 keeps 2,3 as-is, and the display numbers
// follow sequence_order, so the rendered path stays stable.
func (s *Service) RemoveBin(ctx context.Context, routeID, binID int) error {
	return s.repo.RemoveBin(ctx, routeID, binID)
}

func (s *Service) ListBins(ctx context.Context, routeID int) ([]models.RouteBinDetail, error) {
	return s.repo.ListBins(ctx, routeID)
}
