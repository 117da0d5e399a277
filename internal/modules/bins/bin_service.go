package bins

import (
	"context"

	"smart-waste/internal/models"
)

// ServiceInterface defines the bin business operations. Fill level is
// normally advanced by collection events and status by maintenance; direct
// updates exist for corrections from the map UI.
type ServiceInterface interface {
	List(ctx context.Context) ([]models.Bin, error)
	Get(ctx context.Context, id int) (*models.Bin, error)
	Create(ctx context.Context, req models.CreateBinRequest) (*models.Bin, error)
	Update(ctx context.Context, id int, req models.UpdateBinRequest) (*models.Bin, error)
	Delete(ctx context.Context, id int) error
}

// Service implements ServiceInterface.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new bin service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Bin, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*models.Bin, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req models.CreateBinRequest) (*models.Bin, error) {
	return s.repo.Create(ctx, req)
}

func (s *Service) Update(ctx context.Context, id int, req models.UpdateBinRequest) (*models.Bin, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
