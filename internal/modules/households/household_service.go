package households

import (
	"context"

	"smart-waste/internal/models"
)

// ServiceInterface defines the household business operations. Identity is
// immutable; location and type are updatable through the partial-update
// request.
type ServiceInterface interface {
	List(ctx context.Context) ([]models.Household, error)
	Get(ctx context.Context, id int) (*models.Household, error)
	Create(ctx context.Context, req models.CreateHouseholdRequest) (*models.Household, error)
	Update(ctx context.Context, id int, req models.UpdateHouseholdRequest) (*models.Household, error)
	Delete(ctx context.Context, id int) error
}

// Service implements ServiceInterface.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new household service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Household, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*models.Household, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req models.CreateHouseholdRequest) (*models.Household, error) {
	return s.repo.Create(ctx, req)
}

func (s *Service) Update(ctx context.Context, id int, req models.UpdateHouseholdRequest) (*models.Household, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
