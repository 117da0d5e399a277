package households

import (
	"context"
	"errors"
	"fmt"

	"smart-waste/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for household persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Household, error)
	FindByID(ctx context.Context, id int) (*models.Household, error)
	Create(ctx context.Context, req models.CreateHouseholdRequest) (*models.Household, error)
	Update(ctx context.Context, id int, req models.UpdateHouseholdRequest) (*models.Household, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new household repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const householdColumns = `id, name, ward, waste_generated_per_day, contact_info, household_type,
       ST_X(location::geometry), ST_Y(location::geometry)`

func scanHousehold(row pgx.Row) (*models.Household, error) {
	var h models.Household
	err := row.Scan(&h.ID, &h.Name, &h.Ward, &h.WasteGeneratedPerDay, &h.ContactInfo,
		&h.HouseholdType, &h.Location.Lon, &h.Location.Lat)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan household: %w", err)
	}
	return &h, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Household, error) {
	rows, err := r.db.Query(ctx, `SELECT `+householdColumns+` FROM households ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListHouseholds: %w", err)
	}
	defer rows.Close()

	var households []models.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListHouseholds.Scan: %w", err)
		}
		households = append(households, *h)
	}
	return households, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.Household, error) {
	row := r.db.QueryRow(ctx, `SELECT `+householdColumns+` FROM households WHERE id = $1`, id)
	h, err := scanHousehold(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.FindHousehold: %w", err)
	}
	return h, nil
}

// Create inserts a household. lat/lng arrive as separate fields and are
// composed into a geography point here; note ST_MakePoint takes lng first.
func (r *Repository) Create(ctx context.Context, req models.CreateHouseholdRequest) (*models.Household, error) {
	query := `
		INSERT INTO households (name, ward, waste_generated_per_day, location, contact_info, household_type)
		VALUES ($1, $2, COALESCE($3, 0), ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography,
		        $6, COALESCE($7, 'residential'))
		RETURNING ` + householdColumns

	row := r.db.QueryRow(ctx, query, req.Name, req.Ward, req.WasteGeneratedPerDay,
		req.Lng, req.Lat, req.ContactInfo, req.HouseholdType)
	h, err := scanHousehold(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateHousehold: %w", err)
	}
	return h, nil
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateHouseholdRequest) (*models.Household, error) {
	query := `
		UPDATE households
		SET name = COALESCE($2, name),
		    ward = COALESCE($3, ward),
		    waste_generated_per_day = COALESCE($4, waste_generated_per_day),
		    location = COALESCE(ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, location),
		    contact_info = COALESCE($7, contact_info),
		    household_type = COALESCE($8, household_type)
		WHERE id = $1
		RETURNING ` + householdColumns

	row := r.db.QueryRow(ctx, query, id, req.Name, req.Ward, req.WasteGeneratedPerDay,
		req.Lng, req.Lat, req.ContactInfo, req.HouseholdType)
	h, err := scanHousehold(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.UpdateHousehold: %w", err)
	}
	return h, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM households WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteHousehold: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
