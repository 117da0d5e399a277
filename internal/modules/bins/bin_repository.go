package bins

import (
	"context"
	"errors"
	"fmt"

	"smart-waste/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for bin persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Bin, error)
	FindByID(ctx context.Context, id int) (*models.Bin, error)
	Create(ctx context.Context, req models.CreateBinRequest) (*models.Bin, error)
	Update(ctx context.Context, id int, req models.UpdateBinRequest) (*models.Bin, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new bin repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const binColumns = `id, capacity, last_collected, bin_type, fill_level, status,
       ST_X(location::geometry), ST_Y(location::geometry)`

func scanBin(row pgx.Row) (*models.Bin, error) {
	var b models.Bin
	err := row.Scan(&b.ID, &b.Capacity, &b.LastCollected, &b.BinType, &b.FillLevel,
		&b.Status, &b.Location.Lon, &b.Location.Lat)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan bin: %w", err)
	}
	return &b, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Bin, error) {
	rows, err := r.db.Query(ctx, `SELECT `+binColumns+` FROM bins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListBins: %w", err)
	}
	defer rows.Close()

	var bins []models.Bin
	for rows.Next() {
		b, err := scanBin(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListBins.Scan: %w", err)
		}
		bins = append(bins, *b)
	}
	return bins, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.Bin, error) {
	row := r.db.QueryRow(ctx, `SELECT `+binColumns+` FROM bins WHERE id = $1`, id)
	b, err := scanBin(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.FindBin: %w", err)
	}
	return b, nil
}

func (r *Repository) Create(ctx context.Context, req models.CreateBinRequest) (*models.Bin, error) {
	query := `
		INSERT INTO bins (capacity, last_collected, location, bin_type, fill_level, status)
		VALUES (COALESCE($1, 100), $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography,
		        COALESCE($5, 'standard'), COALESCE($6, 0), COALESCE($7, 'active'))
		RETURNING ` + binColumns

	row := r.db.QueryRow(ctx, query, req.Capacity, req.LastCollected, req.Lng, req.Lat,
		req.BinType, req.FillLevel, req.Status)
	b, err := scanBin(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateBin: %w", err)
	}
	return b, nil
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateBinRequest) (*models.Bin, error) {
	query := `
		UPDATE bins
		SET capacity = COALESCE($2, capacity),
		    last_collected = COALESCE($3, last_collected),
		    location = COALESCE(ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, location),
		    bin_type = COALESCE($6, bin_type),
		    fill_level = COALESCE($7, fill_level),
		    status = COALESCE($8, status)
		WHERE id = $1
		RETURNING ` + binColumns

	row := r.db.QueryRow(ctx, query, id, req.Capacity, req.LastCollected, req.Lng, req.Lat,
		req.BinType, req.FillLevel, req.Status)
	b, err := scanBin(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.UpdateBin: %w", err)
	}
	return b, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM bins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteBin: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
