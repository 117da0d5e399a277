package analysis

import (
	"context"
	"errors"
	"fmt"

	"smart-waste/internal/geo"
	"smart-waste/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface is the persistence boundary of the coverage engine.
// The read methods hand out projections of current state; nothing is cached
// between calls, every invocation hits the store again.
type RepositoryInterface interface {
	ListHouseholdSites(ctx context.Context) ([]models.HouseholdSite, error)
	ListBinSites(ctx context.Context) ([]models.BinSite, error)
	GetBinSite(ctx context.Context, binID int) (*models.BinSite, error)
	InsertSuggestion(ctx context.Context, reason string, location *geo.Point) (*models.SuggestedBin, error)
	ListSuggestions(ctx context.Context) ([]models.SuggestedBin, error)
	ClearSuggestions(ctx context.Context) error
}

// Repository implements RepositoryInterface on PostGIS.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new analysis repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// ListHouseholdSites returns the (id, ward, location) projection of every
// household, plus the descriptive fields the far-households response carries.
func (r *Repository) ListHouseholdSites(ctx context.Context) ([]models.HouseholdSite, error) {
	query := `
		SELECT id, name, ward, waste_generated_per_day,
		       ST_X(location::geometry), ST_Y(location::geometry)
		FROM households`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListHouseholdSites: %w", err)
	}
	defer rows.Close()

	var sites []models.HouseholdSite
	for rows.Next() {
		var s models.HouseholdSite
		if err := rows.Scan(&s.ID, &s.Name, &s.Ward, &s.WasteGeneratedPerDay, &s.Location.Lon, &s.Location.Lat); err != nil {
			return nil, fmt.Errorf("repository.ListHouseholdSites.Scan: %w", err)
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

// ListBinSites returns the location projection of every bin.
func (r *Repository) ListBinSites(ctx context.Context) ([]models.BinSite, error) {
	query := `SELECT id, ST_X(location::geometry), ST_Y(location::geometry) FROM bins`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListBinSites: %w", err)
	}
	defer rows.Close()

	var sites []models.BinSite
	for rows.Next() {
		var s models.BinSite
		if err := rows.Scan(&s.ID, &s.Location.Lon, &s.Location.Lat); err != nil {
			return nil, fmt.Errorf("repository.ListBinSites.Scan: %w", err)
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

// GetBinSite returns one bin's location, or models.ErrNotFound.
func (r *Repository) GetBinSite(ctx context.Context, binID int) (*models.BinSite, error) {
	query := `SELECT id, ST_X(location::geometry), ST_Y(location::geometry) FROM bins WHERE id = $1`

	var s models.BinSite
	err := r.db.QueryRow(ctx, query, binID).Scan(&s.ID, &s.Location.Lon, &s.Location.Lat)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetBinSite: %w", err)
	}
	return &s, nil
}

// InsertSuggestion writes one suggestion row. A nil location inserts a NULL
// geometry; the insert is a single statement, so a cancelled context either
// prevents it entirely or leaves a complete row.
func (r *Repository) InsertSuggestion(ctx context.Context, reason string, location *geo.Point) (*models.SuggestedBin, error) {
	query := `
		INSERT INTO suggested_bins (reason, location)
		VALUES ($1, CASE
			WHEN $2::float8 IS NULL THEN NULL
			ELSE ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography
		END)
		RETURNING id, reason, ST_X(location::geometry), ST_Y(location::geometry)`

	var lng, lat *float64
	if location != nil {
		lng, lat = &location.Lon, &location.Lat
	}

	var (
		s      models.SuggestedBin
		outLon *float64
		outLat *float64
	)
	err := r.db.QueryRow(ctx, query, reason, lng, lat).Scan(&s.ID, &s.Reason, &outLon, &outLat)
	if err != nil {
		return nil, fmt.Errorf("repository.InsertSuggestion: %w", err)
	}
	if outLon != nil && outLat != nil {
		s.Location = &models.GeoJSON{Point: geo.Point{Lon: *outLon, Lat: *outLat}}
	}
	return &s, nil
}

// ListSuggestions returns all suggestion rows in insertion order.
func (r *Repository) ListSuggestions(ctx context.Context) ([]models.SuggestedBin, error) {
	query := `
		SELECT id, reason, ST_X(location::geometry), ST_Y(location::geometry)
		FROM suggested_bins
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListSuggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []models.SuggestedBin
	for rows.Next() {
		var (
			s        models.SuggestedBin
			lon, lat *float64
		)
		if err := rows.Scan(&s.ID, &s.Reason, &lon, &lat); err != nil {
			return nil, fmt.Errorf("repository.ListSuggestions.Scan: %w", err)
		}
		if lon != nil && lat != nil {
			s.Location = &models.GeoJSON{Point: geo.Point{Lon: *lon, Lat: *lat}}
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// ClearSuggestions wipes every suggestion and resets the identity sequence.
// Administrative reset between planning cycles; irreversible.
func (r *Repository) ClearSuggestions(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE suggested_bins RESTART IDENTITY`); err != nil {
		return fmt.Errorf("repository.ClearSuggestions: %w", err)
	}
	return nil
}
