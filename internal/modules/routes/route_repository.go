package routes

import (
	"context"
	"errors"
	"fmt"

	"smart-waste/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface is the persistence contract for routes and their
// ordered bin lists.
//
// AddBin enforces sequence uniqueness twice: an explicit lookup that yields
// the typed error, and the route_bins unique constraint that arbitrates the
// race two concurrent writers can still lose into. The loser retries with a
// different sequence number; no lock serializes route edits.
type RepositoryInterface interface {
	ListRoutes(ctx context.Context) ([]models.RouteSummary, error)
	GetRoute(ctx context.Context, id int) (*models.RouteSummary, error)
	CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error)
	UpdateRoute(ctx context.Context, id int, req models.UpdateRouteRequest) (*models.Route, error)
	DeleteRoute(ctx context.Context, id int) error
	AddBin(ctx context.Context, routeID int, req models.AddRouteBinRequest) (*models.RouteBin, error)
	RemoveBin(ctx context.Context, routeID, binID int) error
	ListBins(ctx context.Context, routeID int) ([]models.RouteBinDetail, error)
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new route repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) ListRoutes(ctx context.Context) ([]models.RouteSummary, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_by, r.created_at,
		       r.estimated_duration, r.status,
		       u.username AS creator,
		       COUNT(rb.bin_id) AS bins_in_route
		FROM routes r
		LEFT JOIN users u ON r.created_by = u.id
		LEFT JOIN route_bins rb ON r.id = rb.route_id
		GROUP BY r.id, u.username
		ORDER BY r.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListRoutes: %w", err)
	}
	defer rows.Close()

	var routes []models.RouteSummary
	for rows.Next() {
		var rt models.RouteSummary
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.CreatedBy, &rt.CreatedAt,
			&rt.EstimatedDuration, &rt.Status, &rt.Creator, &rt.BinsInRoute); err != nil {
			return nil, fmt.Errorf("repository.ListRoutes.Scan: %w", err)
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *Repository) GetRoute(ctx context.Context, id int) (*models.RouteSummary, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_by, r.created_at,
		       r.estimated_duration, r.status,
		       u.username AS creator,
		       (SELECT COUNT(*) FROM route_bins rb WHERE rb.route_id = r.id) AS bins_in_route
		FROM routes r
		LEFT JOIN users u ON r.created_by = u.id
		WHERE r.id = $1`

	var rt models.RouteSummary
	err := r.db.QueryRow(ctx, query, id).Scan(&rt.ID, &rt.Name, &rt.Description, &rt.CreatedBy,
		&rt.CreatedAt, &rt.EstimatedDuration, &rt.Status, &rt.Creator, &rt.BinsInRoute)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetRoute: %w", err)
	}
	return &rt, nil
}

func (r *Repository) CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error) {
	query := `
		INSERT INTO routes (name, description, created_by, estimated_duration, status)
		VALUES ($1, $2, $3, $4, COALESCE($5, 'planned'))
		RETURNING id, name, description, created_by, created_at, estimated_duration, status`

	var rt models.Route
	err := r.db.QueryRow(ctx, query, req.Name, req.Description, req.CreatedBy, req.EstimatedDuration, req.Status).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.CreatedBy, &rt.CreatedAt, &rt.EstimatedDuration, &rt.Status)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CreateRoute: %w", err)
	}
	return &rt, nil
}

func (r *Repository) UpdateRoute(ctx context.Context, id int, req models.UpdateRouteRequest) (*models.Route, error) {
	query := `
		UPDATE routes
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    estimated_duration = COALESCE($4, estimated_duration),
		    status = COALESCE($5, status)
		WHERE id = $1
		RETURNING id, name, description, created_by, created_at, estimated_duration, status`

	var rt models.Route
	err := r.db.QueryRow(ctx, query, id, req.Name, req.Description, req.EstimatedDuration, req.Status).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.CreatedBy, &rt.CreatedAt, &rt.EstimatedDuration, &rt.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateRoute: %w", err)
	}
	return &rt, nil
}

func (r *Repository) DeleteRoute(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteRoute: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AddBin attaches a bin to a route at the requested sequence position.
func (r *Repository) AddBin(ctx context.Context, routeID int, req models.AddRouteBinRequest) (*models.RouteBin, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM route_bins WHERE route_id = $1 AND sequence_order = $2)`,
		routeID, req.SequenceOrder).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("repository.AddBin.CheckSequence: %w", err)
	}
	if taken {
		return nil, models.ErrDuplicateSequence
	}

	query := `
		INSERT INTO route_bins (route_id, bin_id, sequence_order, estimated_arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, route_id, bin_id, sequence_order, estimated_arrival_time`

	var rb models.RouteBin
	err = r.db.QueryRow(ctx, query, routeID, req.BinID, req.SequenceOrder, req.EstimatedArrivalTime).
		Scan(&rb.ID, &rb.RouteID, &rb.BinID, &rb.SequenceOrder, &rb.EstimatedArrivalTime)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			// Lost the race to a concurrent writer.
			return nil, models.ErrDuplicateSequence
		case isForeignKeyViolation(err):
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.AddBin: %w", err)
	}
	return &rb, nil
}

// RemoveBin detaches one bin from a route. Remaining sequence_order values
// keep their numbers; gaps are expected.
func (r *Repository) RemoveBin(ctx context.Context, routeID, binID int) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM route_bins WHERE route_id = $1 AND bin_id = $2`, routeID, binID)
	if err != nil {
		return fmt.Errorf("repository.RemoveBin: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListBins returns the route's bins joined with current bin state, ordered
// by sequence. An unknown route yields zero rows, not an error.
func (r *Repository) ListBins(ctx context.Context, routeID int) ([]models.RouteBinDetail, error) {
	query := `
		SELECT rb.id, rb.route_id, rb.bin_id, rb.sequence_order, rb.estimated_arrival_time,
		       b.capacity, b.fill_level, b.status,
		       ST_X(b.location::geometry), ST_Y(b.location::geometry)
		FROM route_bins rb
		JOIN bins b ON rb.bin_id = b.id
		WHERE rb.route_id = $1
		ORDER BY rb.sequence_order`

	rows, err := r.db.Query(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListBins: %w", err)
	}
	defer rows.Close()

	var bins []models.RouteBinDetail
	for rows.Next() {
		var rb models.RouteBinDetail
		if err := rows.Scan(&rb.ID, &rb.RouteID, &rb.BinID, &rb.SequenceOrder, &rb.EstimatedArrivalTime,
			&rb.Capacity, &rb.FillLevel, &rb.Status, &rb.Location.Lon, &rb.Location.Lat); err != nil {
			return nil, fmt.Errorf("repository.ListBins.Scan: %w", err)
		}
		bins = append(bins, rb)
	}
	return bins, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
