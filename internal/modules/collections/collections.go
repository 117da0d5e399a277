// Package collections records bin-emptying events with links to the fleet,
// the collector and the waste-type catalog.
package collections

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"smart-waste/internal/models"
	"smart-waste/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// RepositoryInterface defines the contract for collection persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Collection, error)
	FindByID(ctx context.Context, id int) (*models.Collection, error)
	Create(ctx context.Context, req models.CreateCollectionRequest) (*models.Collection, error)
	Update(ctx context.Context, id int, req models.UpdateCollectionRequest) (*models.Collection, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new collection repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const collectionSelect = `
	SELECT c.id, c.bin_id, c.vehicle_id, c.collector_id, c.collected_at,
	       c.waste_amount_collected, c.notes,
	       b.capacity AS bin_capacity, v.license_plate, u.username AS collector,
	       w.name AS waste_type
	FROM collections c
	JOIN bins b ON c.bin_id = b.id
	LEFT JOIN vehicles v ON c.vehicle_id = v.id
	LEFT JOIN users u ON c.collector_id = u.id
	LEFT JOIN waste_types w ON c.waste_type_id = w.id`

func scanCollection(row pgx.Row) (*models.Collection, error) {
	var col models.Collection
	err := row.Scan(&col.ID, &col.BinID, &col.VehicleID, &col.CollectorID, &col.CollectedAt,
		&col.WasteAmountCollected, &col.Notes,
		&col.BinCapacity, &col.LicensePlate, &col.Collector, &col.WasteType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan collection: %w", err)
	}
	return &col, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Collection, error) {
	rows, err := r.db.Query(ctx, collectionSelect+` ORDER BY c.collected_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListCollections: %w", err)
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		col, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListCollections.Scan: %w", err)
		}
		collections = append(collections, *col)
	}
	return collections, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.Collection, error) {
	return scanCollection(r.db.QueryRow(ctx, collectionSelect+` WHERE c.id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, req models.CreateCollectionRequest) (*models.Collection, error) {
	var id int
	query := `
		INSERT INTO collections (bin_id, vehicle_id, collector_id, waste_amount_collected, waste_type_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRow(ctx, query, req.BinID, req.VehicleID, req.CollectorID,
		req.WasteAmountCollected, req.WasteTypeID, req.Notes).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CreateCollection: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateCollectionRequest) (*models.Collection, error) {
	query := `
		UPDATE collections
		SET bin_id = COALESCE($2, bin_id),
		    vehicle_id = COALESCE($3, vehicle_id),
		    collector_id = COALESCE($4, collector_id),
		    waste_amount_collected = COALESCE($5, waste_amount_collected),
		    waste_type_id = COALESCE($6, waste_type_id),
		    notes = COALESCE($7, notes)
		WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, req.BinID, req.VehicleID, req.CollectorID,
		req.WasteAmountCollected, req.WasteTypeID, req.Notes)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateCollection: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteCollection: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// ------------------- HTTP Handler -------------------

// Handler handles HTTP requests for collections.
type Handler struct {
	repo RepositoryInterface
}

// NewHandler creates a new collection handler.
func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	collections, err := h.repo.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if collections == nil {
		collections = []models.Collection{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, collections)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid collection ID")
	}

	collection, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, collection)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	collection, err := h.repo.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, collection)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid collection ID")
	}

	var req models.UpdateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	collection, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, collection)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid collection ID")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Collection deleted"})
}
