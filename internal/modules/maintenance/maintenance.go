// Package maintenance tracks scheduled and completed service work on bins.
package maintenance

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

// RepositoryInterface defines the contract for maintenance persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Maintenance, error)
	FindByID(ctx context.Context, id int) (*models.Maintenance, error)
	Create(ctx context.Context, req models.CreateMaintenanceRequest) (*models.Maintenance, error)
	Update(ctx context.Context, id int, req models.UpdateMaintenanceRequest) (*models.Maintenance, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new maintenance repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const maintenanceSelect = `
	SELECT m.id, m.bin_id, m.scheduled_date, m.completed_date, m.maintenance_type,
	       m.description, m.technician_id, m.cost, m.status,
	       b.capacity AS bin_capacity, u.username AS technician
	FROM maintenance m
	LEFT JOIN bins b ON m.bin_id = b.id
	LEFT JOIN users u ON m.technician_id = u.id`

func scanMaintenance(row pgx.Row) (*models.Maintenance, error) {
	var m models.Maintenance
	err := row.Scan(&m.ID, &m.BinID, &m.ScheduledDate, &m.CompletedDate, &m.MaintenanceType,
		&m.Description, &m.TechnicianID, &m.Cost, &m.Status, &m.BinCapacity, &m.Technician)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
	}
	return &m, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Maintenance, error) {
	rows, err := r.db.Query(ctx, maintenanceSelect+` ORDER BY m.scheduled_date DESC NULLS LAST, m.id`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListMaintenance: %w", err)
	}
	defer rows.Close()

	var records []models.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListMaintenance.Scan: %w", err)
		}
		records = append(records, *m)
	}
	return records, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.Maintenance, error) {
	return scanMaintenance(r.db.QueryRow(ctx, maintenanceSelect+` WHERE m.id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, req models.CreateMaintenanceRequest) (*models.Maintenance, error) {
	var id int
	query := `
		INSERT INTO maintenance (bin_id, scheduled_date, maintenance_type, description, technician_id, cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, 'scheduled'))
		RETURNING id`
	err := r.db.QueryRow(ctx, query, req.BinID, req.ScheduledDate, req.MaintenanceType,
		req.Description, req.TechnicianID, req.Cost, req.Status).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CreateMaintenance: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateMaintenanceRequest) (*models.Maintenance, error) {
	query := `
		UPDATE maintenance
		SET bin_id = COALESCE($2, bin_id),
		    scheduled_date = COALESCE($3, scheduled_date),
		    completed_date = COALESCE($4, completed_date),
		    maintenance_type = COALESCE($5, maintenance_type),
		    description = COALESCE($6, description),
		    technician_id = COALESCE($7, technician_id),
		    cost = COALESCE($8, cost),
		    status = COALESCE($9, status)
		WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, req.BinID, req.ScheduledDate, req.CompletedDate,
		req.MaintenanceType, req.Description, req.TechnicianID, req.Cost, req.Status)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateMaintenance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM maintenance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteMaintenance: %w", err)
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

// Handler handles HTTP requests for maintenance records.
type Handler struct {
	repo RepositoryInterface
}

// NewHandler creates a new maintenance handler.
func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	records, err := h.repo.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if records == nil {
		records = []models.Maintenance{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, records)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance ID")
	}

	record, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, record)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	record, err := h.repo.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, record)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance ID")
	}

	var req models.UpdateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	record, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, record)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance ID")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Maintenance record deleted"})
}
