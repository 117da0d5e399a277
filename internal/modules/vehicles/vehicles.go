// Package vehicles tracks the collection fleet and its operator assignments.
package vehicles

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

// RepositoryInterface defines the contract for vehicle persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	FindByID(ctx context.Context, id int) (*models.Vehicle, error)
	Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error)
	Update(ctx context.Context, id int, req models.UpdateVehicleRequest) (*models.Vehicle, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new vehicle repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const vehicleSelect = `
	SELECT v.id, v.license_plate, v.capacity, v.vehicle_type, v.status,
	       u.username AS assigned_user
	FROM vehicles v
	LEFT JOIN users u ON v.assigned_user_id = u.id`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := row.Scan(&v.ID, &v.LicensePlate, &v.Capacity, &v.VehicleType, &v.Status, &v.AssignedUser); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}
	return &v, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.db.Query(ctx, vehicleSelect+` ORDER BY v.id`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListVehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListVehicles.Scan: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.Vehicle, error) {
	return scanVehicle(r.db.QueryRow(ctx, vehicleSelect+` WHERE v.id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	query := `
		WITH inserted AS (
			INSERT INTO vehicles (license_plate, capacity, vehicle_type, assigned_user_id, status)
			VALUES ($1, $2, $3, $4, COALESCE($5, 'available'))
			RETURNING id, license_plate, capacity, vehicle_type, status, assigned_user_id
		)
		SELECT i.id, i.license_plate, i.capacity, i.vehicle_type, i.status, u.username
		FROM inserted i
		LEFT JOIN users u ON i.assigned_user_id = u.id`

	v, err := scanVehicle(r.db.QueryRow(ctx, query, req.LicensePlate, req.Capacity,
		req.VehicleType, req.AssignedUserID, req.Status))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CreateVehicle: %w", err)
	}
	return v, nil
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	query := `
		WITH updated AS (
			UPDATE vehicles
			SET license_plate = COALESCE($2, license_plate),
			    capacity = COALESCE($3, capacity),
			    vehicle_type = COALESCE($4, vehicle_type),
			    assigned_user_id = COALESCE($5, assigned_user_id),
			    status = COALESCE($6, status)
			WHERE id = $1
			RETURNING id, license_plate, capacity, vehicle_type, status, assigned_user_id
		)
		SELECT u2.id, u2.license_plate, u2.capacity, u2.vehicle_type, u2.status, u.username
		FROM updated u2
		LEFT JOIN users u ON u2.assigned_user_id = u.id`

	v, err := scanVehicle(r.db.QueryRow(ctx, query, id, req.LicensePlate, req.Capacity,
		req.VehicleType, req.AssignedUserID, req.Status))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateVehicle: %w", err)
	}
	return v, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteVehicle: %w", err)
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

// Handler handles HTTP requests for vehicles.
type Handler struct {
	repo RepositoryInterface
}

// NewHandler creates a new vehicle handler.
func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	vehicles, err := h.repo.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, vehicles)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID")
	}

	vehicle, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, vehicle)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.repo.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, vehicle)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID")
	}

	var req models.UpdateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, vehicle)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}
