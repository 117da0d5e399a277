// Package assignments links households to the bins that serve them.
package assignments

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

// RepositoryInterface defines the contract for assignment persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Assignment, error)
	FindByID(ctx context.Context, id int) (*models.Assignment, error)
	Create(ctx context.Context, req models.CreateAssignmentRequest) (*models.Assignment, error)
	Update(ctx context.Context, id int, req models.UpdateAssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, id int) error
	ListByHousehold(ctx context.Context, householdID int) ([]models.AssignmentBin, error)
	ListByBin(ctx context.Context, binID int) ([]models.AssignmentHousehold, error)
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new assignment repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const assignmentSelect = `
	SELECT a.id, a.household_id, a.bin_id, a.assigned_date, a.priority,
	       h.name AS household_name, h.ward, b.capacity AS bin_capacity,
	       b.fill_level
	FROM household_bin_assignments a
	JOIN households h ON a.household_id = h.id
	JOIN bins b ON a.bin_id = b.id`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(&a.ID, &a.HouseholdID, &a.BinID, &a.AssignedDate, &a.Priority,
		&a.HouseholdName, &a.Ward, &a.BinCapacity, &a.FillLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}
	return &a, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Assignment, error) {
	rows, err := r.db.Query(ctx, assignmentSelect+` ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAssignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListAssignments.Scan: %w", err)
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.Assignment, error) {
	return scanAssignment(r.db.QueryRow(ctx, assignmentSelect+` WHERE a.id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, req models.CreateAssignmentRequest) (*models.Assignment, error) {
	var id int
	query := `
		INSERT INTO household_bin_assignments (household_id, bin_id, priority)
		VALUES ($1, $2, COALESCE($3, 1))
		RETURNING id`
	err := r.db.QueryRow(ctx, query, req.HouseholdID, req.BinID, req.Priority).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CreateAssignment: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateAssignmentRequest) (*models.Assignment, error) {
	query := `
		UPDATE household_bin_assignments
		SET household_id = COALESCE($2, household_id),
		    bin_id = COALESCE($3, bin_id),
		    priority = COALESCE($4, priority)
		WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, req.HouseholdID, req.BinID, req.Priority)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateAssignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM household_bin_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteAssignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListByHousehold returns the bins assigned to one household, best priority first.
func (r *Repository) ListByHousehold(ctx context.Context, householdID int) ([]models.AssignmentBin, error) {
	query := `
		SELECT a.id, a.bin_id, a.assigned_date, a.priority,
		       b.capacity, b.fill_level, b.status,
		       ST_X(b.location::geometry), ST_Y(b.location::geometry)
		FROM household_bin_assignments a
		JOIN bins b ON a.bin_id = b.id
		WHERE a.household_id = $1
		ORDER BY a.priority, a.id`
	rows, err := r.db.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByHousehold: %w", err)
	}
	defer rows.Close()

	var result []models.AssignmentBin
	for rows.Next() {
		var ab models.AssignmentBin
		err := rows.Scan(&ab.ID, &ab.BinID, &ab.AssignedDate, &ab.Priority,
			&ab.Capacity, &ab.FillLevel, &ab.Status, &ab.Location.Lon, &ab.Location.Lat)
		if err != nil {
			return nil, fmt.Errorf("repository.ListByHousehold.Scan: %w", err)
		}
		result = append(result, ab)
	}
	return result, rows.Err()
}

// ListByBin returns the households served by one bin, best priority first.
func (r *Repository) ListByBin(ctx context.Context, binID int) ([]models.AssignmentHousehold, error) {
	query := `
		SELECT a.id, a.household_id, a.assigned_date, a.priority,
		       h.name, h.ward, h.waste_generated_per_day,
		       ST_X(h.location::geometry), ST_Y(h.location::geometry)
		FROM household_bin_assignments a
		JOIN households h ON a.household_id = h.id
		WHERE a.bin_id = $1
		ORDER BY a.priority, a.id`
	rows, err := r.db.Query(ctx, query, binID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByBin: %w", err)
	}
	defer rows.Close()

	var result []models.AssignmentHousehold
	for rows.Next() {
		var ah models.AssignmentHousehold
		err := rows.Scan(&ah.ID, &ah.HouseholdID, &ah.AssignedDate, &ah.Priority,
			&ah.Name, &ah.Ward, &ah.WasteGeneratedPerDay, &ah.Location.Lon, &ah.Location.Lat)
		if err != nil {
			return nil, fmt.Errorf("repository.ListByBin.Scan: %w", err)
		}
		result = append(result, ah)
	}
	return result, rows.Err()
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// ------------------- HTTP Handler -------------------

// Handler handles HTTP requests for household-bin assignments.
type Handler struct {
	repo RepositoryInterface
}

// NewHandler creates a new assignment handler.
func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	assignments, err := h.repo.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, assignments)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid assignment ID")
	}

	assignment, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, assignment)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	assignment, err := h.repo.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, assignment)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid assignment ID")
	}

	var req models.UpdateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	assignment, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, assignment)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid assignment ID")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Assignment deleted"})
}

func (h *Handler) ListByHousehold(c echo.Context) error {
	householdID, err := strconv.Atoi(c.Param("householdId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid household ID")
	}

	bins, err := h.repo.ListByHousehold(c.Request().Context(), householdID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if bins == nil {
		bins = []models.AssignmentBin{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, bins)
}

func (h *Handler) ListByBin(c echo.Context) error {
	binID, err := strconv.Atoi(c.Param("binId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid bin ID")
	}

	households, err := h.repo.ListByBin(c.Request().Context(), binID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if households == nil {
		households = []models.AssignmentHousehold{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, households)
}
