// Package wastetypes manages the catalog of waste categories.
package wastetypes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"smart-waste/internal/models"
	"smart-waste/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// RepositoryInterface defines the contract for waste-type persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.WasteType, error)
	FindByID(ctx context.Context, id int) (*models.WasteType, error)
	Create(ctx context.Context, req models.CreateWasteTypeRequest) (*models.WasteType, error)
	Update(ctx context.Context, id int, req models.UpdateWasteTypeRequest) (*models.WasteType, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new waste-type repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func scanWasteType(row pgx.Row) (*models.WasteType, error) {
	var w models.WasteType
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &w.Recyclable); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan waste type: %w", err)
	}
	return &w, nil
}

func (r *Repository) List(ctx context.Context) ([]models.WasteType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, recyclable FROM waste_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListWasteTypes: %w", err)
	}
	defer rows.Close()

	var types []models.WasteType
	for rows.Next() {
		w, err := scanWasteType(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListWasteTypes.Scan: %w", err)
		}
		types = append(types, *w)
	}
	return types, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.WasteType, error) {
	return scanWasteType(r.db.QueryRow(ctx,
		`SELECT id, name, description, recyclable FROM waste_types WHERE id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, req models.CreateWasteTypeRequest) (*models.WasteType, error) {
	query := `
		INSERT INTO waste_types (name, description, recyclable)
		VALUES ($1, $2, COALESCE($3, false))
		RETURNING id, name, description, recyclable`
	w, err := scanWasteType(r.db.QueryRow(ctx, query, req.Name, req.Description, req.Recyclable))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateWasteType: %w", err)
	}
	return w, nil
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateWasteTypeRequest) (*models.WasteType, error) {
	query := `
		UPDATE waste_types
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    recyclable = COALESCE($4, recyclable)
		WHERE id = $1
		RETURNING id, name, description, recyclable`
	w, err := scanWasteType(r.db.QueryRow(ctx, query, id, req.Name, req.Description, req.Recyclable))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateWasteType: %w", err)
	}
	return w, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM waste_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteWasteType: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ------------------- HTTP Handler -------------------

// Handler handles HTTP requests for waste types.
type Handler struct {
	repo RepositoryInterface
}

// NewHandler creates a new waste-type handler.
func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	types, err := h.repo.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if types == nil {
		types = []models.WasteType{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, types)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid waste type ID")
	}

	wasteType, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, wasteType)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateWasteTypeRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	wasteType, err := h.repo.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, wasteType)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid waste type ID")
	}

	var req models.UpdateWasteTypeRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	wasteType, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, wasteType)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid waste type ID")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Waste type deleted"})
}
