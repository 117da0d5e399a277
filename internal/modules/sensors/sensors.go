// Package sensors manages the fill-level and telemetry probes mounted on bins.
package sensors

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

// RepositoryInterface defines the contract for sensor persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.Sensor, error)
	FindByID(ctx context.Context, id int) (*models.Sensor, error)
	Create(ctx context.Context, req models.CreateSensorRequest) (*models.Sensor, error)
	Update(ctx context.Context, id int, req models.UpdateSensorRequest) (*models.Sensor, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new sensor repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const sensorSelect = `
	SELECT s.id, s.bin_id, s.sensor_type, s.last_reading, s.last_reading_time,
	       s.battery_level, s.status,
	       b.capacity AS bin_capacity, b.fill_level
	FROM sensors s
	JOIN bins b ON s.bin_id = b.id`

func scanSensor(row pgx.Row) (*models.Sensor, error) {
	var s models.Sensor
	err := row.Scan(&s.ID, &s.BinID, &s.SensorType, &s.LastReading, &s.LastReadingTime,
		&s.BatteryLevel, &s.Status, &s.BinCapacity, &s.FillLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan sensor: %w", err)
	}
	return &s, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Sensor, error) {
	rows, err := r.db.Query(ctx, sensorSelect+` ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListSensors: %w", err)
	}
	defer rows.Close()

	var sensors []models.Sensor
	for rows.Next() {
		s, err := scanSensor(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListSensors.Scan: %w", err)
		}
		sensors = append(sensors, *s)
	}
	return sensors, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.Sensor, error) {
	return scanSensor(r.db.QueryRow(ctx, sensorSelect+` WHERE s.id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, req models.CreateSensorRequest) (*models.Sensor, error) {
	var id int
	query := `
		INSERT INTO sensors (bin_id, sensor_type, last_reading, last_reading_time, battery_level, status)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, 'online'))
		RETURNING id`
	err := r.db.QueryRow(ctx, query, req.BinID, req.SensorType, req.LastReading,
		req.LastReadingTime, req.BatteryLevel, req.Status).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CreateSensor: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id int, req models.UpdateSensorRequest) (*models.Sensor, error) {
	query := `
		UPDATE sensors
		SET bin_id = COALESCE($2, bin_id),
		    sensor_type = COALESCE($3, sensor_type),
		    last_reading = COALESCE($4, last_reading),
		    last_reading_time = COALESCE($5, last_reading_time),
		    battery_level = COALESCE($6, battery_level),
		    status = COALESCE($7, status)
		WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, req.BinID, req.SensorType, req.LastReading,
		req.LastReadingTime, req.BatteryLevel, req.Status)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateSensor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sensors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteSensor: %w", err)
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

// Handler handles HTTP requests for sensors.
type Handler struct {
	repo RepositoryInterface
}

// NewHandler creates a new sensor handler.
func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	sensors, err := h.repo.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if sensors == nil {
		sensors = []models.Sensor{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, sensors)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid sensor ID")
	}

	sensor, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, sensor)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateSensorRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	sensor, err := h.repo.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, sensor)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid sensor ID")
	}

	var req models.UpdateSensorRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	sensor, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, sensor)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid sensor ID")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Sensor deleted"})
}
