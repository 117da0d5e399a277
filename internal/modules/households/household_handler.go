package households

import (
	"net/http"
	"strconv"

	"smart-waste/internal/models"
	"smart-waste/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for households.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new household handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(c echo.Context) error {
	households, err := h.svc.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if households == nil {
		households = []models.Household{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, households)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid household ID")
	}

	household, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, household)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateHouseholdRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	household, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, household)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid household ID")
	}

	var req models.UpdateHouseholdRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	household, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, household)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid household ID")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Household deleted"})
}
