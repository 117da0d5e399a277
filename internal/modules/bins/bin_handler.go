package bins

import (
	"net/http"
	"strconv"

	"smart-waste/internal/models"
	"smart-waste/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for bins.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new bin handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(c echo.Context) error {
	bins, err := h.svc.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if bins == nil {
		bins = []models.Bin{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, bins)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid bin ID")
	}

	bin, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, bin)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateBinRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	bin, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, bin)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid bin ID")
	}

	var req models.UpdateBinRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	bin, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, bin)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid bin ID")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Bin deleted"})
}
