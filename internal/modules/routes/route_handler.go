package routes

import (
	"net/http"
	"strconv"

	"smart-waste/internal/models"
	"smart-waste/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for routes and their bin sequences.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new route handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListRoutes(c echo.Context) error {
	routes, err := h.svc.ListRoutes(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if routes == nil {
		routes = []models.RouteSummary{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, routes)
}

func (h *Handler) GetRoute(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("routeId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid route ID")
	}

	route, err := h.svc.GetRoute(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, route)
}

func (h *Handler) CreateRoute(c echo.Context) error {
	var req models.CreateRouteRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	route, err := h.svc.CreateRoute(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, route)
}

func (h *Handler) UpdateRoute(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("routeId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid route ID")
	}

	var req models.UpdateRouteRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	route, err := h.svc.UpdateRoute(c.Request().Context(), id, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, route)
}

func (h *Handler) DeleteRoute(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("routeId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid route ID")
	}

	if err := h.svc.DeleteRoute(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Route deleted"})
}

// ListBins handles GET /routes/:routeId/bins.
func (h *Handler) ListBins(c echo.Context) error {
	routeID, err := strconv.Atoi(c.Param("routeId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid route ID")
	}

	bins, err := h.svc.ListBins(c.Request().Context(), routeID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if bins == nil {
		bins = []models.RouteBinDetail{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, bins)
}

// AddBin handles POST /routes/:routeId/bins.
func (h *Handler) AddBin(c echo.Context) error {
	routeID, err := strconv.Atoi(c.Param("routeId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid route ID")
	}

	var req models.AddRouteBinRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	routeBin, err := h.svc.AddBin(c.Request().Context(), routeID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, routeBin)
}

// RemoveBin handles DELETE /routes/:routeId/bins/:binId.
func (h *Handler) RemoveBin(c echo.Context) error {
	routeID, err := strconv.Atoi(c.Param("routeId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid route ID")
	}
	binID, err := strconv.Atoi(c.Param("binId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid bin ID")
	}

	if err := h.svc.RemoveBin(c.Request().Context(), routeID, binID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Bin removed from route"})
}
