package analysis

import (
	"net/http"
	"strconv"

	"smart-waste/internal/metrics"
	"smart-waste/internal/models"
	"smart-waste/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for coverage analysis and bin suggestions.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new analysis handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// parseDist reads a distance in meters from a query string. Anything
// unparsable comes back as 0 and the service substitutes the default.
func parseDist(raw string) float64 {
	dist, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return dist
}

// FarHouseholds handles GET /analysis/far-households?dist=<meters>.
func (h *Handler) FarHouseholds(c echo.Context) error {
	dist := parseDist(c.QueryParam("dist"))

	households, err := h.svc.FarHouseholds(c.Request().Context(), dist)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, households)
}

// SuggestBin handles POST /analysis/suggest. The body may carry {dist};
// a missing or malformed value falls back to the default radius, so the
// bind error is intentionally discarded.
func (h *Handler) SuggestBin(c echo.Context) error {
	var req models.SuggestBinRequest
	_ = c.Bind(&req)

	suggestion, err := h.svc.SuggestBin(c.Request().Context(), req.Dist)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	outcome := "located"
	if suggestion.Location == nil {
		outcome = "empty"
	}
	metrics.Suggestions.WithLabelValues(outcome).Inc()

	// The client expects the inserted row wrapped in an array.
	return utils.RespondWithJSON(c, http.StatusCreated, []*models.SuggestedBin{suggestion})
}

// ListSuggestions handles GET /analysis/suggested.
func (h *Handler) ListSuggestions(c echo.Context) error {
	suggestions, err := h.svc.ListSuggestions(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if suggestions == nil {
		suggestions = []models.SuggestedBin{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, suggestions)
}

// ClearSuggestions handles DELETE /analysis/suggested. Administrative
// reset between planning cycles.
func (h *Handler) ClearSuggestions(c echo.Context) error {
	if err := h.svc.ClearSuggestions(c.Request().Context()); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "Suggestions cleared"})
}

// BinCoverage handles GET /analysis/bin-coverage/:binId?dist=<meters>.
func (h *Handler) BinCoverage(c echo.Context) error {
	binID, err := strconv.Atoi(c.Param("binId"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid bin ID")
	}
	dist := parseDist(c.QueryParam("dist"))

	coverage, err := h.svc.BinCoverage(c.Request().Context(), binID, dist)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, coverage)
}

// AvgDistancePerWard handles GET /analysis/avg-distance-per-ward.
func (h *Handler) AvgDistancePerWard(c echo.Context) error {
	wards, err := h.svc.AvgDistancePerWard(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, wards)
}
