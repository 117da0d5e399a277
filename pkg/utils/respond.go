package utils

import (
	"errors"
	"net/http"

	"smart-waste/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes payload with the given status code.
func RespondWithJSON(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, payload)
}

// RespondWithError writes the standard {"error": message} body.
func RespondWithError(c echo.Context, status int, message string) error {
	return c.JSON(status, models.ErrorResponse{Error: message})
}

// HandleServiceError maps the service error taxonomy to HTTP status codes.
// Anything unclassified is logged with its full chain and surfaced as a
// generic 500, so internal query text never reaches the client.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, models.ErrNotFound.Error())
	case errors.Is(err, models.ErrDuplicateSequence):
		return RespondWithError(c, http.StatusConflict, models.ErrDuplicateSequence.Error())
	case errors.Is(err, models.ErrInvalidInput):
		return RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return RespondWithError(c, http.StatusInternalServerError, "internal server error")
	}
}
