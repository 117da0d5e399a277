package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"smart-waste/internal/models"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("repository.FindBin: %w", models.ErrNotFound), http.StatusNotFound},
		{"duplicate sequence", models.ErrDuplicateSequence, http.StatusConflict},
		{"invalid input", fmt.Errorf("%w: sequenceOrder must be positive", models.ErrInvalidInput), http.StatusBadRequest},
		{"unclassified", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if err := HandleServiceError(c, tt.err); err != nil {
				t.Fatalf("HandleServiceError returned %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not an error body: %v", err)
			}
			if body.Error == "" {
				t.Errorf("error message is empty")
			}
		})
	}
}

func TestHandleServiceErrorHidesInternals(t *testing.T) {
	c, rec := newTestContext(t)
	if err := HandleServiceError(c, fmt.Errorf("repository.ListBins: SELECT blew up")); err != nil {
		t.Fatalf("HandleServiceError returned %v", err)
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not an error body: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal detail leaked to client: %q", body.Error)
	}
}

func TestValidatorAcceptsZeroCoordinates(t *testing.T) {
	lat, lng := 5.0, 0.0
	req := models.CreateHouseholdRequest{Name: "Equator house", Ward: "w1", Lat: &lat, Lng: &lng}
	if err := GetValidator().Validate(req); err != nil {
		t.Fatalf("household on the prime meridian rejected: %v", err)
	}

	zero := 0.0
	bin := models.CreateBinRequest{Lat: &zero, Lng: &zero}
	if err := GetValidator().Validate(bin); err != nil {
		t.Fatalf("bin at (0,0) rejected: %v", err)
	}

	missing := models.CreateHouseholdRequest{Name: "No location", Ward: "w1", Lng: &zero}
	if err := GetValidator().Validate(missing); err == nil {
		t.Fatal("missing latitude accepted")
	}
}

func TestValidatorEnforcesTags(t *testing.T) {
	type payload struct {
		Name string  `validate:"required"`
		Lat  float64 `validate:"gte=-90,lte=90"`
	}

	v := GetValidator()
	if err := v.Validate(payload{Name: "central depot", Lat: 23.8}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if err := v.Validate(payload{Lat: 123}); err == nil {
		t.Fatal("invalid payload accepted")
	}
	if GetValidator() != v {
		t.Error("GetValidator is not a singleton")
	}
}
