package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smart-waste/internal/geo"
	"smart-waste/internal/models"

	"github.com/labstack/echo/v4"
)

func newTestHandler(repo *fakeRepo) (*echo.Echo, *Handler) {
	e := echo.New()
	return e, NewHandler(NewService(repo))
}

func TestFarHouseholdsEndpoint(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(2, "north", 0, 1)},
	}
	e, h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/far-households?dist=300", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.FarHouseholds(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body []struct {
		ID       int `json:"id"`
		Location struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"location"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body) != 1 || body[0].ID != 2 {
		t.Fatalf("body = %+v, want household 2", body)
	}
	// GeoJSON puts longitude first.
	if body[0].Location.Type != "Point" || body[0].Location.Coordinates[0] != 0 || body[0].Location.Coordinates[1] != 1 {
		t.Fatalf("location = %+v, want Point [0 1]", body[0].Location)
	}
}

func TestBinCoverageEndpoint(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(1, "north", 0, 0)},
		bins:       []models.BinSite{{ID: 10, Location: geo.Point{Lon: 0, Lat: 0}}},
	}
	e, h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/bin-coverage/10?dist=300", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("binId")
	c.SetParamValues("10")

	if err := h.BinCoverage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body models.BinCoverage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.BinID != 10 || body.ServedHouseholds != 1 {
		t.Fatalf("body = %+v, want bin 10 serving 1", body)
	}
}

func TestBinCoverageEndpointBadID(t *testing.T) {
	e, h := newTestHandler(&fakeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/bin-coverage/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("binId")
	c.SetParamValues("abc")

	if err := h.BinCoverage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSuggestEndpointReturnsArray(t *testing.T) {
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(1, "north", 0, 1)},
	}
	e, h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/suggest", strings.NewReader(`{"dist":300}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SuggestBin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var body []models.SuggestedBin
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body) != 1 || body[0].Reason != UncoveredReason {
		t.Fatalf("body = %+v, want one suggestion with the centroid reason", body)
	}
}

func TestSuggestEndpointMalformedDist(t *testing.T) {
	// Junk in dist falls back to the default radius instead of erroring.
	repo := &fakeRepo{
		households: []models.HouseholdSite{household(1, "north", 0, 1)},
	}
	e, h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/suggest", strings.NewReader(`{"dist":"oops"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SuggestBin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(repo.suggestions) != 1 {
		t.Fatalf("expected one persisted suggestion, have %d", len(repo.suggestions))
	}
}
