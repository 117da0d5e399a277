package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smart-waste/internal/models"

	"github.com/labstack/echo/v4"
)

func doAddBin(t *testing.T, e *echo.Echo, h *Handler, routeID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/routes/"+routeID+"/bins", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("routeId")
	c.SetParamValues(routeID)
	if err := h.AddBin(c); err != nil {
		t.Fatalf("AddBin handler error: %v", err)
	}
	return rec
}

func TestAddBinEndpoint(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newFakeRepo()))

	rec := doAddBin(t, e, h, "1", `{"binId":101,"sequenceOrder":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var rb models.RouteBin
	if err := json.Unmarshal(rec.Body.Bytes(), &rb); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if rb.RouteID != 1 || rb.BinID != 101 || rb.SequenceOrder != 1 {
		t.Fatalf("body = %+v", rb)
	}
}

func TestAddBinEndpointConflict(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newFakeRepo()))

	if rec := doAddBin(t, e, h, "1", `{"binId":101,"sequenceOrder":1}`); rec.Code != http.StatusCreated {
		t.Fatalf("first add: %d", rec.Code)
	}
	rec := doAddBin(t, e, h, "1", `{"binId":102,"sequenceOrder":1}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Error == "" {
		t.Fatal("conflict response carries no error message")
	}
}

func TestRemoveBinEndpointNotFound(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newFakeRepo()))

	req := httptest.NewRequest(http.MethodDelete, "/api/routes/1/bins/101", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("routeId", "binId")
	c.SetParamValues("1", "101")

	if err := h.RemoveBin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListBinsEndpointEmptyArray(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newFakeRepo()))

	req := httptest.NewRequest(http.MethodGet, "/api/routes/1/bins", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("routeId")
	c.SetParamValues("1")

	if err := h.ListBins(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty route should serialize as [], got %q", got)
	}
}

// newTestServer registers the route endpoints under the same patterns the
// application router uses, so requests resolve path params for real instead
// of having them injected.
func newTestServer() *echo.Echo {
	h := NewHandler(NewService(newFakeRepo()))
	e := echo.New()
	e.GET("/api/routes", h.ListRoutes)
	e.POST("/api/routes", h.CreateRoute)
	e.GET("/api/routes/:routeId", h.GetRoute)
	e.PUT("/api/routes/:routeId", h.UpdateRoute)
	e.DELETE("/api/routes/:routeId", h.DeleteRoute)
	e.GET("/api/routes/:routeId/bins", h.ListBins)
	e.POST("/api/routes/:routeId/bins", h.AddBin)
	e.DELETE("/api/routes/:routeId/bins/:binId", h.RemoveBin)
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouteCRUDThroughRegisteredRoutes(t *testing.T) {
	e := newTestServer()

	rec := serve(e, http.MethodGet, "/api/routes/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/routes/1 status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var summary models.RouteSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if summary.ID != 1 {
		t.Fatalf("route id = %d, want 1", summary.ID)
	}

	rec = serve(e, http.MethodPut, "/api/routes/1", `{"name":"Monday north loop v2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/routes/1 status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var updated models.Route
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if updated.Name != "Monday north loop v2" {
		t.Fatalf("name = %q after update", updated.Name)
	}

	rec = serve(e, http.MethodDelete, "/api/routes/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /api/routes/1 status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if rec := serve(e, http.MethodGet, "/api/routes/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want 404", rec.Code)
	}
}

func TestRouteBinsThroughRegisteredRoutes(t *testing.T) {
	e := newTestServer()

	if rec := serve(e, http.MethodPost, "/api/routes/1/bins", `{"binId":101,"sequenceOrder":1}`); rec.Code != http.StatusCreated {
		t.Fatalf("add bin status = %d: %s", rec.Code, rec.Body.String())
	}
	rec := serve(e, http.MethodGet, "/api/routes/1/bins", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list bins status = %d", rec.Code)
	}
	var bins []models.RouteBinDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &bins); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(bins) != 1 || bins[0].BinID != 101 {
		t.Fatalf("bins = %+v", bins)
	}

	if rec := serve(e, http.MethodDelete, "/api/routes/1/bins/101", ""); rec.Code != http.StatusOK {
		t.Fatalf("remove bin status = %d: %s", rec.Code, rec.Body.String())
	}
}
