package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sightline/pkg/pipeline"
)

const testProfile = `
units = "m"

[focus]
h = 0.0
v = 0.0

[[tier]]
start_h = 5.0
start_v = 1.0
c_value = 0.1
rows = 5
`

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(Config{}, pipeline.NewRunner(nil, nil, logger), logger)
}

func TestHealthz(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestSynthesizeSVG(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/sections", strings.NewReader(testProfile))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("body is not an SVG document")
	}
	if rec.Header().Get("X-Profile-Hash") == "" {
		t.Error("missing X-Profile-Hash header")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestSynthesizeJSONFormat(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/sections?format=json", strings.NewReader(testProfile))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		RowCount int `json:"row_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if doc.RowCount != 5 {
		t.Errorf("row_count = %d, want 5", doc.RowCount)
	}
}

func TestSynthesizeCSVFormat(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/sections?format=csv", strings.NewReader(testProfile))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "tier,row,") {
		t.Error("body is not a schedule CSV")
	}
}

func TestSynthesizeBadProfile(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/sections", strings.NewReader("rows = ["))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	if body.Code != "INVALID_PROFILE" {
		t.Errorf("code = %q, want INVALID_PROFILE", body.Code)
	}
}

func TestSynthesizeDegenerateGeometry(t *testing.T) {
	// start_h 0 with focus at the origin puts the first nose on the focus
	// vertical; the riser solve has no triangle to work with.
	profile := `
[[tier]]
start_h = 0.0
start_v = 1.0
rows = 3
`
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/sections", strings.NewReader(profile))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	if body.Code != "DEGENERATE_GEOMETRY" {
		t.Errorf("code = %q, want DEGENERATE_GEOMETRY", body.Code)
	}
}

func TestSynthesizeInvalidFormat(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/sections?format=gif", strings.NewReader(testProfile))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSynthesizeInvalidScale(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/sections?px_per_meter=zero", strings.NewReader(testProfile))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream-id", got)
	}
}
