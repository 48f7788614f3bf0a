package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/sshmon/internal/dataset"
	"github.com/tinytelemetry/sshmon/internal/duckdb"
	"github.com/tinytelemetry/sshmon/internal/model"
	"github.com/tinytelemetry/sshmon/internal/timeseries"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func structuredDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	columns := []string{model.ColEventID, model.ColSourceIP, model.ColUser, model.ColTimestamp}
	rows := []model.Record{
		{model.ColEventID: "E1", model.ColSourceIP: "1.2.3.4", model.ColUser: "root", model.ColTimestamp: "Jun 14 00:10:00"},
		{model.ColEventID: "E2", model.ColSourceIP: "5.6.7.8", model.ColUser: "admin", model.ColTimestamp: "Jun 14 01:30:00"},
		{model.ColEventID: "E1", model.ColSourceIP: "1.2.3.4", model.ColUser: "root", model.ColTimestamp: "Jun 14 02:45:00"},
	}
	return &dataset.Dataset{
		Mode:   dataset.ModeStructured,
		Set:    model.NewRecordSet(columns, rows),
		Source: "test.csv",
	}
}

func newTestServer(t *testing.T, ds *dataset.Dataset, withMirror bool) *gin.Engine {
	t.Helper()

	parser := timeseries.NewParser(0)

	var store model.SchemaQuerier
	if withMirror {
		s, err := duckdb.NewStore()
		if err != nil {
			t.Fatalf("NewStore: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		if err := s.LoadRecordSet(ds.Set, parser); err != nil {
			t.Fatalf("LoadRecordSet: %v", err)
		}
		store = s
	}

	srv := NewServer("", ds, parser, store)
	srv.startTime = time.Now()

	r := gin.New()
	r.Use(gin.Recovery())
	srv.registerRoutes(r)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %s: %v; body: %s", path, err, w.Body.String())
	}
	return w, body
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), false)

	w, body := doGet(t, r, "/api/health")
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["event_count"] != float64(3) {
		t.Errorf("event_count = %v, want 3", body["event_count"])
	}
}

func TestDatasetEndpoint(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), false)

	w, body := doGet(t, r, "/api/dataset")
	if w.Code != http.StatusOK {
		t.Fatalf("dataset status = %d, want %d", w.Code, http.StatusOK)
	}
	if body["mode"] != string(dataset.ModeStructured) {
		t.Errorf("mode = %v, want structured", body["mode"])
	}

	ids, ok := body["event_ids"].([]interface{})
	if !ok || len(ids) != 2 {
		t.Errorf("event_ids = %v, want 2 distinct values", body["event_ids"])
	}
	ips, ok := body["source_ips"].([]interface{})
	if !ok || len(ips) != 2 {
		t.Errorf("source_ips = %v, want 2 distinct values", body["source_ips"])
	}
}

func TestSummaryEndpoint(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), false)

	w, body := doGet(t, r, "/api/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d, want %d", w.Code, http.StatusOK)
	}
	if body["row_count"] != float64(3) {
		t.Errorf("row_count = %v, want 3", body["row_count"])
	}
	if body["no_results"] != false {
		t.Errorf("no_results = %v, want false", body["no_results"])
	}

	metrics, ok := body["metrics"].(map[string]interface{})
	if !ok {
		t.Fatalf("metrics missing: %v", body)
	}
	if metrics["unique_ips"] != float64(2) {
		t.Errorf("unique_ips = %v, want 2", metrics["unique_ips"])
	}
}

func TestSummaryEndpoint_Filtered(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), false)

	w, body := doGet(t, r, "/api/summary?event_id=E1&source_ip=1.2.3.4")
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d, want %d", w.Code, http.StatusOK)
	}
	if body["row_count"] != float64(2) {
		t.Errorf("filtered row_count = %v, want 2", body["row_count"])
	}
}

func TestSummaryEndpoint_NoResults(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), false)

	_, body := doGet(t, r, "/api/summary?event_id=nothing-matches")
	if body["no_results"] != true {
		t.Errorf("no_results = %v, want true", body["no_results"])
	}
	if body["no_temporal_data"] != true {
		t.Errorf("no_temporal_data = %v, want true", body["no_temporal_data"])
	}
}

func TestEventsEndpoint_Pagination(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), false)

	_, body := doGet(t, r, "/api/events?limit=2&offset=1")
	if body["row_count"] != float64(3) {
		t.Errorf("row_count = %v, want 3", body["row_count"])
	}
	rows, ok := body["rows"].([]interface{})
	if !ok || len(rows) != 2 {
		t.Fatalf("rows = %v, want 2 entries", body["rows"])
	}

	// Offset beyond the data is clamped, not an error.
	w, body := doGet(t, r, "/api/events?offset=99")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if rows, _ := body["rows"].([]interface{}); len(rows) != 0 {
		t.Errorf("rows past the end = %v, want empty", body["rows"])
	}
}

func TestLinesEndpoint_UnstructuredOnly(t *testing.T) {
	structured := newTestServer(t, structuredDataset(t), false)
	req := httptest.NewRequest(http.MethodGet, "/api/lines", nil)
	w := httptest.NewRecorder()
	structured.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("lines on structured = %d, want %d", w.Code, http.StatusBadRequest)
	}

	raw := newTestServer(t, &dataset.Dataset{
		Mode:   dataset.ModeUnstructured,
		Lines:  []string{"line one", "line two", "line three"},
		Source: "auth.log",
	}, false)

	_, body := doGet(t, raw, "/api/lines?limit=2")
	if body["line_count"] != float64(3) {
		t.Errorf("line_count = %v, want 3", body["line_count"])
	}
	if lines, _ := body["lines"].([]interface{}); len(lines) != 2 {
		t.Errorf("lines = %v, want 2 entries", body["lines"])
	}
}

func TestAnalyticEndpointsRejectUnstructured(t *testing.T) {
	r := newTestServer(t, &dataset.Dataset{
		Mode:  dataset.ModeUnstructured,
		Lines: []string{"raw"},
	}, false)

	for _, path := range []string{"/api/summary", "/api/events"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s on unstructured = %d, want %d", path, w.Code, http.StatusBadRequest)
		}
	}
}

func TestQueryEndpoint(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), true)

	body := `{"sql": "SELECT COUNT(*) AS cnt FROM events"}`
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("query status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal query response: %v", err)
	}
	if resp["row_count"] != float64(1) {
		t.Errorf("row_count = %v, want 1", resp["row_count"])
	}
}

func TestQueryEndpoint_RejectsWrite(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), true)

	body := `{"sql": "DROP TABLE events"}`
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("write query status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestQueryEndpoint_NoMirror(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), false)

	body := `{"sql": "SELECT 1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("query without mirror = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSchemaEndpoint(t *testing.T) {
	r := newTestServer(t, structuredDataset(t), true)

	w, body := doGet(t, r, "/api/schema")
	if w.Code != http.StatusOK {
		t.Fatalf("schema status = %d, want %d", w.Code, http.StatusOK)
	}
	counts, ok := body["row_counts"].(map[string]interface{})
	if !ok || counts["events"] != float64(3) {
		t.Errorf("row_counts = %v, want events=3", body["row_counts"])
	}
}
