package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pentu/internal/results"
	"pentu/internal/testutil"
	"pentu/internal/tools"
)

func newTestServer(t *testing.T) (*httptest.Server, *results.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := &results.Store{Dir: t.TempDir(), Now: func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local) }}
	reg := &tools.Registry{Tools: tools.Tools, LookPath: testutil.FakeLookPath(map[string]string{"nmap": "/usr/bin/nmap"})}
	s := &Server{Reports: store, Tools: reg}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	return res, string(b)
}

func TestHealthAndVersion(t *testing.T) {
	ts, _ := newTestServer(t)
	res, body := get(t, ts.URL+"/api/health")
	if res.StatusCode != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Fatalf("health: %d %s", res.StatusCode, body)
	}
	res, body = get(t, ts.URL+"/api/version")
	if res.StatusCode != http.StatusOK || !strings.Contains(body, "version") {
		t.Fatalf("version: %d %s", res.StatusCode, body)
	}
}

func TestResultsEndpoints(t *testing.T) {
	ts, store := newTestServer(t)
	rf, err := store.Save("nmap", "10.0.0.1", "scan output")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("nikto", "example.com", "x"); err != nil {
		t.Fatal(err)
	}

	_, body := get(t, ts.URL+"/api/results")
	var items []results.ReportFile
	if err := json.Unmarshal([]byte(body), &items); err != nil || len(items) != 2 {
		t.Fatalf("list: %v %s", err, body)
	}

	_, body = get(t, ts.URL+"/api/results?q=nikto")
	items = nil
	if err := json.Unmarshal([]byte(body), &items); err != nil || len(items) != 1 || items[0].Tool != "nikto" {
		t.Fatalf("filtered list: %v %s", err, body)
	}

	res, body := get(t, ts.URL+"/api/results/"+rf.Name)
	if res.StatusCode != http.StatusOK || !strings.HasSuffix(body, "scan output") {
		t.Fatalf("read: %d %q", res.StatusCode, body)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}

	_, body = get(t, ts.URL+"/api/results/"+rf.Name+"?format=json")
	var detail struct {
		Report  results.ReportFile `json:"report"`
		Content string             `json:"content"`
	}
	if err := json.Unmarshal([]byte(body), &detail); err != nil || detail.Report.Target != "10.0.0.1" {
		t.Fatalf("json detail: %v %s", err, body)
	}

	res, _ = get(t, ts.URL+"/api/results/missing.txt")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestToolsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	_, body := get(t, ts.URL+"/api/tools")
	var entries []tools.ToolEntry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != len(tools.Tools) {
		t.Fatalf("expected %d entries, got %d", len(tools.Tools), len(entries))
	}
	for _, e := range entries {
		if e.Installed != (e.Name == "nmap") {
			t.Fatalf("unexpected entry %+v", e)
		}
	}
}

func TestNoRunEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	res, err := http.Post(ts.URL+"/api/run", "application/json", strings.NewReader(`{"command":"id"}`))
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for run, got %d", res.StatusCode)
	}
}

func TestIndexPage(t *testing.T) {
	ts, _ := newTestServer(t)
	res, body := get(t, ts.URL+"/")
	if res.StatusCode != http.StatusOK || !strings.Contains(body, "PENTU results") {
		t.Fatalf("index: %d", res.StatusCode)
	}
}
