package bootstrap

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/testutil"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		LatencyMin:          200 * time.Millisecond,
		LatencyMax:          500 * time.Millisecond,
		DefaultMaxStudents:  10,
		DefaultDemoDuration: time.Hour,
		DefaultPageSize:     10,
		MongoDatabase:       "academy_hub",
		AuditLogLifecycle:   "all",
		AuditLogAdmin:       "log",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"latency inverted", func(c *AppConfig) { c.LatencyMin = time.Second }, "exceeds latency_max"},
		{"latency disabled", func(c *AppConfig) { c.LatencyMin, c.LatencyMax = 0, 0 }, ""},
		{"zero capacity", func(c *AppConfig) { c.DefaultMaxStudents = 0 }, "default_max_students"},
		{"zero demo duration", func(c *AppConfig) { c.DefaultDemoDuration = 0 }, "default_demo_duration"},
		{"zero page size", func(c *AppConfig) { c.DefaultPageSize = 0 }, "default_page_size"},
		{"bad admin id", func(c *AppConfig) { c.DefaultAdminID = "admin" }, "default_admin_id"},
		{"good admin id", func(c *AppConfig) { c.DefaultAdminID = "65f1c2a4b3d2e1f0a9b8c7d6" }, ""},
		{"bad audit mode", func(c *AppConfig) { c.AuditLogAdmin = "everything" }, "audit_log_admin"},
		{"bad mongo uri", func(c *AppConfig) { c.MongoURI = "postgres://localhost" }, "MongoDB URI"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(nil, cfg, testLogger())
			switch {
			case tt.wantErr == "" && err != nil:
				t.Errorf("ValidateConfig: unexpected error %v", err)
			case tt.wantErr != "" && err == nil:
				t.Errorf("ValidateConfig: got nil, want error containing %q", tt.wantErr)
			case tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr):
				t.Errorf("ValidateConfig: got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConnectDB_WithoutMongo(t *testing.T) {
	cfg := validConfig()
	cfg.LatencyMin, cfg.LatencyMax = 0, 0
	cfg.MetricsEnabled = true

	deps, err := ConnectDB(context.Background(), nil, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.MongoClient != nil || deps.AuditStore != nil {
		t.Error("expected no MongoDB dependencies without mongo_uri")
	}
	if deps.Service == nil || deps.Metrics == nil {
		t.Fatal("expected Service and Metrics to be built")
	}
	if err := EnsureSchema(context.Background(), nil, cfg, deps, testLogger()); err != nil {
		t.Errorf("EnsureSchema without MongoDB: %v", err)
	}
	if err := Shutdown(context.Background(), nil, cfg, deps, testLogger()); err != nil {
		t.Errorf("Shutdown without MongoDB: %v", err)
	}
}

func TestStartup_SeedsOnce(t *testing.T) {
	cfg := validConfig()
	cfg.LatencyMin, cfg.LatencyMax = 0, 0
	cfg.SeedDemoData = true

	deps, err := ConnectDB(context.Background(), nil, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Startup(context.Background(), nil, cfg, deps, testLogger()); err != nil {
			t.Fatalf("Startup #%d: %v", i+1, err)
		}
	}
	c := deps.Service.Counts()
	if c.Coaches != 3 || c.Demos != 6 || c.Batches != 2 {
		t.Errorf("seeded counts: got %d coaches, %d demos, %d batches; want 3, 6, 2", c.Coaches, c.Demos, c.Batches)
	}
}

func TestRouter(t *testing.T) {
	cfg := validConfig()
	cfg.LatencyMin, cfg.LatencyMax = 0, 0
	cfg.MetricsEnabled = true

	deps, err := ConnectDB(context.Background(), nil, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	h, err := BuildHandler(nil, cfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}

	tests := []struct {
		method, target string
		want           int
		contains       string
	}{
		{http.MethodGet, "/health", http.StatusOK, `"database":"not_configured"`},
		{http.MethodGet, "/demos", http.StatusOK, `"rows":[]`},
		{http.MethodGet, "/batches", http.StatusOK, `"total_count":0`},
		{http.MethodGet, "/students", http.StatusOK, `"rows"`},
		{http.MethodGet, "/coaches", http.StatusOK, `"rows"`},
		{http.MethodGet, "/counts", http.StatusOK, `"demos_by_status"`},
		{http.MethodGet, "/audit", http.StatusServiceUnavailable, "mongo_uri"},
		{http.MethodGet, "/nowhere", http.StatusNotFound, "not_found"},
		{http.MethodPut, "/demos", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/metrics", http.StatusOK, "academyhub_http_requests_total"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.ServeHTTP(rec, testutil.NewRequest(tt.method, tt.target))
			rec.AssertStatus(t, tt.want)
			if tt.contains != "" {
				rec.AssertContains(t, tt.contains)
			}
		})
	}
}

func TestRouter_MetricsDisabled(t *testing.T) {
	deps := DBDeps{Service: testutil.NewFixtures(t).Service()}
	rec := testutil.NewRecorder()
	newRouter(validConfig(), deps, testLogger()).ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/metrics"))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestEnsureSchema_Mongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db, AuditStore: audit.New(db)}
	if err := EnsureSchema(context.Background(), nil, validConfig(), deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
}
