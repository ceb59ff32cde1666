package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/config"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/api"
)

func testConfig() config.Config {
	return config.Config{
		Addr:                "127.0.0.1:0",
		Environment:         "test",
		DatabaseDriver:      config.DriverSQLite,
		DatabaseURL:         "sqlite://file::memory:",
		DBMaxConns:          1,
		RunMigrations:       true,
		AssembleConcurrency: 2,
		MaxBodyBytes:        4096,
		RateLimitPerMinute:  2,
		CORSAllowedOrigins:  []string{"*"},
		MetricsEnabled:      true,
		ShutdownTimeout:     time.Second,
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, api.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var env api.Envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.DatabaseURL = ""
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestHealthAndReady(t *testing.T) {
	app := newTestApp(t)

	rec, env := get(t, app.Router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "UP", env.Status)
	assert.Equal(t, healthMessage, env.Message)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, env = get(t, app.Router, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, api.StatusSuccess, env.Status)
}

func TestReadyFailsWhenStoreIsClosed(t *testing.T) {
	app := newTestApp(t)
	app.DB.Close()

	rec, env := get(t, app.Router, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database not ready", env.Message)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec, env := get(t, app.Router, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.StatusError, env.Status)
	assert.Equal(t, "Route /api/nothing-here not found", env.Message)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	get(t, app.Router, "/api/employees")

	rec, _ := get(t, app.Router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `employee_onboarding_http_requests_total{method="GET",route="/api/employees`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMetricsCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	app, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	rec, _ := get(t, app.Router, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMutationsAreRateLimited(t *testing.T) {
	app := newTestApp(t)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/employees/ghost@example.com", nil)
		app.Router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNotFound, http.StatusNotFound, http.StatusTooManyRequests}, codes)

	rec, _ := get(t, app.Router, "/api/employees")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	app := newTestApp(t)

	body := `{"personalDetails": {"first_name": "` + strings.Repeat("a", 5000) + `"}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
