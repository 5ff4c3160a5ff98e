package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/metrics"
	"crisiscorner/internal/app/middleware"
	"crisiscorner/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		PageSize: 6,
		CORS:     config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()

	router, h, err := NewRouter(RouterDeps{
		Config:  cfg,
		Logger:  logger,
		Store:   repository.NewMemoryStore(),
		Metrics: metrics.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, h)
	return router
}

func TestNewRouter_Middleware(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/request", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	assert.JSONEq(t, `{"message":"Success","data":[],"pagination":{"currentPage":1,"totalPages":0,"totalCount":0,"pageSize":6}}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "crisiscorner_http_requests_total")
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/request/batch", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestNewRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Rate: "2-M"}
	router := newTestRouter(t, cfg)

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/request/status-counts", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRouter_InvalidRate(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Rate: "often"}
	logger, _ := test.NewNullLogger()

	_, _, err := NewRouter(RouterDeps{
		Config:  cfg,
		Logger:  logger,
		Store:   repository.NewMemoryStore(),
		Metrics: metrics.New(),
	})
	assert.ErrorContains(t, err, `parse rate limit "often"`)
}
