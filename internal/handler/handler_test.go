package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vsrin/en-app-analytics/internal/config"
	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/handler"
	"github.com/vsrin/en-app-analytics/internal/logger"
	"github.com/vsrin/en-app-analytics/internal/storage"
)

const (
	testAppID = "loss-run-intelligence"
	testToday = "2025-06-15"
)

func testClock() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

func testConfig(debug bool) *config.Config {
	cfg := &config.Config{Apps: config.DefaultApps()}
	cfg.Service.Debug = debug
	return cfg
}

func setupRouter(store *mockStore, debug bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handler.NewAnalyticsHandler(store, testConfig(debug), logger.NewNop()).
		WithClock(testClock)

	router := gin.New()
	router.GET("/apps", h.Apps)
	router.GET("/apps/:appId/system-health", h.SystemHealth)
	router.GET("/apps/:appId/users", h.Users)
	router.GET("/apps/:appId/batches", h.Batches)
	router.GET("/apps/:appId/batches/:batchId", h.BatchDetail)
	router.GET("/apps/:appId/failures", h.Failures)
	router.GET("/apps/:appId/products", h.Products)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestApps(t *testing.T) {
	store := new(mockStore)
	store.On("AppStats", mock.Anything, testToday).
		Return(&domain.AppStats{TotalUsers: 12, ActiveToday: 3, TotalBatches: 87}, nil)

	w, body := doRequest(t, setupRouter(store, false), "/apps")

	assert.Equal(t, http.StatusOK, w.Code)
	apps := body["apps"].([]any)
	require.Len(t, apps, 1)

	app := apps[0].(map[string]any)
	assert.Equal(t, testAppID, app["app_id"])
	assert.Equal(t, "active", app["status"])

	stats := app["stats"].(map[string]any)
	assert.Equal(t, float64(12), stats["total_users"])
	assert.Equal(t, float64(87), stats["total_batches"])
	store.AssertExpectations(t)
}

func TestAppsStatsFailureDegrades(t *testing.T) {
	store := new(mockStore)
	store.On("AppStats", mock.Anything, testToday).
		Return(nil, errors.New("connection reset"))

	w, body := doRequest(t, setupRouter(store, false), "/apps")

	assert.Equal(t, http.StatusOK, w.Code)
	app := body["apps"].([]any)[0].(map[string]any)
	assert.NotContains(t, app, "stats")
}

func TestUnknownAppReturns404(t *testing.T) {
	store := new(mockStore)
	router := setupRouter(store, false)

	paths := []string{
		"/apps/no-such-app/system-health",
		"/apps/no-such-app/users",
		"/apps/no-such-app/batches",
		"/apps/no-such-app/batches/batch-1",
		"/apps/no-such-app/failures",
		"/apps/no-such-app/products",
	}
	for _, path := range paths {
		w, body := doRequest(t, router, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "App not found", body["error"], path)
	}
	store.AssertNotCalled(t, "Users")
	store.AssertNotCalled(t, "Batches")
}

func TestSystemHealth(t *testing.T) {
	store := new(mockStore)
	store.On("HealthCurrent", mock.Anything, testToday).
		Return(&domain.DailyHealthRecord{Date: testToday, TotalBatches: 4, MatchRate: 92.5}, nil)
	store.On("HealthTrend", mock.Anything, "2025-06-08").
		Return([]domain.DailyHealthRecord{
			{Date: "2025-06-13", TotalBatches: 2, MatchRate: 90},
			{Date: "2025-06-14", TotalBatches: 3, MatchRate: 91},
		}, nil)

	w, body := doRequest(t, setupRouter(store, false), "/apps/"+testAppID+"/system-health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testAppID, body["app_id"])

	current := body["current"].(map[string]any)
	assert.Equal(t, testToday, current["date"])
	assert.Equal(t, float64(4), current["total_batches"])

	trend := body["trend"].([]any)
	require.Len(t, trend, 2)
	assert.Equal(t, "2025-06-13", trend[0].(map[string]any)["date"])
	store.AssertExpectations(t)
}

func TestSystemHealthMissingDayZeroFills(t *testing.T) {
	store := new(mockStore)
	store.On("HealthCurrent", mock.Anything, testToday).
		Return(nil, storage.ErrNotFound)
	store.On("HealthTrend", mock.Anything, "2025-06-08").
		Return([]domain.DailyHealthRecord{{Date: "2025-06-12", TotalBatches: 5}}, nil)

	w, body := doRequest(t, setupRouter(store, false), "/apps/"+testAppID+"/system-health")

	assert.Equal(t, http.StatusOK, w.Code)

	current := body["current"].(map[string]any)
	assert.Equal(t, testToday, current["date"])
	assert.Equal(t, float64(0), current["total_batches"])
	assert.Equal(t, float64(0), current["match_rate"])

	trend := body["trend"].([]any)
	require.Len(t, trend, 1)
}

func TestUsers(t *testing.T) {
	store := new(mockStore)
	store.On("Users", mock.Anything, mock.AnythingOfType("query.Descriptor")).
		Return([]domain.UserRollup{
			{
				Username:      "jdoe",
				Organization:  "Acme",
				TotalBatches:  9,
				MatchRate:     88.4,
				LastActivity:  time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC),
				FirstActivity: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
			},
		}, int64(1), nil)

	w, body := doRequest(t, setupRouter(store, false), "/apps/"+testAppID+"/users?sort=batches")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total_count"])

	users := body["users"].([]any)
	require.Len(t, users, 1)
	user := users[0].(map[string]any)
	assert.Equal(t, "jdoe", user["username"])
	assert.Equal(t, "2025-01-02T09:00:00Z", user["first_request"])
	assert.Equal(t, "2025-06-14T16:00:00Z", user["last_request"])
}

func TestBatchesPagination(t *testing.T) {
	store := new(mockStore)
	store.On("Batches", mock.Anything, mock.AnythingOfType("query.Descriptor")).
		Return([]domain.Batch{
			{BatchID: "b-11", Username: "jdoe", Status: "completed"},
		}, int64(23), nil)

	w, body := doRequest(t, setupRouter(store, false),
		"/apps/"+testAppID+"/batches?limit=5&skip=10")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(23), body["total_count"])
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, float64(5), body["pages"])

	batches := body["batches"].([]any)
	require.Len(t, batches, 1)
	assert.NotContains(t, batches[0].(map[string]any), "policies")
}

func TestBatchDetail(t *testing.T) {
	seconds := 42.5
	store := new(mockStore)
	store.On("BatchByID", mock.Anything, "b-7").
		Return(&domain.Batch{
			BatchID:  "b-7",
			Username: "jdoe",
			Status:   "completed",
			Products: []string{"GL"},
			Policies: []domain.Policy{
				{
					Appnum: "A-1",
					Status: "matched",
					Stats:  domain.PolicyStats{RawClaims: 10, Matched: 9, Products: []string{"GL"}},
					Timing: &domain.PolicyTiming{DurationSeconds: seconds},
				},
				{
					Appnum: "A-2",
					Status: "matched",
					Stats:  domain.PolicyStats{RawClaims: 4, Matched: 4},
				},
			},
		}, nil)

	w, body := doRequest(t, setupRouter(store, false), "/apps/"+testAppID+"/batches/b-7")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b-7", body["batch_id"])

	policies := body["policies"].([]any)
	require.Len(t, policies, 2)
	assert.Equal(t, seconds, policies[0].(map[string]any)["processing_time"])
	assert.NotContains(t, policies[1].(map[string]any), "processing_time")
}

func TestBatchDetailNotFound(t *testing.T) {
	store := new(mockStore)
	store.On("BatchByID", mock.Anything, "missing").
		Return(nil, storage.ErrNotFound)

	w, body := doRequest(t, setupRouter(store, false), "/apps/"+testAppID+"/batches/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Batch not found", body["error"])
}

func TestStoreErrorHidesDetailByDefault(t *testing.T) {
	store := new(mockStore)
	store.On("Products", mock.Anything).
		Return(nil, errors.New("server selection timeout"))

	w, body := doRequest(t, setupRouter(store, false), "/apps/"+testAppID+"/products")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch product breakdown", body["error"])
	assert.NotContains(t, body, "message")
}

func TestStoreErrorExposesDetailInDebug(t *testing.T) {
	store := new(mockStore)
	store.On("Products", mock.Anything).
		Return(nil, errors.New("server selection timeout"))

	w, body := doRequest(t, setupRouter(store, true), "/apps/"+testAppID+"/products")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server selection timeout", body["message"])
}

func TestProducts(t *testing.T) {
	store := new(mockStore)
	store.On("Products", mock.Anything).
		Return([]domain.ProductRollup{
			{Product: "GL", PoliciesCount: 40, BatchesCount: 12},
			{Product: "WC", PoliciesCount: 25, BatchesCount: 9},
		}, nil)

	w, body := doRequest(t, setupRouter(store, false), "/apps/"+testAppID+"/products")

	assert.Equal(t, http.StatusOK, w.Code)
	products := body["products"].([]any)
	require.Len(t, products, 2)
	assert.Equal(t, "GL", products[0].(map[string]any)["product"])
}
