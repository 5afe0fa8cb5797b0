package trip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trulytravels/internal/middleware"
	"trulytravels/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(newTestService(fallbackMode(), store))
	h.RegisterRoutes(router)
	router.GET("/healthz", h.HealthHandler)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const estimateBody = `{
	"origin": "Delhi",
	"destination": "Mumbai",
	"startDate": "2025-12-15",
	"endDate": "2025-12-20",
	"travelers": "2",
	"accommodation": "mid"
}`

func TestEstimateHandler(t *testing.T) {
	router := setupRouter(NewCacheStore(cache.NewMemoryCache()))

	w := doJSON(router, http.MethodPost, "/api/estimate", estimateBody)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "DEL", got["originCode"])
	assert.Equal(t, "BOM", got["destinationCode"])
	assert.Equal(t, float64(32500), got["totalCost"])
	assert.Equal(t, float64(2), got["travelers"])

	breakdown := got["breakdown"].(map[string]any)
	assert.Equal(t, "fallback", breakdown["flightSource"])
	assert.Equal(t, float64(12000), breakdown["transportation"])

	meta := got["meta"].(map[string]any)
	assert.Equal(t, float64(5), meta["nights"])
	assert.Equal(t, float64(1), meta["roomsNeeded"])
}

func TestEstimateHandler_BadRequests(t *testing.T) {
	router := setupRouter(NewCacheStore(cache.NewMemoryCache()))

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"origin": `},
		{"missing origin", `{"destination": "Goa"}`},
		{"blank destination", `{"origin": "Delhi", "destination": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/estimate", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), string(ErrorCodeValidation))
		})
	}
}

func TestEstimateHandler_StoreFailureHidesDetails(t *testing.T) {
	store := new(MockStore)
	store.On("Append", mock.Anything, mock.Anything).Return(false, errors.New("sqlite: disk I/O error"))
	router := setupRouter(store)

	w := doJSON(router, http.MethodPost, "/api/estimate", estimateBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(ErrorCodeInternalFailure))
	assert.NotContains(t, w.Body.String(), "disk I/O")
}

func TestTripsHandlers_SaveAndList(t *testing.T) {
	router := setupRouter(NewCacheStore(cache.NewMemoryCache()))

	w := doJSON(router, http.MethodGet, "/api/trips", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	first := doJSON(router, http.MethodPost, "/api/estimate", estimateBody)
	require.Equal(t, http.StatusOK, first.Code)

	trip, err := json.Marshal(sampleTrip("replayed-1", 8000))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		w = doJSON(router, http.MethodPost, "/api/trips", string(trip))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"saved"}`, w.Body.String())
	}

	w = doJSON(router, http.MethodGet, "/api/trips", "")
	require.Equal(t, http.StatusOK, w.Code)

	var trips []Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trips))
	require.Len(t, trips, 2)
	assert.Equal(t, "replayed-1", trips[0].ID)
	assert.Equal(t, int64(32500), trips[1].TotalCost)
}

func TestSaveTripHandler_BadJSON(t *testing.T) {
	router := setupRouter(NewCacheStore(cache.NewMemoryCache()))

	w := doJSON(router, http.MethodPost, "/api/trips", `[1,2`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveTripHandler_NegativeBreakdown(t *testing.T) {
	store := NewCacheStore(cache.NewMemoryCache())
	router := setupRouter(store)

	trip := sampleTrip("negative-1", 8000)
	trip.Breakdown.Accommodation = -2500
	body, err := json.Marshal(trip)
	require.NoError(t, err)

	w := doJSON(router, http.MethodPost, "/api/trips", string(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	trips, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestListTripsHandler_StoreFailure(t *testing.T) {
	store := new(MockStore)
	store.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
	router := setupRouter(store)

	w := doJSON(router, http.MethodGet, "/api/trips", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestExportPDFHandler(t *testing.T) {
	router := setupRouter(NewCacheStore(cache.NewMemoryCache()))
	est := doJSON(router, http.MethodPost, "/api/estimate", estimateBody)
	require.Equal(t, http.StatusOK, est.Code)

	w := doJSON(router, http.MethodPost, "/api/export-pdf", est.Body.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=trip-summary.pdf", w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestExportPDFHandler_BadJSON(t *testing.T) {
	router := setupRouter(NewCacheStore(cache.NewMemoryCache()))

	w := doJSON(router, http.MethodPost, "/api/export-pdf", `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		w := doJSON(setupRouter(NewCacheStore(cache.NewMemoryCache())), http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("store down", func(t *testing.T) {
		store := new(MockStore)
		store.On("Ping", mock.Anything).Return(errors.New("down"))

		w := doJSON(setupRouter(store), http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestEstimateHandler_BodyTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.MaxBodySize(64))
	NewHandler(newTestService(fallbackMode(), NewCacheStore(cache.NewMemoryCache()))).RegisterRoutes(router)

	w := doJSON(router, http.MethodPost, "/api/estimate", estimateBody)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
