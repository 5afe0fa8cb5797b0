package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"trulytravels/internal/pricing"
	"trulytravels/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	tokenCalls  atomic.Int32
	searchCalls atomic.Int32
	lastQuery   atomic.Value
	offersBody  string
	offersCode  int
	tokenCode   int
}

func (f *fakeProvider) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id-123", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-456", r.PostForm.Get("client_secret"))

		if f.tokenCode != 0 {
			w.WriteHeader(f.tokenCode)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-abc",
			"token_type":   "Bearer",
			"expires_in":   1799,
		})
	})
	mux.HandleFunc(flightOffersPath, func(w http.ResponseWriter, r *http.Request) {
		f.searchCalls.Add(1)
		f.lastQuery.Store(r.URL.Query())
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

		code := f.offersCode
		if code == 0 {
			code = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(f.offersBody))
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeProvider) *Client {
	t.Helper()

	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	return NewClient(&http.Client{Timeout: 2 * time.Second}, Config{
		BaseURL:      srv.URL + "/",
		ClientID:     "id-123",
		ClientSecret: "secret-456",
	}, logger.NewNop())
}

var query = pricing.OfferQuery{
	Origin:        "DEL",
	Destination:   "BOM",
	DepartureDate: "2025-12-15",
	Currency:      "INR",
	Adults:        1,
	Max:           5,
}

func TestClient_SearchOffers(t *testing.T) {
	f := &fakeProvider{offersBody: `{
		"meta": {"count": 2},
		"data": [
			{"id": "1", "price": {"currency": "INR", "total": "5210.00", "grandTotal": "5210.00"}},
			{"id": "2", "price": {"currency": "INR", "total": "4870.55", "grandTotal": "4870.55"}}
		]
	}`}
	c := newTestClient(t, f)

	offers, err := c.SearchOffers(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, []pricing.Offer{
		{ID: "1", Total: "5210.00", Currency: "INR"},
		{ID: "2", Total: "4870.55", Currency: "INR"},
	}, offers)

	q := f.lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"DEL"}, q["originLocationCode"])
	assert.Equal(t, []string{"BOM"}, q["destinationLocationCode"])
	assert.Equal(t, []string{"2025-12-15"}, q["departureDate"])
	assert.Equal(t, []string{"1"}, q["adults"])
	assert.Equal(t, []string{"INR"}, q["currencyCode"])
	assert.Equal(t, []string{"5"}, q["max"])
}

func TestClient_ReusesToken(t *testing.T) {
	f := &fakeProvider{offersBody: `{"data": []}`}
	c := newTestClient(t, f)

	for i := 0; i < 3; i++ {
		_, err := c.SearchOffers(context.Background(), query)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), f.tokenCalls.Load())
	assert.Equal(t, int32(3), f.searchCalls.Load())
}

func TestClient_EmptyData(t *testing.T) {
	c := newTestClient(t, &fakeProvider{offersBody: `{"data": []}`})

	offers, err := c.SearchOffers(context.Background(), query)

	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestClient_APIError(t *testing.T) {
	f := &fakeProvider{
		offersCode: http.StatusBadRequest,
		offersBody: `{"errors": [{"status": 400, "code": 477, "title": "INVALID FORMAT", "detail": "departureDate"}]}`,
	}
	c := newTestClient(t, f)

	_, err := c.SearchOffers(context.Background(), query)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID FORMAT", apiErr.Title)
	assert.Contains(t, err.Error(), "departureDate")
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, &fakeProvider{offersBody: `{"data": [`})

	_, err := c.SearchOffers(context.Background(), query)

	assert.ErrorContains(t, err, "failed to decode")
}

func TestClient_TokenFailure(t *testing.T) {
	f := &fakeProvider{tokenCode: http.StatusUnauthorized, offersBody: `{"data": []}`}
	c := newTestClient(t, f)

	_, err := c.SearchOffers(context.Background(), query)

	assert.Error(t, err)
	assert.Equal(t, int32(0), f.searchCalls.Load())
}

func TestClient_FeedsLivePriceSource(t *testing.T) {
	f := &fakeProvider{offersBody: `{"data": [
		{"id": "1", "price": {"currency": "INR", "total": "7100.20"}},
		{"id": "2", "price": {"currency": "INR", "total": "6890.70"}}
	]}`}
	src := pricing.NewPriceSource(newTestClient(t, f), pricing.SourceConfig{FallbackPrice: 6000}, logger.NewNop())

	q := src.Quote(context.Background(), "DEL", "BOM", "2025-12-15")

	assert.Equal(t, pricing.Quote{Amount: 6891, Source: pricing.SourceLive}, q)
}
