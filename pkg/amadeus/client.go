package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"trulytravels/internal/pricing"
	"trulytravels/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenPath        = "/v1/security/oauth2/token"
	flightOffersPath = "/v2/shopping/flight-offers"
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Client talks to the flight offers search API. Tokens are fetched with the
// client-credentials grant and reused until they expire.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Client
}

func NewClient(httpClient *http.Client, cfg Config, log logger.Client) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	// token requests go through the same bounded client as searches
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	authed := cc.Client(tokenCtx)
	authed.Timeout = httpClient.Timeout

	return &Client{
		httpClient: authed,
		baseURL:    baseURL,
		logger:     log,
	}
}

type flightOffersResponse struct {
	Data   []flightOffer `json:"data"`
	Errors []apiIssue    `json:"errors,omitempty"`
}

type flightOffer struct {
	ID    string     `json:"id"`
	Price offerPrice `json:"price"`
}

type offerPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

type apiIssue struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// APIError is returned for any non-200 answer from the provider.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("amadeus: external api returned non-200 status: %d", e.StatusCode)
	}
	return fmt.Sprintf("amadeus: external api returned %d: %s %s", e.StatusCode, e.Title, e.Detail)
}

// SearchOffers implements pricing.OfferSearcher.
func (c *Client) SearchOffers(ctx context.Context, q pricing.OfferQuery) ([]pricing.Offer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(max(q.Adults, 1)))
	if q.Currency != "" {
		params.Set("currencyCode", q.Currency)
	}
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}

	fullURL := c.baseURL + flightOffersPath + "?" + params.Encode()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: failed to build request: %w", err)
	}
	r.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("amadeus: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var apiResp flightOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("amadeus: failed to decode json response: %w", err)
	}

	return mapOffers(apiResp.Data), nil
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var parsed flightOffersResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		apiErr.Title = parsed.Errors[0].Title
		apiErr.Detail = parsed.Errors[0].Detail
	}

	c.logger.Debug("amadeus error response",
		logger.Field{Key: "status", Value: resp.StatusCode},
		logger.Field{Key: "title", Value: apiErr.Title},
	)
	return apiErr
}

func mapOffers(data []flightOffer) []pricing.Offer {
	mapped := make([]pricing.Offer, 0, len(data))
	for _, o := range data {
		mapped = append(mapped, pricing.Offer{
			ID:       o.ID,
			Total:    o.Price.Total,
			Currency: o.Price.Currency,
		})
	}
	return mapped
}
