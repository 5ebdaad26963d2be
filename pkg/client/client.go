// Package client talks to the two dashboard backends: the weather
// service and the parking service. Every call issues exactly one HTTP
// request and reports backend-declared failures as *APIError, leaving
// transport failures as ordinary errors; ErrorMessage folds both into
// the text a user should see.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/downlabs/citydash/pkg/models"
)

// Default endpoints of the local development backends.
const (
	DefaultWeatherURL = "http://localhost:5000"
	DefaultParkingURL = "http://localhost:5001"

	// DefaultTimeout bounds every request so a dead backend cannot pin
	// a surface in its loading state forever.
	DefaultTimeout = 10 * time.Second
)

// Client is a thin HTTP client over both backends. It is safe for
// concurrent use.
type Client struct {
	weather string
	parking string
	http    *http.Client
}

// New returns a Client for the given base URLs. Empty URLs fall back to
// the local development defaults, and a non-positive timeout to
// DefaultTimeout.
func New(weatherURL, parkingURL string, timeout time.Duration) *Client {
	if weatherURL == "" {
		weatherURL = DefaultWeatherURL
	}
	if parkingURL == "" {
		parkingURL = DefaultParkingURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		weather: strings.TrimRight(weatherURL, "/"),
		parking: strings.TrimRight(parkingURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ParkingURL returns the parking service base URL, which callers need to
// resolve the server-relative artifact paths in detection results.
func (c *Client) ParkingURL() string { return c.parking }

// Current fetches current conditions by city name.
func (c *Client) Current(ctx context.Context, city, units string) (*models.WeatherReport, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("units", units)

	var report models.WeatherReport
	if err := c.getWeather(ctx, "/api/weather/current", q, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Coordinates fetches current conditions by latitude and longitude. The
// values are passed through as given; range checking is the backend's
// business.
func (c *Client) Coordinates(ctx context.Context, lat, lon float64, units string) (*models.WeatherReport, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", units)

	var report models.WeatherReport
	if err := c.getWeather(ctx, "/api/weather/coordinates", q, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Forecast fetches the multi-day forecast for a city.
func (c *Client) Forecast(ctx context.Context, city, units string) (*models.ForecastReport, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("units", units)

	var report models.ForecastReport
	if err := c.getWeather(ctx, "/api/weather/forecast", q, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Health probes the weather service liveness endpoint.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.weather+"/api/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach weather service: %w", err)
	}
	defer resp.Body.Close()

	var health models.Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &health, nil
}

// getWeather performs one GET against the weather service and unwraps
// the {success, data|error} envelope into out.
func (c *Client) getWeather(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.weather+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach weather service: %w", err)
	}
	defer resp.Body.Close()

	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return &APIError{Message: env.Error}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}
