package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/downlabs/citydash/pkg/models"
)

func TestCurrent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/weather/current", r.URL.Path)
		assert.Equal(t, "New York", r.URL.Query().Get("city"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		io.WriteString(w, `{
			"success": true,
			"data": {
				"city": "New York",
				"country": "US",
				"temperature": {"current": 21.6, "feels_like": 20.1, "min": 18.2, "max": 24.0},
				"humidity": 55,
				"pressure": 1014,
				"visibility": 10000,
				"weather": {"main": "Clear", "description": "clear sky", "icon": "01d"},
				"wind": {"speed": 3.1, "direction": 240},
				"coordinates": {"lat": 40.7128, "lon": -74.006},
				"sunrise": "06:12:33",
				"sunset": "19:48:01",
				"timestamp": "2024-05-01T12:00:00",
				"units": "metric"
			}
		}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "", 0)
	report, err := c.Current(context.Background(), "New York", models.UnitsMetric)
	require.NoError(t, err)

	assert.Equal(t, "New York", report.City)
	assert.Equal(t, "US", report.Country)
	assert.Equal(t, 21.6, report.Temperature.Current)
	assert.Equal(t, 55, report.Humidity)
	assert.Equal(t, float64(10000), report.Visibility)
	assert.Equal(t, "Clear", report.Weather.Main)
	assert.Equal(t, float64(240), report.Wind.Direction)
}

func TestCurrentReportedFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success": false, "error": "City not found"}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "", 0)
	report, err := c.Current(context.Background(), "Nowhereville", models.UnitsMetric)
	assert.Nil(t, report)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "City not found", apiErr.Message)
}

func TestCurrentBareErrorBody(t *testing.T) {
	// Validation failures come back without a success field at all; the
	// missing field must read as failure, not as an empty success.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": "City parameter is required"}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "", 0)
	_, err := c.Current(context.Background(), "", models.UnitsMetric)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "City parameter is required", apiErr.Message)
}

func TestCoordinatesQuery(t *testing.T) {
	var gotPath string
	var got url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		got = r.URL.Query()
		io.WriteString(w, `{"success": true, "data": {}}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "", 0)

	_, err := c.Coordinates(context.Background(), 51.5074, -0.1278, models.UnitsImperial)
	require.NoError(t, err)
	assert.Equal(t, "/api/weather/coordinates", gotPath)
	assert.Equal(t, "51.5074", got.Get("lat"))
	assert.Equal(t, "-0.1278", got.Get("lon"))
	assert.Equal(t, "imperial", got.Get("units"))

	// Out-of-range values pass through untouched; range checking is the
	// backend's business.
	_, err = c.Coordinates(context.Background(), 999, -200, models.UnitsMetric)
	require.NoError(t, err)
	assert.Equal(t, "999", got.Get("lat"))
	assert.Equal(t, "-200", got.Get("lon"))
}

func TestForecast(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/weather/forecast", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("city"))
		io.WriteString(w, `{
			"success": true,
			"data": {
				"city": "London",
				"country": "GB",
				"coordinates": {"lat": 51.5074, "lon": -0.1278},
				"units": "metric",
				"forecast": [
					{
						"datetime": "2024-05-01 12:00:00",
						"date": "2024-05-01",
						"time": "12:00",
						"temperature": {"temp": 14.8, "feels_like": 13.9, "min": 13.0, "max": 15.2},
						"weather": {"main": "Rain", "description": "light rain", "icon": "10d"},
						"humidity": 81,
						"pressure": 1002,
						"wind": {"speed": 5.4, "direction": 200},
						"clouds": 90
					}
				]
			}
		}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "", 0)
	report, err := c.Forecast(context.Background(), "London", models.UnitsMetric)
	require.NoError(t, err)

	assert.Equal(t, "London", report.City)
	require.Len(t, report.Forecast, 1)
	assert.Equal(t, "2024-05-01", report.Forecast[0].Date)
	assert.Equal(t, 14.8, report.Forecast[0].Temperature.Temp)
	assert.Equal(t, "Rain", report.Forecast[0].Weather.Main)
}

func TestDetect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/process", r.URL.Path)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()

		// The form carries the bare file name, not the local path.
		assert.Equal(t, "car.jpg", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(content))

		io.WriteString(w, `{
			"plate": "KA01AB1234",
			"entry_time": "01 May 2024, 12:30:15",
			"fee": "Rs. 30.00",
			"slip_url": "/static/slips/slip_KA01AB1234.png",
			"anno_url": "/static/annotated/KA01AB1234.jpg",
			"crop_url": "/static/crops/KA01AB1234.jpg"
		}`)
	}))
	defer ts.Close()

	c := New("", ts.URL, 0)
	result, err := c.Detect(context.Background(), "/home/user/photos/car.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.Equal(t, "KA01AB1234", result.Plate)
	assert.Equal(t, "01 May 2024, 12:30:15", result.EntryTime)
	assert.Equal(t, "Rs. 30.00", result.Fee)
	assert.Equal(t, "/static/slips/slip_KA01AB1234.png", result.SlipURL)
	assert.Equal(t, "/static/annotated/KA01AB1234.jpg", result.AnnoURL)
	assert.Empty(t, result.Error)
}

func TestDetectSoftError(t *testing.T) {
	// The parking service reports unusable images inside a 200 body.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error": "No number plate detected in image"}`)
	}))
	defer ts.Close()

	c := New("", ts.URL, 0)
	result, err := c.DetectFile(context.Background(), writeTempImage(t))
	assert.Nil(t, result)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No number plate detected in image", apiErr.Message)
}

func TestDetectFileMissing(t *testing.T) {
	c := New("", "", 0)
	_, err := c.DetectFile(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))

	var pathErr *fs.PathError
	assert.ErrorAs(t, err, &pathErr)
}

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		io.WriteString(w, `{"status": "healthy", "timestamp": "2024-05-01T12:00:00"}`)
	}))
	defer ts.Close()

	c := New(ts.URL+"/", "", 0)
	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
}

func TestNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := ts.URL
	ts.Close()

	c := New(deadURL, deadURL, time.Second)
	_, err := c.Current(context.Background(), "Paris", models.UnitsMetric)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, NetworkErrorText, ErrorMessage(err))
}

func TestMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>service is sideways</html>")
	}))
	defer ts.Close()

	c := New(ts.URL, "", 0)
	_, err := c.Current(context.Background(), "Paris", models.UnitsMetric)
	require.Error(t, err)
	assert.Equal(t, NetworkErrorText, ErrorMessage(err))
}

func TestCancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": true, "data": {}}`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(ts.URL, "", 0)
	_, err := c.Current(ctx, "Paris", models.UnitsMetric)
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server message surfaced verbatim",
			err:  &APIError{Message: "City not found"},
			want: "City not found",
		},
		{
			name: "empty server message falls back",
			err:  &APIError{},
			want: FallbackErrorText,
		},
		{
			name: "wrapped api error still unwraps",
			err:  fmt.Errorf("current weather: %w", &APIError{Message: "Units must be metric, imperial, or kelvin"}),
			want: "Units must be metric, imperial, or kelvin",
		},
		{
			name: "transport error hides internals",
			err:  errors.New("dial tcp 127.0.0.1:5000: connect: connection refused"),
			want: NetworkErrorText,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorMessage(tc.err))
		})
	}
}

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "car.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o644))
	return path
}
