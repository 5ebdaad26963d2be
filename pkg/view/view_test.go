package view

import (
	"testing"

	"github.com/downlabs/citydash/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestIconFor(t *testing.T) {
	testCases := []struct {
		condition string
		want      string
	}{
		{"Clear", "☀️"},
		{"Clouds", "☁️"},
		{"Rain", "🌧️"},
		{"Drizzle", "🌦️"},
		{"Thunderstorm", "⛈️"},
		{"Snow", "❄️"},
		{"Mist", "🌫️"},
		{"Fog", "🌫️"},
		{"Haze", "🌫️"},
		{"Tornado", fallbackIcon},
		{"Squall", fallbackIcon},
		{"", fallbackIcon},
	}

	for _, tc := range testCases {
		t.Run(tc.condition, func(t *testing.T) {
			assert.Equal(t, tc.want, IconFor(tc.condition))
		})
	}
}

func TestRoundTemp(t *testing.T) {
	assert.Equal(t, 21, RoundTemp(21.4))
	assert.Equal(t, 22, RoundTemp(21.5))
	assert.Equal(t, 22, RoundTemp(21.96))
	assert.Equal(t, -5, RoundTemp(-5.2))
	assert.Equal(t, 0, RoundTemp(0))
}

func TestUnits(t *testing.T) {
	assert.Equal(t, "°C", TempUnit(models.UnitsMetric))
	assert.Equal(t, "°F", TempUnit(models.UnitsImperial))
	assert.Equal(t, "K", TempUnit(models.UnitsKelvin))

	assert.Equal(t, "m/s", WindUnit(models.UnitsMetric))
	assert.Equal(t, "mph", WindUnit(models.UnitsImperial))
	assert.Equal(t, "m/s", WindUnit(models.UnitsKelvin))
}

func sampleReport() *models.WeatherReport {
	return &models.WeatherReport{
		City:    "Almaty",
		Country: "KZ",
		Temperature: models.Temperature{
			Current:   -5.2,
			FeelsLike: -9.8,
			Min:       -7.0,
			Max:       -3.0,
		},
		Humidity:   72,
		Pressure:   1023,
		Visibility: float64(10000),
		Weather: models.Condition{
			Main:        "Clouds",
			Description: "overcast clouds",
			Icon:        "04d",
		},
		Wind: models.Wind{
			Speed:     3.5,
			Direction: float64(240),
		},
		Coordinates: models.Coordinates{Lat: 43.25, Lon: 76.95},
		Sunrise:     "07:12:45",
		Sunset:      "17:34:10",
		Timestamp:   "2026-01-15 12:30:00",
		Units:       models.UnitsMetric,
	}
}

func TestFormatWeather(t *testing.T) {
	w := FormatWeather(sampleReport())

	assert.Equal(t, "Almaty, KZ", w.Title)
	assert.Equal(t, "☁️", w.Icon)
	assert.Equal(t, "overcast clouds", w.Description)
	assert.Equal(t, "-5°C", w.Temp)
	assert.Equal(t, "-10°C", w.FeelsLike)
	assert.Equal(t, "-7°C / -3°C", w.MinMax)
	assert.Equal(t, "72%", w.Humidity)
	assert.Equal(t, "1023 hPa", w.Pressure)
	assert.Equal(t, "10000 m", w.Visibility)
	assert.Equal(t, "3.5 m/s (240°)", w.Wind)
	assert.Equal(t, "07:12:45", w.Sunrise)
	assert.Equal(t, "17:34:10", w.Sunset)
	assert.Equal(t, "43.25, 76.95", w.Coordinates)
	assert.Equal(t, "2026-01-15 12:30:00", w.Observed)
}

func TestFormatWeatherOmittedFields(t *testing.T) {
	r := sampleReport()
	r.Visibility = "N/A"
	r.Wind.Direction = "N/A"

	w := FormatWeather(r)
	assert.Equal(t, "N/A", w.Visibility)
	assert.Equal(t, "3.5 m/s", w.Wind)
}

func TestFormatWeatherImperial(t *testing.T) {
	r := sampleReport()
	r.Units = models.UnitsImperial
	r.Temperature.Current = 71.6

	w := FormatWeather(r)
	assert.Equal(t, "72°F", w.Temp)
	assert.Equal(t, "3.5 mph (240°)", w.Wind)
}

func TestAbsolute(t *testing.T) {
	testCases := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"relative path", "http://localhost:5001", "/static/slips/crop_latest.jpg", "http://localhost:5001/static/slips/crop_latest.jpg"},
		{"base with trailing slash", "http://localhost:5001/", "/static/slips/crop_latest.jpg", "http://localhost:5001/static/slips/crop_latest.jpg"},
		{"already absolute", "http://localhost:5001", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"empty ref", "http://localhost:5001", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Absolute(tc.base, tc.ref))
		})
	}
}

func TestCacheBust(t *testing.T) {
	raw := "http://localhost:5001/static/slips/annotated_latest.jpg"

	busted := CacheBust(raw, "1737000000000.1")
	assert.NotEqual(t, raw, busted)
	assert.Equal(t, "http://localhost:5001/static/slips/annotated_latest.jpg?t=1737000000000.1", busted)

	// Same path, different tokens: the URLs must differ so a repeat
	// detection is never served a cached artifact.
	again := CacheBust(raw, "1737000000000.2")
	assert.NotEqual(t, busted, again)

	// An existing query survives.
	withQuery := CacheBust("http://localhost:5001/a.jpg?size=big", "7")
	assert.Contains(t, withQuery, "size=big")
	assert.Contains(t, withQuery, "t=7")

	assert.Equal(t, "", CacheBust("", "7"))
}

func TestFormatDetection(t *testing.T) {
	result := &models.DetectionResult{
		Plate:     "LEB 1234",
		EntryTime: "15 Jan 2026, 12:30:45",
		Fee:       "Rs. 30.00",
		SlipURL:   "/static/slips/slip_LEB_1234_20260115_123045.png",
		AnnoURL:   "/static/slips/annotated_latest.jpg",
		CropURL:   "/static/slips/crop_latest.jpg",
	}

	d := FormatDetection(result, "http://localhost:5001", "42")

	assert.Equal(t, "LEB 1234", d.Plate)
	assert.Equal(t, "15 Jan 2026, 12:30:45", d.EntryTime)
	assert.Equal(t, "Rs. 30.00", d.Fee)
	assert.Equal(t, "http://localhost:5001/static/slips/slip_LEB_1234_20260115_123045.png?t=42", d.SlipURL)
	assert.Equal(t, "http://localhost:5001/static/slips/annotated_latest.jpg?t=42", d.AnnoURL)
	assert.Equal(t, "http://localhost:5001/static/slips/crop_latest.jpg?t=42", d.CropURL)

	// The displayed URLs never match the raw payload paths.
	assert.NotEqual(t, result.AnnoURL, d.AnnoURL)

	// The input payload is left untouched.
	assert.Equal(t, "/static/slips/annotated_latest.jpg", result.AnnoURL)

	second := FormatDetection(result, "http://localhost:5001", "43")
	assert.NotEqual(t, d.AnnoURL, second.AnnoURL)
	assert.NotEqual(t, d.CropURL, second.CropURL)
	assert.NotEqual(t, d.SlipURL, second.SlipURL)
}

func TestFormatRevenue(t *testing.T) {
	assert.Equal(t, "Rs. 0.00", FormatRevenue(0))
	assert.Equal(t, "Rs. 30.00", FormatRevenue(30))
	assert.Equal(t, "Rs. 90.00", FormatRevenue(90))
	assert.Equal(t, "Rs. 127.50", FormatRevenue(127.5))
}
