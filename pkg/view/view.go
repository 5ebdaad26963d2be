// Package view turns API payloads into display-agnostic view models. The
// dashboard and the one-shot commands both render from these, so every
// function here is a pure mapping: no clock, no network, no mutation of
// the payload.
package view

import (
	"fmt"
	"math"
	"net/url"

	"github.com/downlabs/citydash/pkg/models"
)

// icons maps a reported weather condition to its display icon.
var icons = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
}

// fallbackIcon covers conditions missing from the table. Unknown input is
// never an error here.
const fallbackIcon = "🌡️"

// IconFor returns the icon for a weather condition, falling back to the
// generic one for anything unmapped.
func IconFor(condition string) string {
	if icon, ok := icons[condition]; ok {
		return icon
	}
	return fallbackIcon
}

// RoundTemp rounds a temperature to the nearest whole degree for display.
func RoundTemp(v float64) int {
	return int(math.Round(v))
}

// TempUnit returns the temperature suffix for the given units.
func TempUnit(units string) string {
	switch units {
	case models.UnitsImperial:
		return "°F"
	case models.UnitsKelvin:
		return "K"
	default:
		return "°C"
	}
}

// WindUnit returns the wind-speed unit: imperial reports mph, everything
// else m/s.
func WindUnit(units string) string {
	if units == models.UnitsImperial {
		return "mph"
	}
	return "m/s"
}

func formatTemp(v float64, units string) string {
	return fmt.Sprintf("%d%s", RoundTemp(v), TempUnit(units))
}

// numberOrNA formats fields the weather service sends as a number or the
// string "N/A" when upstream omitted them.
func numberOrNA(v any, suffix string) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.0f%s", n, suffix)
	case string:
		return n
	case nil:
		return "N/A"
	default:
		return fmt.Sprintf("%v%s", n, suffix)
	}
}

// Weather is the display model for a current-conditions payload.
type Weather struct {
	Title       string
	Icon        string
	Description string
	Temp        string
	FeelsLike   string
	MinMax      string
	Humidity    string
	Pressure    string
	Visibility  string
	Wind        string
	Sunrise     string
	Sunset      string
	Coordinates string
	Observed    string
}

// FormatWeather maps a weather report to its display model.
func FormatWeather(r *models.WeatherReport) Weather {
	wind := fmt.Sprintf("%.1f %s", r.Wind.Speed, WindUnit(r.Units))
	if dir := numberOrNA(r.Wind.Direction, "°"); dir != "N/A" {
		wind += " (" + dir + ")"
	}

	return Weather{
		Title:       fmt.Sprintf("%s, %s", r.City, r.Country),
		Icon:        IconFor(r.Weather.Main),
		Description: r.Weather.Description,
		Temp:        formatTemp(r.Temperature.Current, r.Units),
		FeelsLike:   formatTemp(r.Temperature.FeelsLike, r.Units),
		MinMax:      fmt.Sprintf("%s / %s", formatTemp(r.Temperature.Min, r.Units), formatTemp(r.Temperature.Max, r.Units)),
		Humidity:    fmt.Sprintf("%d%%", r.Humidity),
		Pressure:    fmt.Sprintf("%d hPa", r.Pressure),
		Visibility:  numberOrNA(r.Visibility, " m"),
		Wind:        wind,
		Sunrise:     r.Sunrise,
		Sunset:      r.Sunset,
		Coordinates: fmt.Sprintf("%.2f, %.2f", r.Coordinates.Lat, r.Coordinates.Lon),
		Observed:    r.Timestamp,
	}
}

// Detection is the display model for a successful plate detection. The
// artifact URLs are absolute and cache-busted.
type Detection struct {
	Plate     string
	EntryTime string
	Fee       string
	SlipURL   string
	AnnoURL   string
	CropURL   string
}

// FormatDetection resolves the service's relative artifact paths against
// the parking base URL and cache-busts them with token. The parking
// service reuses artifact filenames between detections, so without the
// token a repeat detection would show the previous image.
func FormatDetection(r *models.DetectionResult, baseURL, token string) Detection {
	return Detection{
		Plate:     r.Plate,
		EntryTime: r.EntryTime,
		Fee:       r.Fee,
		SlipURL:   CacheBust(Absolute(baseURL, r.SlipURL), token),
		AnnoURL:   CacheBust(Absolute(baseURL, r.AnnoURL), token),
		CropURL:   CacheBust(Absolute(baseURL, r.CropURL), token),
	}
}

// Absolute joins a server-relative path onto the service base URL.
// Already-absolute references pass through unchanged.
func Absolute(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// CacheBust appends the changing t= token to a URL.
func CacheBust(rawURL, token string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("t", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// FormatRevenue renders a running fee total the way the parking service
// prints single fees.
func FormatRevenue(total float64) string {
	return fmt.Sprintf("Rs. %.2f", total)
}
