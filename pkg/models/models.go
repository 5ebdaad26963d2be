package models

import "encoding/json"

// Units accepted by the weather service.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
	UnitsKelvin   = "kelvin"
)

// Envelope is the {success, data|error} wrapper around every weather
// response. Bad-request bodies carry only the error field; the zero
// Success value makes them decode as failures.
type Envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Temperature is the temperature block of a current-conditions payload.
type Temperature struct {
	Current   float64 `json:"current"`
	FeelsLike float64 `json:"feels_like"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// Condition describes the reported weather condition.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Wind holds speed and direction. Direction arrives as degrees or the
// string "N/A" when upstream omits it.
type Wind struct {
	Speed     float64 `json:"speed"`
	Direction any     `json:"direction"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherReport is the data payload of /api/weather/current and
// /api/weather/coordinates. Visibility is meters or the string "N/A".
type WeatherReport struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Temperature Temperature `json:"temperature"`
	Humidity    int         `json:"humidity"`
	Pressure    int         `json:"pressure"`
	Visibility  any         `json:"visibility"`
	Weather     Condition   `json:"weather"`
	Wind        Wind        `json:"wind"`
	Coordinates Coordinates `json:"coordinates"`
	Sunrise     string      `json:"sunrise"`
	Sunset      string      `json:"sunset"`
	Timestamp   string      `json:"timestamp"`
	Units       string      `json:"units"`
}

// ForecastTemperature is the temperature block of one forecast entry.
// The instantaneous value is named temp here, not current.
type ForecastTemperature struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// ForecastEntry is one 3-hour slot of the forecast list. Date is the
// entry's calendar date in YYYY-MM-DD form.
type ForecastEntry struct {
	Datetime    string              `json:"datetime"`
	Date        string              `json:"date"`
	Time        string              `json:"time"`
	Temperature ForecastTemperature `json:"temperature"`
	Weather     Condition           `json:"weather"`
	Humidity    int                 `json:"humidity"`
	Pressure    int                 `json:"pressure"`
	Wind        Wind                `json:"wind"`
	Clouds      int                 `json:"clouds"`
}

// ForecastReport is the data payload of /api/weather/forecast.
type ForecastReport struct {
	City        string          `json:"city"`
	Country     string          `json:"country"`
	Coordinates Coordinates     `json:"coordinates"`
	Units       string          `json:"units"`
	Forecast    []ForecastEntry `json:"forecast"`
}

// DetectionResult is the /process response of the parking service. The
// service reports failures through the error field, both for rejected
// uploads and for images with no detectable plate; the remaining fields
// are only set on success. Artifact URLs are server-relative paths.
type DetectionResult struct {
	Error     string `json:"error,omitempty"`
	Plate     string `json:"plate,omitempty"`
	EntryTime string `json:"entry_time,omitempty"`
	Fee       string `json:"fee,omitempty"`
	SlipURL   string `json:"slip_url,omitempty"`
	AnnoURL   string `json:"anno_url,omitempty"`
	CropURL   string `json:"crop_url,omitempty"`
}

// Health is the /api/health body.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
