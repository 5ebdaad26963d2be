package view

import (
	"fmt"

	"github.com/downlabs/citydash/pkg/models"
)

// maxForecastDays caps the grouped view; the service sends about five
// days of 3-hour entries.
const maxForecastDays = 5

// Forecast is the display model for a grouped forecast payload.
type Forecast struct {
	Title string
	Days  []ForecastDay
}

// ForecastDay summarizes all entries of one calendar date. Temp comes
// from the date's representative entry; Max and Min cover every entry of
// the date.
type ForecastDay struct {
	Date        string
	Icon        string
	Description string
	Temp        string
	Max         string
	Min         string
}

// FormatForecast maps a forecast report to its display model.
func FormatForecast(r *models.ForecastReport) Forecast {
	return Forecast{
		Title: fmt.Sprintf("%s, %s", r.City, r.Country),
		Days:  GroupForecast(r),
	}
}

// GroupForecast groups the flat entry list by calendar date, preserving
// first-appearance order and truncating to maxForecastDays distinct
// dates. The representative entry of a date is the temporal midpoint of
// its entries (index count/2).
func GroupForecast(r *models.ForecastReport) []ForecastDay {
	var dates []string
	byDate := make(map[string][]models.ForecastEntry)
	for _, entry := range r.Forecast {
		if _, seen := byDate[entry.Date]; !seen {
			if len(dates) == maxForecastDays {
				continue
			}
			dates = append(dates, entry.Date)
		}
		byDate[entry.Date] = append(byDate[entry.Date], entry)
	}

	days := make([]ForecastDay, 0, len(dates))
	for _, date := range dates {
		entries := byDate[date]
		rep := entries[len(entries)/2]

		maxTemp := entries[0].Temperature.Max
		minTemp := entries[0].Temperature.Min
		for _, entry := range entries[1:] {
			if entry.Temperature.Max > maxTemp {
				maxTemp = entry.Temperature.Max
			}
			if entry.Temperature.Min < minTemp {
				minTemp = entry.Temperature.Min
			}
		}

		days = append(days, ForecastDay{
			Date:        date,
			Icon:        IconFor(rep.Weather.Main),
			Description: rep.Weather.Description,
			Temp:        formatTemp(rep.Temperature.Temp, r.Units),
			Max:         formatTemp(maxTemp, r.Units),
			Min:         formatTemp(minTemp, r.Units),
		})
	}
	return days
}
