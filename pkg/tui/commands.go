package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/downlabs/citydash/pkg/models"
	"github.com/downlabs/citydash/pkg/session"
)

// healthProbeTimeout bounds the startup liveness probe so a dead backend
// does not hold a goroutine for the full request timeout.
const healthProbeTimeout = 3 * time.Second

// Backend is the slice of the API client the dashboard consumes.
type Backend interface {
	Current(ctx context.Context, city, units string) (*models.WeatherReport, error)
	Coordinates(ctx context.Context, lat, lon float64, units string) (*models.WeatherReport, error)
	Forecast(ctx context.Context, city, units string) (*models.ForecastReport, error)
	DetectFile(ctx context.Context, path string) (*models.DetectionResult, error)
	Health(ctx context.Context) (*models.Health, error)
}

// Every reply message carries the generation token of the request that
// produced it; the session state machine drops tokens that have been
// superseded.

type weatherMsg struct {
	view   session.View
	gen    uint64
	report *models.WeatherReport
	err    error
}

type forecastMsg struct {
	gen    uint64
	report *models.ForecastReport
	err    error
}

type detectMsg struct {
	gen    uint64
	result *models.DetectionResult
	err    error
}

type healthMsg struct {
	health *models.Health
	err    error
}

// Commands run on their own goroutines inside the Bubble Tea runtime,
// so they capture what they need up front and never touch the model.

func (m Model) fetchCurrent(city string, gen uint64) tea.Cmd {
	backend, units := m.backend, m.units
	return func() tea.Msg {
		report, err := backend.Current(context.Background(), city, units)
		return weatherMsg{view: session.ViewCurrent, gen: gen, report: report, err: err}
	}
}

func (m Model) fetchCoordinates(lat, lon float64, gen uint64) tea.Cmd {
	backend, units := m.backend, m.units
	return func() tea.Msg {
		report, err := backend.Coordinates(context.Background(), lat, lon, units)
		return weatherMsg{view: session.ViewCoords, gen: gen, report: report, err: err}
	}
}

func (m Model) fetchForecast(city string, gen uint64) tea.Cmd {
	backend, units := m.backend, m.units
	return func() tea.Msg {
		report, err := backend.Forecast(context.Background(), city, units)
		return forecastMsg{gen: gen, report: report, err: err}
	}
}

func (m Model) runDetection(path string, gen uint64) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		result, err := backend.DetectFile(context.Background(), path)
		return detectMsg{gen: gen, result: result, err: err}
	}
}

func (m Model) probeHealth() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
		defer cancel()
		health, err := backend.Health(ctx)
		return healthMsg{health: health, err: err}
	}
}
