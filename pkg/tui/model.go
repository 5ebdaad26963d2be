// Package tui is the interactive dashboard: one tab per backend action,
// each owning one surface of the session state machine. All state lives
// on the model and is only ever mutated inside Update, which is what
// lets the session package get away without locking.
package tui

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/downlabs/citydash/pkg/client"
	"github.com/downlabs/citydash/pkg/models"
	"github.com/downlabs/citydash/pkg/session"
	"github.com/downlabs/citydash/pkg/validate"
	"github.com/downlabs/citydash/pkg/view"
)

// Options configures the dashboard. Backend must be set.
type Options struct {
	Backend Backend

	// ParkingURL resolves the server-relative artifact paths in
	// detection results.
	ParkingURL string

	// Units is the initial unit system; anything invalid means metric.
	Units string

	// Logger receives request failures and the health probe outcome.
	// The dashboard owns the terminal, so this should write to a file
	// or be nil for silence.
	Logger *slog.Logger
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	backend    Backend
	parkingURL string
	logger     *slog.Logger

	session *session.Session
	units   string

	city     textinput.Model
	lat      textinput.Model
	lon      textinput.Model
	forecast textinput.Model
	file     textinput.Model

	// coordsFocus selects the focused coordinate field: 0 latitude,
	// 1 longitude.
	coordsFocus int

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	width   int
}

// New builds the dashboard model with every view idle.
func New(opts Options) Model {
	units := opts.Units
	if validate.Units(units) != nil {
		units = models.UnitsMetric
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	city := textinput.New()
	city.Placeholder = "city name"
	city.CharLimit = 64
	city.Width = 32
	city.Focus()

	lat := textinput.New()
	lat.Placeholder = "latitude"
	lat.CharLimit = 24
	lat.Width = 16

	lon := textinput.New()
	lon.Placeholder = "longitude"
	lon.CharLimit = 24
	lon.Width = 16

	forecast := textinput.New()
	forecast.Placeholder = "city name"
	forecast.CharLimit = 64
	forecast.Width = 32

	file := textinput.New()
	file.Placeholder = "path/to/image.jpg"
	file.CharLimit = 256
	file.Width = 48

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		backend:    opts.Backend,
		parkingURL: opts.ParkingURL,
		logger:     logger,
		session:    session.New(),
		units:      units,
		city:       city,
		lat:        lat,
		lon:        lon,
		forecast:   forecast,
		file:       file,
		spinner:    s,
		help:       help.New(),
		keys:       defaultKeyMap(),
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.probeHealth())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			return m.switchTo(m.session.Active().Next())
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTo(m.session.Active().Prev())
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Clear):
			m.session.ActiveSurface().Clear()
			return m, nil
		case key.Matches(msg, m.keys.Units):
			m.units = nextUnits(m.units)
			return m, nil
		case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
			if m.session.Active() == session.ViewCoords {
				m.coordsFocus = 1 - m.coordsFocus
				return m, m.refocus()
			}
			return m, nil
		}
		return m.updateInput(msg)

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case weatherMsg:
		return m.applyWeather(msg)

	case forecastMsg:
		return m.applyForecast(msg)

	case detectMsg:
		return m.applyDetect(msg)

	case healthMsg:
		if msg.err != nil {
			m.logger.Warn("health probe failed", "error", msg.err)
		} else {
			m.logger.Info("weather service reachable", "status", msg.health.Status)
		}
		return m, nil
	}

	// Everything else, cursor blinks included, goes to the focused input.
	return m.updateInput(msg)
}

// submit validates the active view's input and dispatches its request.
// Nothing leaves this method while the view is busy; validation
// failures show up on the surface without any request being built.
func (m Model) submit() (tea.Model, tea.Cmd) {
	active := m.session.Active()
	surface := m.session.Surface(active)
	if surface.Busy() {
		return m, nil
	}
	wasTicking := m.anyLoading()

	var fetch tea.Cmd
	switch active {
	case session.ViewCurrent:
		city, err := validate.City(m.city.Value())
		if err != nil {
			surface.Reject(err.Error())
			return m, nil
		}
		gen, ok := surface.Begin()
		if !ok {
			return m, nil
		}
		fetch = m.fetchCurrent(city, gen)

	case session.ViewCoords:
		lat, lon, err := validate.Coordinates(m.lat.Value(), m.lon.Value())
		if err != nil {
			surface.Reject(err.Error())
			return m, nil
		}
		gen, ok := surface.Begin()
		if !ok {
			return m, nil
		}
		fetch = m.fetchCoordinates(lat, lon, gen)

	case session.ViewForecast:
		city, err := validate.City(m.forecast.Value())
		if err != nil {
			surface.Reject(err.Error())
			return m, nil
		}
		gen, ok := surface.Begin()
		if !ok {
			return m, nil
		}
		fetch = m.fetchForecast(city, gen)

	case session.ViewDetect:
		path, err := validate.File(m.file.Value())
		if err != nil {
			surface.Reject(err.Error())
			return m, nil
		}
		gen, ok := surface.Begin()
		if !ok {
			return m, nil
		}
		fetch = m.runDetection(path, gen)
	}

	if fetch == nil {
		return m, nil
	}
	if wasTicking {
		return m, fetch
	}
	return m, tea.Batch(m.spinner.Tick, fetch)
}

func (m Model) applyWeather(msg weatherMsg) (tea.Model, tea.Cmd) {
	surface := m.session.Surface(msg.view)
	if msg.err != nil {
		if surface.Fail(msg.gen, client.ErrorMessage(msg.err)) {
			m.logger.Warn("weather request failed", "view", msg.view.String(), "error", msg.err)
		}
		return m, nil
	}
	surface.Resolve(msg.gen, view.FormatWeather(msg.report))
	return m, nil
}

func (m Model) applyForecast(msg forecastMsg) (tea.Model, tea.Cmd) {
	surface := m.session.Surface(session.ViewForecast)
	if msg.err != nil {
		if surface.Fail(msg.gen, client.ErrorMessage(msg.err)) {
			m.logger.Warn("forecast request failed", "error", msg.err)
		}
		return m, nil
	}
	surface.Resolve(msg.gen, view.FormatForecast(msg.report))
	return m, nil
}

func (m Model) applyDetect(msg detectMsg) (tea.Model, tea.Cmd) {
	surface := m.session.Surface(session.ViewDetect)
	if msg.err != nil {
		if surface.Fail(msg.gen, detectErrorText(msg.err)) {
			m.logger.Warn("detection failed", "error", msg.err)
		}
		return m, nil
	}
	formatted := view.FormatDetection(msg.result, m.parkingURL, m.session.NextCacheToken())
	// Superseded replies must not count; only what lands on screen does.
	if surface.Resolve(msg.gen, formatted) {
		m.session.RecordDetection()
	}
	return m, nil
}

func (m Model) switchTo(v session.View) (tea.Model, tea.Cmd) {
	m.session.SwitchTo(v)
	return m, m.refocus()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := m.focusedInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

// refocus moves keyboard focus to the active view's input.
func (m *Model) refocus() tea.Cmd {
	for _, in := range []*textinput.Model{&m.city, &m.lat, &m.lon, &m.forecast, &m.file} {
		in.Blur()
	}
	return m.focusedInput().Focus()
}

func (m *Model) focusedInput() *textinput.Model {
	switch m.session.Active() {
	case session.ViewCoords:
		if m.coordsFocus == 1 {
			return &m.lon
		}
		return &m.lat
	case session.ViewForecast:
		return &m.forecast
	case session.ViewDetect:
		return &m.file
	default:
		return &m.city
	}
}

// anyLoading reports whether any surface is visually loading, which is
// what keeps the spinner ticking.
func (m *Model) anyLoading() bool {
	for _, v := range session.Views() {
		if m.session.Surface(v).Phase() == session.PhaseLoading {
			return true
		}
	}
	return false
}

func nextUnits(units string) string {
	switch units {
	case models.UnitsMetric:
		return models.UnitsImperial
	case models.UnitsImperial:
		return models.UnitsKelvin
	default:
		return models.UnitsMetric
	}
}

// detectErrorText keeps backend-reported messages verbatim but gives an
// unreadable local path its own message instead of the network hint.
func detectErrorText(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return "Cannot open " + pathErr.Path
	}
	return client.ErrorMessage(err)
}
