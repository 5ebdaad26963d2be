package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/downlabs/citydash/pkg/session"
	"github.com/downlabs/citydash/pkg/view"
)

var tabLabels = map[session.View]string{
	session.ViewCurrent:  "Current",
	session.ViewCoords:   "Coordinates",
	session.ViewForecast: "Forecast",
	session.ViewDetect:   "Parking",
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🌆 CityDash"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderInputs())
	b.WriteString("\n\n")
	b.WriteString(m.renderSurface())
	b.WriteString("\n")

	if m.session.Active() == session.ViewDetect {
		b.WriteString("\n")
		b.WriteString(m.renderCounters())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabLabels))
	for _, v := range session.Views() {
		if v == m.session.Active() {
			tabs = append(tabs, tabActiveStyle.Render(tabLabels[v]))
		} else {
			tabs = append(tabs, tabStyle.Render(tabLabels[v]))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return row + "  " + dimStyle.Render("units: "+m.units)
}

func (m Model) renderInputs() string {
	switch m.session.Active() {
	case session.ViewCoords:
		return labelStyle.Render("Latitude:") + " " + m.lat.View() + "\n" +
			labelStyle.Render("Longitude:") + " " + m.lon.View()
	case session.ViewForecast:
		return labelStyle.Render("City:") + " " + m.forecast.View()
	case session.ViewDetect:
		return labelStyle.Render("Image file:") + " " + m.file.View()
	default:
		return labelStyle.Render("City:") + " " + m.city.View()
	}
}

func (m Model) renderSurface() string {
	surface := m.session.ActiveSurface()
	switch surface.Phase() {
	case session.PhaseLoading:
		return m.spinner.View() + " " + loadingText(m.session.Active())
	case session.PhaseError:
		return errorStyle.Render("✗ " + surface.Message())
	case session.PhaseResult:
		return renderResult(surface.Payload())
	default:
		return dimStyle.Render(placeholderText(m.session.Active()))
	}
}

func loadingText(v session.View) string {
	switch v {
	case session.ViewForecast:
		return "Fetching forecast..."
	case session.ViewDetect:
		return "Uploading image and reading the plate..."
	default:
		return "Fetching weather..."
	}
}

func placeholderText(v session.View) string {
	switch v {
	case session.ViewCoords:
		return "Enter coordinates and press enter"
	case session.ViewForecast:
		return "Enter a city and press enter for the 5-day forecast"
	case session.ViewDetect:
		return "Enter an image path and press enter to log a vehicle"
	default:
		return "Enter a city and press enter"
	}
}

func renderResult(payload any) string {
	switch p := payload.(type) {
	case view.Weather:
		return renderWeather(p)
	case view.Forecast:
		return renderForecast(p)
	case view.Detection:
		return renderDetection(p)
	}
	return ""
}

func renderWeather(w view.Weather) string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(w.Title))
	b.WriteString("\n")
	b.WriteString(w.Icon + " " + w.Description)
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Temperature:") + " " + statStyle.Render(w.Temp))
	b.WriteString(dimStyle.Render("  feels like " + w.FeelsLike))
	b.WriteString("\n")

	rows := []struct{ label, value string }{
		{"Min / Max", w.MinMax},
		{"Humidity", w.Humidity},
		{"Pressure", w.Pressure},
		{"Visibility", w.Visibility},
		{"Wind", w.Wind},
		{"Sunrise", w.Sunrise},
		{"Sunset", w.Sunset},
		{"Coordinates", w.Coordinates},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label+":") + " " + row.value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("observed at " + w.Observed))

	return boxStyle.Render(b.String())
}

func renderForecast(f view.Forecast) string {
	rows := make([][]string, 0, len(f.Days))
	for _, d := range f.Days {
		rows = append(rows, []string{d.Date, d.Icon, d.Description, d.Temp, d.Max, d.Min})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("DATE", "", "CONDITIONS", "TEMP", "HIGH", "LOW").
		Rows(rows...)

	return subtitleStyle.Render(f.Title) + "\n" + t.Render()
}

func renderDetection(d view.Detection) string {
	var b strings.Builder

	b.WriteString(successStyle.Render("Vehicle logged"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Plate:") + " " + statStyle.Render(d.Plate) + "\n")
	b.WriteString(labelStyle.Render("Entry time:") + " " + d.EntryTime + "\n")
	b.WriteString(labelStyle.Render("Fee:") + " " + d.Fee + "\n\n")
	b.WriteString(dimStyle.Render("annotated   "+d.AnnoURL) + "\n")
	b.WriteString(dimStyle.Render("plate crop  "+d.CropURL) + "\n")
	b.WriteString(dimStyle.Render("slip        " + d.SlipURL))

	return boxStyle.Render(b.String())
}

func (m Model) renderCounters() string {
	return fmt.Sprintf("%s %s   %s %s",
		dimStyle.Render("Vehicles today:"),
		statStyle.Render(fmt.Sprintf("%d", m.session.Vehicles())),
		dimStyle.Render("Revenue:"),
		statStyle.Render(view.FormatRevenue(m.session.Revenue())))
}
