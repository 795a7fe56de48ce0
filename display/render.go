// backend/display/render.go
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gewnthar/greenskies/backend/models"
	"github.com/gewnthar/greenskies/backend/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	co2Style    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	adviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Italic(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func row(label, value string, style lipgloss.Style) string {
	return labelStyle.Render(fmt.Sprintf("%-18s", label)) + style.Render(value)
}

// RenderCalculation formats one recorded calculation for the terminal.
func RenderCalculation(c *models.Calculation) string {
	e := c.Entry
	route := e.Route()
	if route == "" {
		route = "manual distance"
	}

	lines := []string{
		titleStyle.Render("Flight emissions"),
		row("Route", route, valueStyle),
		row("Distance", fmt.Sprintf("%.1f km", c.Result.DistanceKm), valueStyle),
		row("Aircraft", e.AircraftType, valueStyle),
		row("Radiative forcing", yesNo(e.RadiativeForcing), valueStyle),
		row("SAF blend", fmt.Sprintf("%d%%", e.SAFBlendPercent), valueStyle),
		row("CO₂", fmt.Sprintf("%.1f kg", c.Result.CO2Kg), co2Style),
		row("Fuel", fmt.Sprintf("%.1f L", c.Result.FuelLiters), valueStyle),
		row("Trees (1 year)", fmt.Sprintf("%.1f", c.Result.TreesEquivalent), valueStyle),
		row("Offset cost", fmt.Sprintf("₹%.1f", c.Result.OffsetCost), valueStyle),
		"",
		adviceStyle.Render(c.Advice),
	}
	return strings.Join(lines, "\n")
}

// RenderComparison lists per-aircraft CO2 for one route. The lowest emitter is marked.
func RenderComparison(distanceKm float64, items []models.AircraftComparison) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Aircraft comparison (%.1f km)", distanceKm)))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(hintStyle.Render("No aircraft loaded."))
		return b.String()
	}

	best := 0
	for i, it := range items {
		if it.CO2Kg < items[best].CO2Kg {
			best = i
		}
	}
	for i, it := range items {
		line := row(it.AircraftType, fmt.Sprintf("%10.1f kg", it.CO2Kg), co2Style)
		if i == best {
			line += hintStyle.Render("  lowest")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderHistory prints the ledger oldest first, one line per flight.
func RenderHistory(entries []models.HistoryEntry) string {
	if len(entries) == 0 {
		return hintStyle.Render("No history yet.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("History (%d flights)", len(entries))))
	b.WriteString("\n")
	var total float64
	for i, e := range entries {
		route := e.Route()
		if route == "" {
			route = "-"
		}
		fmt.Fprintf(&b, "%3d  %s  %-12s %9.1f km  %-10s rf=%-3s saf=%3d%%  ",
			i+1, e.Timestamp.UTC().Format("2006-01-02 15:04"), route, e.DistanceKm,
			e.AircraftType, yesNo(e.RadiativeForcing), e.SAFBlendPercent)
		b.WriteString(co2Style.Render(fmt.Sprintf("%.1f kg", e.CO2Kg)))
		b.WriteString("\n")
		total += e.CO2Kg
	}
	b.WriteString(row("Total CO₂", fmt.Sprintf("%.1f kg", total), co2Style))
	return b.String()
}

func RenderAircraft(factors []models.AircraftEmissionFactor) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Aircraft"))
	for _, f := range factors {
		b.WriteString("\n")
		b.WriteString(row(f.AircraftType, fmt.Sprintf("%.3f kg CO₂/km", f.FactorKgCO2PerKm), valueStyle))
	}
	return b.String()
}

func RenderAirports(airports []models.AirportRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Airports"))
	for _, a := range airports {
		b.WriteString("\n")
		b.WriteString(utils.FormatAirportOption(a))
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
