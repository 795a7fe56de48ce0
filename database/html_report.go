// backend/database/html_report.go
package database

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/gewnthar/greenskies/backend/models"
)

var reportTemplate = template.Must(template.New("history").Funcs(template.FuncMap{
	"km":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"ts":  func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"yes": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>GreenSkies flight history</title>
<style>
body { background: #0a1628; color: #e8f4f8; font-family: "Segoe UI", sans-serif; }
table { border-collapse: collapse; width: 100%; }
th { background: #1a2942; color: #00ff88; text-align: left; }
td, th { border: 1px solid #2d4663; padding: 4px 8px; }
td.num { text-align: right; }
</style>
</head>
<body>
<h1>Flight history</h1>
<p id="summary">{{len .Entries}} flights, {{km .TotalCO2}} kg CO₂ in total</p>
<table id="history">
<thead><tr><th>Time</th><th>Route</th><th>Distance (km)</th><th>Aircraft</th><th>RF</th><th>SAF %</th><th>CO₂ (kg)</th><th>Fuel (L)</th><th>Trees</th><th>Offset (₹)</th></tr></thead>
<tbody>
{{- range .Entries}}
<tr><td>{{ts .Timestamp}}</td><td class="route">{{.Route}}</td><td class="num">{{km .DistanceKm}}</td><td class="aircraft">{{.AircraftType}}</td><td>{{yes .RadiativeForcing}}</td><td class="num">{{.SAFBlendPercent}}</td><td class="num co2">{{km .CO2Kg}}</td><td class="num">{{km .FuelLiters}}</td><td class="num">{{km .TreesEquivalent}}</td><td class="num">{{km .OffsetCost}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// RenderHTMLReport writes a self-contained HTML page listing entries.
func RenderHTMLReport(w io.Writer, entries []models.HistoryEntry) error {
	var total float64
	for _, e := range entries {
		total += e.CO2Kg
	}
	data := struct {
		Entries  []models.HistoryEntry
		TotalCO2 float64
	}{entries, total}

	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render history report: %w", err)
	}
	return nil
}
