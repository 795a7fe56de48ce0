// backend/utils/airports.go
package utils

import (
	"fmt"
	"strings"

	"github.com/gewnthar/greenskies/backend/models"
)

// labelSeparator splits the code from the description in a selection label.
const labelSeparator = "–"

// NormalizeAirportCode trims surrounding whitespace and converts to uppercase.
func NormalizeAirportCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ParseAirportSelection extracts the IATA code from either a bare code ("del")
// or a selection label ("DEL – Indira Gandhi Intl, India").
func ParseAirportSelection(text string) string {
	if text == "" {
		return ""
	}
	if code, _, found := strings.Cut(text, labelSeparator); found {
		return NormalizeAirportCode(code)
	}
	return NormalizeAirportCode(text)
}

// FormatAirportOption builds the selection label for an airport.
func FormatAirportOption(a models.AirportRecord) string {
	return fmt.Sprintf("%s %s %s, %s", a.IATA, labelSeparator, a.Name, a.Country)
}
