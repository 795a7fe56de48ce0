// backend/refdata/csv_parser.go
package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/gewnthar/greenskies/backend/models"
	"github.com/gewnthar/greenskies/backend/utils"
)

// Header names are load-bearing; they must match the tables exactly.
const (
	colAircraftType   = "AircraftType"
	colEmissionFactor = "EmissionFactor_kgCO2perkm"
	colIATA           = "IATA"
	colName           = "Name"
	colLatitude       = "Latitude"
	colLongitude      = "Longitude"
	colCountry        = "Country"
)

// emissionFactorRow mirrors one line of the emission-factor CSV. Numbers are
// kept as strings so a malformed value drops the row instead of failing the decode.
type emissionFactorRow struct {
	AircraftType string `csv:"AircraftType"`
	Factor       string `csv:"EmissionFactor_kgCO2perkm"`
}

type airportRow struct {
	IATA      string `csv:"IATA"`
	Name      string `csv:"Name"`
	Latitude  string `csv:"Latitude"`
	Longitude string `csv:"Longitude"`
	Country   string `csv:"Country"`
}

// SkippedRow records a data row that was dropped during a best-effort load.
// Line is the 1-based line number in the source, the header being line 1.
type SkippedRow struct {
	Line   int
	Reason string
}

// LoadReport summarises a best-effort table load.
type LoadReport struct {
	Source  string
	Loaded  int
	Skipped []SkippedRow
}

func (r *LoadReport) skip(line int, format string, args ...any) {
	r.Skipped = append(r.Skipped, SkippedRow{Line: line, Reason: fmt.Sprintf(format, args...)})
}

// ParseEmissionFactorsCsv reads the emission-factor table. Rows whose factor is
// not a positive number are skipped and reported. Duplicate aircraft types
// keep the last occurrence.
func ParseEmissionFactorsCsv(reader io.Reader) (map[string]float64, LoadReport, error) {
	factors := make(map[string]float64)
	var report LoadReport

	err := decodeRows(reader, []string{colAircraftType, colEmissionFactor}, &report, func(line int, dec *csvutil.Decoder) error {
		var row emissionFactorRow
		if err := dec.Decode(&row); err != nil {
			return err
		}
		aircraft := strings.TrimSpace(row.AircraftType)
		if aircraft == "" {
			report.skip(line, "empty aircraft type")
			return nil
		}
		factor, err := parseFinite(row.Factor)
		if err != nil {
			report.skip(line, "aircraft %q: emission factor %q: %v", aircraft, row.Factor, err)
			return nil
		}
		if factor <= 0 {
			report.skip(line, "aircraft %q: emission factor %v is not positive", aircraft, factor)
			return nil
		}
		factors[aircraft] = factor
		return nil
	})
	if err != nil {
		return nil, report, fmt.Errorf("failed to decode emission factor CSV data: %w", err)
	}

	report.Loaded = len(factors)
	return factors, report, nil
}

// ParseAirportsCsv reads the airport table keyed by normalised IATA code. Rows
// with a blank code or unparsable or out-of-range coordinates are skipped and reported.
func ParseAirportsCsv(reader io.Reader) (map[string]models.AirportRecord, LoadReport, error) {
	airports := make(map[string]models.AirportRecord)
	var report LoadReport

	err := decodeRows(reader, []string{colIATA, colName, colLatitude, colLongitude, colCountry}, &report, func(line int, dec *csvutil.Decoder) error {
		var row airportRow
		if err := dec.Decode(&row); err != nil {
			return err
		}
		code := utils.NormalizeAirportCode(row.IATA)
		if code == "" {
			report.skip(line, "empty IATA code")
			return nil
		}
		lat, err := parseFinite(row.Latitude)
		if err != nil {
			report.skip(line, "airport %s: latitude %q: %v", code, row.Latitude, err)
			return nil
		}
		lon, err := parseFinite(row.Longitude)
		if err != nil {
			report.skip(line, "airport %s: longitude %q: %v", code, row.Longitude, err)
			return nil
		}
		if lat < -90 || lat > 90 {
			report.skip(line, "airport %s: latitude %v outside [-90,90]", code, lat)
			return nil
		}
		if lon < -180 || lon > 180 {
			report.skip(line, "airport %s: longitude %v outside [-180,180]", code, lon)
			return nil
		}
		airports[code] = models.AirportRecord{
			IATA:      code,
			Name:      strings.TrimSpace(row.Name),
			Latitude:  lat,
			Longitude: lon,
			Country:   strings.TrimSpace(row.Country),
		}
		return nil
	})
	if err != nil {
		return nil, report, fmt.Errorf("failed to decode airport CSV data: %w", err)
	}

	report.Loaded = len(airports)
	return airports, report, nil
}

// decodeRows checks the header and then calls fn once per data row. Rows the
// CSV reader itself rejects (wrong field count, stray quotes) are recorded as
// skipped and decoding continues.
func decodeRows(reader io.Reader, required []string, report *LoadReport, fn func(line int, dec *csvutil.Decoder) error) error {
	dec, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: no header row", ErrMalformedTable)
		}
		return fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	if err := requireColumns(dec.Header(), required); err != nil {
		return err
	}

	for line := 2; ; line++ {
		err := fn(line, dec)
		if errors.Is(err, io.EOF) {
			return nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			report.skip(line, "malformed CSV row: %v", parseErr.Err)
			continue
		}
		if err != nil {
			return err
		}
	}
}

func requireColumns(header, required []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing column(s) %s", ErrMalformedTable, strings.Join(missing, ", "))
	}
	return nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}
