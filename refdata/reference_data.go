// backend/refdata/reference_data.go

// Package refdata loads the static lookup tables the estimator depends on:
// aircraft emission factors and airport coordinates.
package refdata

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/gewnthar/greenskies/backend/models"
	"github.com/gewnthar/greenskies/backend/utils"
)

var (
	// ErrMissingDataSource means a reference table file does not exist or cannot be opened.
	ErrMissingDataSource = errors.New("reference data source missing")
	// ErrMalformedTable means a reference table lacks its header or a required column.
	ErrMalformedTable = errors.New("reference table malformed")
)

// ReferenceData is the read-only context built once at startup and handed to
// the calculation service. It is safe for concurrent reads.
type ReferenceData struct {
	factors  map[string]float64
	airports map[string]models.AirportRecord

	FactorsReport  LoadReport
	AirportsReport LoadReport
}

// New builds a ReferenceData from already-loaded tables. The maps are copied.
func New(factors map[string]float64, airports map[string]models.AirportRecord) *ReferenceData {
	rd := &ReferenceData{
		factors:  make(map[string]float64, len(factors)),
		airports: make(map[string]models.AirportRecord, len(airports)),
	}
	for k, v := range factors {
		rd.factors[k] = v
	}
	for k, v := range airports {
		rd.airports[utils.NormalizeAirportCode(k)] = v
	}
	rd.FactorsReport.Loaded = len(rd.factors)
	rd.AirportsReport.Loaded = len(rd.airports)
	return rd
}

// Load reads both tables from disk. Either file missing is fatal.
func Load(factorsPath, airportsPath string, logger *slog.Logger) (*ReferenceData, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "refdata")

	factors, factorsReport, err := LoadEmissionFactors(factorsPath)
	if err != nil {
		return nil, err
	}
	airports, airportsReport, err := LoadAirports(airportsPath)
	if err != nil {
		return nil, err
	}

	for _, r := range []LoadReport{factorsReport, airportsReport} {
		logger.Info("reference table loaded", "source", r.Source, "rows", r.Loaded, "skipped", len(r.Skipped))
		for _, s := range r.Skipped {
			logger.Debug("reference row skipped", "source", r.Source, "line", s.Line, "reason", s.Reason)
		}
	}

	rd := New(factors, airports)
	rd.FactorsReport = factorsReport
	rd.AirportsReport = airportsReport
	return rd, nil
}

// LoadEmissionFactors opens path and parses it with ParseEmissionFactorsCsv.
func LoadEmissionFactors(path string) (map[string]float64, LoadReport, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, LoadReport{Source: path}, err
	}
	defer f.Close()

	factors, report, err := ParseEmissionFactorsCsv(f)
	report.Source = path
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", path, err)
	}
	return factors, report, nil
}

// LoadAirports opens path and parses it with ParseAirportsCsv.
func LoadAirports(path string) (map[string]models.AirportRecord, LoadReport, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, LoadReport{Source: path}, err
	}
	defer f.Close()

	airports, report, err := ParseAirportsCsv(f)
	report.Source = path
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", path, err)
	}
	return airports, report, nil
}

func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrMissingDataSource, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDataSource, err)
	}
	return f, nil
}

// Factor returns the emission factor for an aircraft type.
func (rd *ReferenceData) Factor(aircraftType string) (float64, bool) {
	f, ok := rd.factors[aircraftType]
	return f, ok
}

// Factors returns a copy of the aircraft table.
func (rd *ReferenceData) Factors() map[string]float64 {
	out := make(map[string]float64, len(rd.factors))
	for k, v := range rd.factors {
		out[k] = v
	}
	return out
}

// Airport looks up an airport by code; the code is normalised first.
func (rd *ReferenceData) Airport(code string) (models.AirportRecord, bool) {
	a, ok := rd.airports[utils.NormalizeAirportCode(code)]
	return a, ok
}

// AircraftTypes lists the loaded aircraft types in sorted order.
func (rd *ReferenceData) AircraftTypes() []string {
	types := make([]string, 0, len(rd.factors))
	for k := range rd.factors {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// EmissionFactors lists the aircraft table sorted by type.
func (rd *ReferenceData) EmissionFactors() []models.AircraftEmissionFactor {
	out := make([]models.AircraftEmissionFactor, 0, len(rd.factors))
	for _, t := range rd.AircraftTypes() {
		out = append(out, models.AircraftEmissionFactor{AircraftType: t, FactorKgCO2PerKm: rd.factors[t]})
	}
	return out
}

// Airports lists the airport table sorted by code.
func (rd *ReferenceData) Airports() []models.AirportRecord {
	out := make([]models.AirportRecord, 0, len(rd.airports))
	for _, a := range rd.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IATA < out[j].IATA })
	return out
}
