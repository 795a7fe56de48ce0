// backend/services/calculation_service.go
package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gewnthar/greenskies/backend/database"
	"github.com/gewnthar/greenskies/backend/emissions"
	"github.com/gewnthar/greenskies/backend/geo"
	"github.com/gewnthar/greenskies/backend/models"
	"github.com/gewnthar/greenskies/backend/refdata"
	"github.com/gewnthar/greenskies/backend/utils"
)

// ErrInvalidAirportCode means a spec named an airport that is not in the reference table.
var ErrInvalidAirportCode = errors.New("invalid airport code")

// Ledger is the part of database.HistoryStore the calculator needs.
type Ledger interface {
	Append(entry models.HistoryEntry) error
	ReadAll() ([]models.HistoryEntry, error)
	Export(dest string) error
	ExportExcel(dest string) error
	WriteExcel(w io.Writer) error
	WriteTo(w io.Writer) (int64, error)
}

var _ Ledger = (*database.HistoryStore)(nil)

// Calculator resolves flight specs, estimates them and records every
// successful estimate in the ledger.
type Calculator struct {
	ref       *refdata.ReferenceData
	estimator *emissions.Estimator
	ledger    Ledger
	now       func() time.Time
	logger    *slog.Logger

	// serialises ledger writes for callers sharing one Calculator
	mu sync.Mutex
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock replaces time.Now as the source of history timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) { c.now = now }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) { c.logger = l }
}

func NewCalculator(ref *refdata.ReferenceData, estimator *emissions.Estimator, ledger Ledger, opts ...Option) *Calculator {
	c := &Calculator{
		ref:       ref,
		estimator: estimator,
		ledger:    ledger,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "calculator")
	return c
}

// Reference exposes the loaded tables for listing endpoints.
func (c *Calculator) Reference() *refdata.ReferenceData {
	return c.ref
}

// Estimator exposes the estimator in use.
func (c *Calculator) Estimator() *emissions.Estimator {
	return c.estimator
}

func normalize(spec models.FlightSpec) models.FlightSpec {
	spec.Origin = utils.ParseAirportSelection(spec.Origin)
	spec.Destination = utils.ParseAirportSelection(spec.Destination)
	spec.AircraftType = strings.TrimSpace(spec.AircraftType)
	return spec
}

// ResolveDistance returns the great-circle distance of the airport pair, or
// the manual distance when the spec does not name both airports.
func (c *Calculator) ResolveDistance(spec models.FlightSpec) (float64, error) {
	spec = normalize(spec)

	if spec.HasAirportPair() {
		origin, okOrigin := c.ref.Airport(spec.Origin)
		dest, okDest := c.ref.Airport(spec.Destination)
		var missing []string
		if !okOrigin {
			missing = append(missing, spec.Origin)
		}
		if !okDest {
			missing = append(missing, spec.Destination)
		}
		if len(missing) > 0 {
			return 0, fmt.Errorf("%w: %s not found", ErrInvalidAirportCode, strings.Join(missing, ", "))
		}
		return geo.AirportDistanceKm(origin, dest), nil
	}

	if spec.ManualDistanceKm != nil {
		return *spec.ManualDistanceKm, nil
	}
	return 0, fmt.Errorf("%w: enter origin and destination airports or a distance", emissions.ErrInvalidDistance)
}

// Calculate estimates one flight and appends it to the ledger. Nothing is
// written unless every step succeeds.
func (c *Calculator) Calculate(spec models.FlightSpec) (*models.Calculation, error) {
	spec = normalize(spec)

	c.mu.Lock()
	defer c.mu.Unlock()

	distance, err := c.ResolveDistance(spec)
	if err != nil {
		return nil, err
	}
	factor, ok := c.ref.Factor(spec.AircraftType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown aircraft type %q", emissions.ErrInvalidAircraft, spec.AircraftType)
	}
	result, err := c.estimator.Estimate(distance, factor, spec.RadiativeForcing, spec.SAFBlendPercent)
	if err != nil {
		return nil, err
	}

	entry := models.HistoryEntry{
		Timestamp:        c.now().UTC(),
		Origin:           spec.Origin,
		Destination:      spec.Destination,
		DistanceKm:       result.DistanceKm,
		AircraftType:     spec.AircraftType,
		RadiativeForcing: spec.RadiativeForcing,
		SAFBlendPercent:  spec.SAFBlendPercent,
		CO2Kg:            result.CO2Kg,
		FuelLiters:       result.FuelLiters,
		TreesEquivalent:  result.TreesEquivalent,
		OffsetCost:       result.OffsetCost,
	}
	if err := c.ledger.Append(entry); err != nil {
		c.logger.Error("failed to record calculation", "error", err)
		return nil, fmt.Errorf("failed to record calculation: %w", err)
	}

	c.logger.Info("calculation recorded",
		"origin", entry.Origin, "destination", entry.Destination,
		"distance_km", result.DistanceKm, "aircraft", entry.AircraftType,
		"rf", entry.RadiativeForcing, "saf_pct", entry.SAFBlendPercent,
		"co2_kg", result.CO2Kg)

	return &models.Calculation{
		Spec:   spec,
		Result: result,
		Entry:  entry,
		Advice: c.estimator.Advice(result.DistanceKm),
	}, nil
}

// Compare estimates the same route for every loaded aircraft. It does not
// touch the ledger.
func (c *Calculator) Compare(spec models.FlightSpec) ([]models.AircraftComparison, error) {
	distance, err := c.ResolveDistance(spec)
	if err != nil {
		return nil, err
	}
	return c.estimator.CompareAircraft(distance, c.ref.Factors(), spec.RadiativeForcing, spec.SAFBlendPercent)
}

// History returns the ledger, oldest first.
func (c *Calculator) History() ([]models.HistoryEntry, error) {
	return c.ledger.ReadAll()
}

// Export copies the ledger verbatim to dest.
func (c *Calculator) Export(dest string) error {
	if err := c.ledger.Export(dest); err != nil {
		return err
	}
	c.logger.Info("history exported", "dest", dest)
	return nil
}

// ExportExcel writes the ledger as an .xlsx workbook at dest.
func (c *Calculator) ExportExcel(dest string) error {
	if err := c.ledger.ExportExcel(dest); err != nil {
		return err
	}
	c.logger.Info("history exported", "dest", dest, "format", "xlsx")
	return nil
}

// StreamHistory writes the raw ledger bytes to w.
func (c *Calculator) StreamHistory(w io.Writer) error {
	_, err := c.ledger.WriteTo(w)
	return err
}

// StreamExcel writes the ledger as an .xlsx workbook to w.
func (c *Calculator) StreamExcel(w io.Writer) error {
	return c.ledger.WriteExcel(w)
}

// RenderReport writes the ledger as an HTML page.
func (c *Calculator) RenderReport(w io.Writer) error {
	entries, err := c.ledger.ReadAll()
	if err != nil {
		return err
	}
	return database.RenderHTMLReport(w, entries)
}

// ReplaySpec rebuilds the spec a history entry was calculated from. The
// recorded distance is carried as the manual fallback, so entries without
// airports replay as well.
func ReplaySpec(entry models.HistoryEntry) models.FlightSpec {
	distance := entry.DistanceKm
	return models.FlightSpec{
		Origin:           entry.Origin,
		Destination:      entry.Destination,
		ManualDistanceKm: &distance,
		AircraftType:     entry.AircraftType,
		RadiativeForcing: entry.RadiativeForcing,
		SAFBlendPercent:  entry.SAFBlendPercent,
	}
}
