// backend/database/history_store.go

// Package database holds the calculation ledger: an append-only CSV file that
// is only ever extended, read back in insertion order, or copied out.
package database

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/gewnthar/greenskies/backend/models"
)

// ErrNoHistoryAvailable is returned by exports when nothing has been appended yet.
var ErrNoHistoryAvailable = errors.New("no history available")

// HistoryColumns is the ledger header, in file order.
var HistoryColumns = []string{
	"timestamp", "origin", "destination", "distance_km", "aircraft", "rf",
	"saf_pct", "co2_kg", "fuel_liters", "trees", "offset_inr",
}

// oneDecimal renders as a fixed one-decimal number in the ledger.
type oneDecimal float64

func (d oneDecimal) MarshalCSV() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(d), 'f', 1, 64), nil
}

func (d *oneDecimal) UnmarshalCSV(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*d = oneDecimal(v)
	return nil
}

// historyRow is the on-disk shape of a HistoryEntry. Field order is column order.
type historyRow struct {
	Timestamp   time.Time  `csv:"timestamp"`
	Origin      string     `csv:"origin"`
	Destination string     `csv:"destination"`
	DistanceKm  oneDecimal `csv:"distance_km"`
	Aircraft    string     `csv:"aircraft"`
	RF          bool       `csv:"rf"`
	SAFPercent  int        `csv:"saf_pct"`
	CO2Kg       oneDecimal `csv:"co2_kg"`
	FuelLiters  oneDecimal `csv:"fuel_liters"`
	Trees       oneDecimal `csv:"trees"`
	OffsetINR   oneDecimal `csv:"offset_inr"`
}

func toRow(e models.HistoryEntry) historyRow {
	return historyRow{
		Timestamp:   e.Timestamp.UTC(),
		Origin:      e.Origin,
		Destination: e.Destination,
		DistanceKm:  oneDecimal(e.DistanceKm),
		Aircraft:    e.AircraftType,
		RF:          e.RadiativeForcing,
		SAFPercent:  e.SAFBlendPercent,
		CO2Kg:       oneDecimal(e.CO2Kg),
		FuelLiters:  oneDecimal(e.FuelLiters),
		Trees:       oneDecimal(e.TreesEquivalent),
		OffsetINR:   oneDecimal(e.OffsetCost),
	}
}

func (r historyRow) entry() models.HistoryEntry {
	return models.HistoryEntry{
		Timestamp:        r.Timestamp.UTC(),
		Origin:           r.Origin,
		Destination:      r.Destination,
		DistanceKm:       float64(r.DistanceKm),
		AircraftType:     r.Aircraft,
		RadiativeForcing: r.RF,
		SAFBlendPercent:  r.SAFPercent,
		CO2Kg:            float64(r.CO2Kg),
		FuelLiters:       float64(r.FuelLiters),
		TreesEquivalent:  float64(r.Trees),
		OffsetCost:       float64(r.OffsetINR),
	}
}

// HistoryStore is the ledger backed by a single CSV file. It assumes one
// writer at a time and does no locking of its own.
type HistoryStore struct {
	path string
}

// NewHistoryStore returns a store over path. The file is not touched until the first Append.
func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Path is the location of the backing file.
func (s *HistoryStore) Path() string {
	return s.path
}

// Append writes one entry to the end of the ledger, creating the file and
// its header row on first use, and syncs before returning.
func (s *HistoryStore) Append(entry models.HistoryEntry) error {
	writeHeader, err := s.isEmpty()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = writeHeader
	if err := enc.Encode(toRow(entry)); err != nil {
		return fmt.Errorf("failed to encode history row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write history row to %s: %w", s.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync history file %s: %w", s.path, err)
	}
	return f.Close()
}

// ReadAll returns every entry, oldest first. A ledger that has never been
// written reads as empty.
func (s *HistoryStore) ReadAll() ([]models.HistoryEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file %s: %w", s.path, err)
	}
	defer f.Close()

	return decodeHistory(f)
}

func decodeHistory(r io.Reader) ([]models.HistoryEntry, error) {
	entries := []models.HistoryEntry{}

	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if errors.Is(err, io.EOF) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history header: %w", err)
	}

	for line := 2; ; line++ {
		var row historyRow
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		entries = append(entries, row.entry())
	}
}

// Count returns the number of entries in the ledger.
func (s *HistoryStore) Count() (int, error) {
	entries, err := s.ReadAll()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Export copies the ledger byte for byte to dest, replacing dest if it exists.
func (s *HistoryStore) Export(dest string) error {
	empty, err := s.isEmpty()
	if err != nil {
		return err
	}
	if empty {
		return ErrNoHistoryAvailable
	}
	if same, err := s.sameFile(dest); err != nil {
		return err
	} else if same {
		return fmt.Errorf("export destination %s is the history file itself", dest)
	}

	src, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open history file %s: %w", s.path, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to copy history to %s: %w", dest, err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("failed to sync export file %s: %w", dest, err)
	}
	return out.Close()
}

// WriteTo streams the raw ledger bytes to w.
func (s *HistoryStore) WriteTo(w io.Writer) (int64, error) {
	empty, err := s.isEmpty()
	if err != nil {
		return 0, err
	}
	if empty {
		return 0, ErrNoHistoryAvailable
	}
	f, err := os.Open(s.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open history file %s: %w", s.path, err)
	}
	defer f.Close()
	return io.Copy(w, f)
}

func (s *HistoryStore) isEmpty() (bool, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat history file %s: %w", s.path, err)
	}
	return info.Size() == 0, nil
}

func (s *HistoryStore) sameFile(dest string) (bool, error) {
	destInfo, err := os.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat export destination %s: %w", dest, err)
	}
	srcInfo, err := os.Stat(s.path)
	if err != nil {
		return false, fmt.Errorf("failed to stat history file %s: %w", s.path, err)
	}
	return os.SameFile(srcInfo, destInfo), nil
}
