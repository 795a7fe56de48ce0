package refdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const factorsCSV = `AircraftType,EmissionFactor_kgCO2perkm
A320neo,0.095
B737-800,0.115
ATR 72,abc
E190,-0.2
,0.1
B737-800,0.12
Q400,0.08,extra
B787-9,0.21
`

const airportsCSV = `IATA,Name,Latitude,Longitude,Country
del,Indira Gandhi Intl,28.5562,77.1000,India
 BOM ,Chhatrapati Shivaji Maharaj Intl,19.0896,72.8656,India
XXX,Nowhere,north,77.1,Atlantis
YYY,Too Far North,91.0,0,Atlantis
ZZZ,Too Far East,0,180.5,Atlantis
,Blank Code,1,1,Atlantis
LHR,Heathrow,51.4700,-0.4543,United Kingdom
`

func TestParseEmissionFactorsCsv(t *testing.T) {
	factors, report, err := ParseEmissionFactorsCsv(strings.NewReader(factorsCSV))
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"A320neo":  0.095,
		"B737-800": 0.12, // last occurrence wins
		"B787-9":   0.21,
	}, factors)
	assert.Equal(t, 3, report.Loaded)

	require.Len(t, report.Skipped, 4)
	lines := []int{report.Skipped[0].Line, report.Skipped[1].Line, report.Skipped[2].Line, report.Skipped[3].Line}
	assert.Equal(t, []int{4, 5, 6, 8}, lines)
	assert.Contains(t, report.Skipped[0].Reason, "ATR 72")
	assert.Contains(t, report.Skipped[1].Reason, "not positive")
	assert.Contains(t, report.Skipped[2].Reason, "empty aircraft type")
	assert.Contains(t, report.Skipped[3].Reason, "malformed CSV row")
}

func TestParseAirportsCsv(t *testing.T) {
	airports, report, err := ParseAirportsCsv(strings.NewReader(airportsCSV))
	require.NoError(t, err)

	require.Len(t, airports, 3)
	assert.Equal(t, 3, report.Loaded)
	assert.Len(t, report.Skipped, 4)

	del, ok := airports["DEL"]
	require.True(t, ok, "codes are upper-cased")
	assert.Equal(t, "Indira Gandhi Intl", del.Name)
	assert.Equal(t, 28.5562, del.Latitude)
	assert.Equal(t, 77.1, del.Longitude)
	assert.Equal(t, "India", del.Country)

	_, ok = airports["BOM"]
	assert.True(t, ok, "codes are trimmed")
	for _, code := range []string{"XXX", "YYY", "ZZZ", ""} {
		_, ok := airports[code]
		assert.False(t, ok, code)
	}
}

func TestParseRejectsMissingColumns(t *testing.T) {
	_, _, err := ParseEmissionFactorsCsv(strings.NewReader("Aircraft,Factor\nA320,0.1\n"))
	assert.ErrorIs(t, err, ErrMalformedTable)

	_, _, err = ParseAirportsCsv(strings.NewReader("IATA,Name,Latitude,Country\nDEL,x,1,India\n"))
	assert.ErrorIs(t, err, ErrMalformedTable)
	assert.Contains(t, err.Error(), "Longitude")
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, _, err := ParseEmissionFactorsCsv(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedTable)
}

func TestParseHeaderOnly(t *testing.T) {
	factors, report, err := ParseEmissionFactorsCsv(strings.NewReader("AircraftType,EmissionFactor_kgCO2perkm\n"))
	require.NoError(t, err)
	assert.Empty(t, factors)
	assert.Empty(t, report.Skipped)
}

func TestLoadMissingSourceIsFatal(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadEmissionFactors(filepath.Join(dir, "nope.csv"))
	assert.ErrorIs(t, err, ErrMissingDataSource)

	_, _, err = LoadAirports(filepath.Join(dir, "nope.csv"))
	assert.ErrorIs(t, err, ErrMissingDataSource)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fp := writeFile(t, dir, "factors.csv", factorsCSV)
	ap := writeFile(t, dir, "airports.csv", airportsCSV)

	rd, err := Load(fp, ap, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A320neo", "B737-800", "B787-9"}, rd.AircraftTypes())
	f, ok := rd.Factor("B787-9")
	assert.True(t, ok)
	assert.Equal(t, 0.21, f)
	_, ok = rd.Factor("ATR 72")
	assert.False(t, ok)

	a, ok := rd.Airport(" lhr")
	require.True(t, ok)
	assert.Equal(t, "Heathrow", a.Name)

	codes := []string{}
	for _, a := range rd.Airports() {
		codes = append(codes, a.IATA)
	}
	assert.Equal(t, []string{"BOM", "DEL", "LHR"}, codes)

	assert.Equal(t, fp, rd.FactorsReport.Source)
	assert.Len(t, rd.FactorsReport.Skipped, 4)
	assert.Equal(t, ap, rd.AirportsReport.Source)
	assert.Len(t, rd.AirportsReport.Skipped, 4)

	ef := rd.EmissionFactors()
	require.Len(t, ef, 3)
	assert.Equal(t, "A320neo", ef[0].AircraftType)
	assert.Equal(t, 0.095, ef[0].FactorKgCO2PerKm)
}

func TestLoadFailsWhenEitherTableMissing(t *testing.T) {
	dir := t.TempDir()
	fp := writeFile(t, dir, "factors.csv", factorsCSV)

	_, err := Load(fp, filepath.Join(dir, "airports.csv"), nil)
	assert.ErrorIs(t, err, ErrMissingDataSource)
}

func TestFactorsReturnsCopy(t *testing.T) {
	rd := New(map[string]float64{"A320": 0.1}, nil)
	m := rd.Factors()
	m["A320"] = 99

	f, _ := rd.Factor("A320")
	assert.Equal(t, 0.1, f)
}
