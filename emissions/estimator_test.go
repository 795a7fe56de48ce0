package emissions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const a320Factor = 0.115

func newTestEstimator(t *testing.T) *Estimator {
	t.Helper()
	e, err := NewEstimator(DefaultConstants())
	require.NoError(t, err)
	return e
}

func TestEstimateScenarios(t *testing.T) {
	e := newTestEstimator(t)

	t.Run("no RF no SAF", func(t *testing.T) {
		r, err := e.Estimate(1000, a320Factor, false, 0)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, r.DistanceKm)
		assert.InDelta(t, 165.0, r.CO2Kg, 1e-9)
		assert.InDelta(t, 65.27, r.FuelLiters, 0.01)
		assert.InDelta(t, 7.5, r.TreesEquivalent, 1e-9)
		assert.InDelta(t, 99.0, r.OffsetCost, 1e-9)
	})

	t.Run("RF applied after LTO", func(t *testing.T) {
		r, err := e.Estimate(1000, a320Factor, true, 0)
		require.NoError(t, err)
		assert.InDelta(t, 313.5, r.CO2Kg, 1e-9)
	})

	t.Run("RF and 50 percent SAF", func(t *testing.T) {
		r, err := e.Estimate(1000, a320Factor, true, 50)
		require.NoError(t, err)
		assert.InDelta(t, 188.1, r.CO2Kg, 1e-9)
		assert.InDelta(t, 188.1/3.16/0.8, r.FuelLiters, 1e-9)
	})
}

func TestLTOSurchargeBoundary(t *testing.T) {
	e := newTestEstimator(t)

	assert.Equal(t, 50.0, e.LTOSurcharge(0))
	assert.Equal(t, 50.0, e.LTOSurcharge(1500))
	assert.Equal(t, 150.0, e.LTOSurcharge(1500.001))

	short, err := e.Estimate(1500, a320Factor, false, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1500*a320Factor+50, short.CO2Kg, 1e-9)

	long, err := e.Estimate(1500.001, a320Factor, false, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1500.001*a320Factor+150, long.CO2Kg, 1e-9)
}

func TestCO2StrictlyIncreasingInDistance(t *testing.T) {
	e := newTestEstimator(t)
	distances := []float64{0, 1, 100, 349.9, 350, 1000, 1499.999, 1500, 1500.001, 2000, 9000, 15000}

	for _, rf := range []bool{false, true} {
		for _, saf := range []int{0, 30, 100} {
			prev := -1.0
			for _, d := range distances {
				r, err := e.Estimate(d, a320Factor, rf, saf)
				require.NoError(t, err)
				assert.Greater(t, r.CO2Kg, prev, "distance %v rf=%v saf=%d", d, rf, saf)
				prev = r.CO2Kg
			}
		}
	}
}

func TestZeroSAFAppliesNoReduction(t *testing.T) {
	e := newTestEstimator(t)
	for _, d := range []float64{0, 420, 1500, 7300} {
		for _, rf := range []bool{false, true} {
			r, err := e.Estimate(d, 0.09, rf, 0)
			require.NoError(t, err)

			want := d*0.09 + e.LTOSurcharge(d)
			if rf {
				want *= 1.9
			}
			assert.Equal(t, want, r.CO2Kg)
		}
	}
}

func TestFullSAFRemovesEightyPercent(t *testing.T) {
	e := newTestEstimator(t)
	for _, d := range []float64{10, 1500, 6000} {
		base, err := e.Estimate(d, a320Factor, true, 0)
		require.NoError(t, err)
		full, err := e.Estimate(d, a320Factor, true, 100)
		require.NoError(t, err)

		assert.InDelta(t, 0.2*base.CO2Kg, full.CO2Kg, 1e-9)
	}
}

func TestEstimateZeroDistanceStillChargesLTO(t *testing.T) {
	e := newTestEstimator(t)
	r, err := e.Estimate(0, a320Factor, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, r.CO2Kg)
}

func TestEstimateRejectsInvalidInput(t *testing.T) {
	e := newTestEstimator(t)
	tests := []struct {
		name     string
		distance float64
		factor   float64
		saf      int
		want     error
	}{
		{"negative distance", -1, a320Factor, 0, ErrInvalidDistance},
		{"NaN distance", math.NaN(), a320Factor, 0, ErrInvalidDistance},
		{"infinite distance", math.Inf(1), a320Factor, 0, ErrInvalidDistance},
		{"zero factor", 1000, 0, 0, ErrInvalidAircraft},
		{"negative factor", 1000, -0.1, 0, ErrInvalidAircraft},
		{"SAF below range", 1000, a320Factor, -1, ErrInvalidSafBlend},
		{"SAF above range", 1000, a320Factor, 101, ErrInvalidSafBlend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Estimate(tt.distance, tt.factor, false, tt.saf)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEstimateAcceptsSAFAboveUICeiling(t *testing.T) {
	e := newTestEstimator(t)
	r, err := e.Estimate(1000, a320Factor, false, 75)
	require.NoError(t, err)
	assert.InDelta(t, 165.0*0.4, r.CO2Kg, 1e-9)
}

func TestCustomConstants(t *testing.T) {
	c := DefaultConstants()
	c.RFMultiplier = 2.0
	c.OffsetCostPerKg = 1.0
	e, err := NewEstimator(c)
	require.NoError(t, err)

	r, err := e.Estimate(1000, a320Factor, true, 0)
	require.NoError(t, err)
	assert.InDelta(t, 330.0, r.CO2Kg, 1e-9)
	assert.InDelta(t, 330.0, r.OffsetCost, 1e-9)
}

func TestNewEstimatorRejectsBadConstants(t *testing.T) {
	tests := map[string]func(*Constants){
		"zero density":       func(c *Constants) { c.FuelDensityKgPerLiter = 0 },
		"zero tree uptake":   func(c *Constants) { c.TreeAbsorptionKgPerYear = 0 },
		"negative LTO":       func(c *Constants) { c.LongHaulLTOKg = -5 },
		"SAF reduction > 1":  func(c *Constants) { c.SAFMaxReduction = 1.2 },
		"NaN rf multiplier":  func(c *Constants) { c.RFMultiplier = math.NaN() },
		"negative threshold": func(c *Constants) { c.ShortHaulMaxKm = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConstants()
			mutate(&c)
			_, err := NewEstimator(c)
			assert.Error(t, err)
		})
	}
}

func TestCompareAircraft(t *testing.T) {
	e := newTestEstimator(t)
	factors := map[string]float64{"B737-800": 0.12, "A320neo": 0.095, "ATR 72": 0.07}

	got, err := e.CompareAircraft(1000, factors, false, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "A320neo", got[0].AircraftType)
	assert.Equal(t, "ATR 72", got[1].AircraftType)
	assert.Equal(t, "B737-800", got[2].AircraftType)
	assert.InDelta(t, 145.0, got[0].CO2Kg, 1e-9)
	assert.InDelta(t, 120.0, got[1].CO2Kg, 1e-9)
	assert.InDelta(t, 170.0, got[2].CO2Kg, 1e-9)

	_, err = e.CompareAircraft(1000, factors, false, 120)
	assert.ErrorIs(t, err, ErrInvalidSafBlend)
}

func TestAdvice(t *testing.T) {
	e := newTestEstimator(t)
	assert.Contains(t, e.Advice(200), "train or bus")
	assert.Contains(t, e.Advice(350), "Medium-haul")
	assert.Contains(t, e.Advice(1499), "Medium-haul")
	assert.Contains(t, e.Advice(1500), "Long-haul")
}
