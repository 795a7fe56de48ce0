// backend/emissions/advice.go
package emissions

// Advice returns a one-line suggestion for travellers based on route length.
func (e *Estimator) Advice(distanceKm float64) string {
	switch {
	case distanceKm < e.c.SurfaceTransportMaxKm:
		return "Short route detected. Consider train or bus alternatives for lower emissions."
	case distanceKm < e.c.MediumHaulMaxKm:
		return "Medium-haul flight. Choose direct flights and fuel-efficient aircraft when possible."
	default:
		return "Long-haul flight. Consider carbon offsets and airlines with SAF programs."
	}
}
