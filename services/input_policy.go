// backend/services/input_policy.go
package services

import (
	"fmt"

	"github.com/gewnthar/greenskies/backend/emissions"
	"github.com/gewnthar/greenskies/backend/models"
)

// InputPolicy holds product-level limits that the interactive surfaces (CLI,
// HTTP) apply before calling the Calculator. The estimator's own domain is wider.
type InputPolicy struct {
	MaxSAFBlendPercent int
}

// Check rejects specs outside the product limits.
func (p InputPolicy) Check(spec models.FlightSpec) error {
	if spec.SAFBlendPercent > p.MaxSAFBlendPercent {
		return fmt.Errorf("%w: %d%% exceeds the configured maximum of %d%%",
			emissions.ErrInvalidSafBlend, spec.SAFBlendPercent, p.MaxSAFBlendPercent)
	}
	return nil
}
