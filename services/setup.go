// backend/services/setup.go
package services

import (
	"fmt"
	"log/slog"

	"github.com/gewnthar/greenskies/backend/config"
	"github.com/gewnthar/greenskies/backend/database"
	"github.com/gewnthar/greenskies/backend/emissions"
	"github.com/gewnthar/greenskies/backend/refdata"
)

// NewFromConfig loads the reference tables and wires a Calculator over the
// configured ledger. A missing reference table is returned as
// refdata.ErrMissingDataSource and must abort startup.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Calculator, error) {
	logger.Info("loading reference data",
		"emission_factors", cfg.DataFiles.EmissionFactors,
		"airports", cfg.DataFiles.Airports)

	ref, err := refdata.Load(cfg.DataFiles.EmissionFactors, cfg.DataFiles.Airports, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	estimator, err := emissions.NewEstimator(cfg.Emissions)
	if err != nil {
		return nil, fmt.Errorf("invalid emission constants: %w", err)
	}
	store := database.NewHistoryStore(cfg.DataFiles.History)

	return NewCalculator(ref, estimator, store, WithLogger(logger)), nil
}
