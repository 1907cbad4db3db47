package normalizer

import (
	"fmt"

	"jobnorm/internal/config"
	"jobnorm/internal/logger"
	"jobnorm/internal/models"
)

// Processor runs normalization followed by integrity validation.
type Processor struct {
	normalizer *Normalizer
	validator  *Validator
}

// NewProcessor creates a new processor instance.
func NewProcessor(rules config.RulesConfig, log *logger.Logger) *Processor {
	return &Processor{
		normalizer: NewNormalizer(rules, log),
		validator:  NewValidator(rules.UserRole),
	}
}

// Process normalizes records into a dataset. Per-record problems travel in
// Dataset.Errors; an error return means the dataset itself is inconsistent.
func (p *Processor) Process(records []models.RawJobRecord) (*Dataset, error) {
	// 1. Build the tables
	ds := p.normalizer.Normalize(records)

	// 2. Check the relational invariants
	if err := p.validator.Validate(ds); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return ds, nil
}
