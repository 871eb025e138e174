package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/errors"
	"github.com/stylesyncapp/stylesync-server/internal/evaluator"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

// batchWorkers bounds the fan-out when validating many candidates at once.
const batchWorkers = 4

// MaxBatchSize limits how many candidates one batch call may carry.
const MaxBatchSize = 50

// ValidationService validates candidate outfits. Each call reads one dynamic
// rule-set snapshot, so results are consistent even while an administrator
// is editing rules concurrently.
type ValidationService struct {
	evaluator *evaluator.Evaluator
	rules     *RulesService
	logger    *slog.Logger
}

// NewValidationService creates the validation service.
func NewValidationService(eval *evaluator.Evaluator, rules *RulesService, logger *slog.Logger) *ValidationService {
	return &ValidationService{
		evaluator: eval,
		rules:     rules,
		logger:    logger,
	}
}

// Validate evaluates one candidate outfit against a context.
func (s *ValidationService) Validate(ctx context.Context, outfit domain.Outfit, octx domain.OutfitContext) (*domain.ValidationResult, error) {
	octx, err := normalizeContext(octx)
	if err != nil {
		return nil, err
	}

	ruleset, err := s.rules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rule set snapshot: %w", err)
	}

	result := s.evaluator.Evaluate(outfit, octx, ruleset)

	s.logger.Debug("outfit validated",
		"aesthetic", octx.Aesthetic,
		"activity", octx.Activity,
		"items", len(outfit.Items),
		"valid", result.Valid,
		"hard_errors", len(result.HardErrors),
	)

	return result, nil
}

// ValidateBatch evaluates up to MaxBatchSize candidates concurrently over a
// single rule-set snapshot. Results are returned in input order. Safe to run
// in parallel because evaluation only reads shared immutable state.
func (s *ValidationService) ValidateBatch(ctx context.Context, outfits []domain.Outfit, octx domain.OutfitContext) ([]*domain.ValidationResult, error) {
	if len(outfits) == 0 {
		return []*domain.ValidationResult{}, nil
	}
	if len(outfits) > MaxBatchSize {
		return nil, errors.Validationf("batch size %d exceeds maximum of %d", len(outfits), MaxBatchSize)
	}
	octx, err := normalizeContext(octx)
	if err != nil {
		return nil, err
	}

	ruleset, err := s.rules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rule set snapshot: %w", err)
	}

	results := make([]*domain.ValidationResult, len(outfits))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := batchWorkers
	if len(outfits) < workers {
		workers = len(outfits)
	}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = s.evaluator.Evaluate(outfits[idx], octx, ruleset)
			}
		}()
	}

	for i := range outfits {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// normalizeContext rejects contexts referencing unknown taxonomy values and
// canonicalizes casing so downstream index lookups match.
func normalizeContext(octx domain.OutfitContext) (domain.OutfitContext, error) {
	aesthetic, ok := taxonomy.ParseAesthetic(string(octx.Aesthetic))
	if !ok {
		return octx, errors.Validationf("unknown style aesthetic %q", octx.Aesthetic)
	}
	octx.Aesthetic = aesthetic

	checks := []struct {
		family taxonomy.Family
		value  *taxonomy.Subtype
	}{
		{taxonomy.FamilyFormality, &octx.Formality},
		{taxonomy.FamilyActivity, &octx.Activity},
		{taxonomy.FamilyWeather, &octx.Weather},
		{taxonomy.FamilyMood, &octx.Mood},
		{taxonomy.FamilyTheme, &octx.Theme},
	}
	for _, c := range checks {
		if *c.value == "" {
			continue // theme is optional; other families may be omitted by minimal callers
		}
		sub, ok := taxonomy.ParseSubtype(c.family, string(*c.value))
		if !ok {
			return octx, errors.Validationf("unknown %s subtype %q", c.family, *c.value)
		}
		*c.value = sub
	}
	return octx, nil
}
