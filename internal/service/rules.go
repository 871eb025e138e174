package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/errors"
	"github.com/stylesyncapp/stylesync-server/internal/id"
	"github.com/stylesyncapp/stylesync-server/internal/store"
)

// RulesService owns the dynamic rule set: reads, audited mutations, and
// history. It is an explicitly injected service, not ambient global state,
// so tests can run against fixture rule sets.
//
// Reads go straight to the store's MVCC snapshots. Writes take the service
// mutex, making the read-modify-append sequence atomic with respect to other
// writers: at most one patch commits per call, and a failed patch leaves
// both the rule set and history unchanged.
type RulesService struct {
	store  *store.Store
	logger *slog.Logger

	writeMu sync.Mutex
}

// NewRulesService creates the rules service and ensures a live rule set
// exists, seeding defaults on first run.
func NewRulesService(ctx context.Context, st *store.Store, logger *slog.Logger) (*RulesService, error) {
	svc := &RulesService{
		store:  st,
		logger: logger,
	}

	if _, created, err := st.EnsureRuleSet(ctx); err != nil {
		return nil, fmt.Errorf("ensure rule set: %w", err)
	} else if created {
		logger.Info("dynamic rule set seeded with defaults")
	}

	return svc, nil
}

// Get returns a read-only snapshot of the live rule set.
func (s *RulesService) Get(ctx context.Context) (*domain.DynamicRuleSet, error) {
	return s.store.GetRuleSet(ctx)
}

// Patch sets one scalar leaf addressed by a dot path, appending exactly one
// change entry on success. An unresolvable path fails with
// errors.ErrRulePathNotFound and no state change.
func (s *RulesService) Patch(ctx context.Context, actorID, rulePath string, newValue any) (*domain.RuleChangeEntry, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ruleset, err := s.store.GetRuleSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rule set: %w", err)
	}

	oldValue, err := ruleset.Apply(rulePath, newValue)
	if err != nil {
		return nil, err
	}

	entry, err := s.commit(ctx, ruleset, actorID, rulePath, oldValue, newValue)
	if err != nil {
		return nil, err
	}

	s.logger.Info("rule patched",
		"rule_path", rulePath,
		"actor_id", actorID,
		"old_value", oldValue,
		"new_value", newValue,
	)

	return entry, nil
}

// UpsertMaterialClimateRule creates or overwrites one material climate entry.
// Exactly one history entry is appended either way; for an overwrite the
// entry's old value is the replaced rule. The material name is lowercased
// before the write: every reader of the climate map keys by the lowercased
// item material, so a verbatim mixed-case key would never be consulted.
func (s *RulesService) UpsertMaterialClimateRule(ctx context.Context, actorID, material string, minTempF, maxTempF float64) (*domain.RuleChangeEntry, error) {
	material = strings.ToLower(strings.TrimSpace(material))
	if material == "" {
		return nil, errors.Validation("material name is required")
	}
	if strings.Contains(material, ".") {
		return nil, errors.Validationf("material name %q must not contain dots", material)
	}
	if minTempF > maxTempF {
		return nil, errors.Validationf("minTempF %.0f exceeds maxTempF %.0f", minTempF, maxTempF)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ruleset, err := s.store.GetRuleSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rule set: %w", err)
	}

	var oldValue any
	if existing, ok := ruleset.MaterialClimateRules[material]; ok {
		oldValue = existing
	}
	newRule := domain.MaterialClimateRule{MinTempF: minTempF, MaxTempF: maxTempF}
	ruleset.MaterialClimateRules[material] = newRule

	rulePath := "materialClimateRules." + material
	entry, err := s.commit(ctx, ruleset, actorID, rulePath, oldValue, newRule)
	if err != nil {
		return nil, err
	}

	s.logger.Info("material climate rule upserted",
		"material", material,
		"actor_id", actorID,
		"min_temp_f", minTempF,
		"max_temp_f", maxTempF,
	)

	return entry, nil
}

// History lists change entries newest-first. It never mutates state.
func (s *RulesService) History(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.RuleChangeEntry], error) {
	return s.store.ListHistory(ctx, params)
}

// commit stamps the mutation metadata, builds the change entry, and persists
// both in one store transaction. Caller holds writeMu.
func (s *RulesService) commit(ctx context.Context, ruleset *domain.DynamicRuleSet, actorID, rulePath string, oldValue, newValue any) (*domain.RuleChangeEntry, error) {
	now := time.Now().UTC()
	ruleset.Metadata.LastUpdatedAt = now

	entryID, err := id.Generate("chg")
	if err != nil {
		return nil, fmt.Errorf("generate change id: %w", err)
	}

	entry := &domain.RuleChangeEntry{
		ID:        entryID,
		Timestamp: now,
		ActorID:   actorID,
		RulePath:  rulePath,
		OldValue:  oldValue,
		NewValue:  newValue,
	}

	if err := s.store.CommitRuleChange(ctx, ruleset, entry); err != nil {
		return nil, fmt.Errorf("commit rule change: %w", err)
	}

	return entry, nil
}
