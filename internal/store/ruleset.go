package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/stylesyncapp/stylesync-server/internal/domain"
)

const keyRuleSet = "ruleset:current"

// GetRuleSet retrieves the live dynamic rule set.
func (s *Store) GetRuleSet(ctx context.Context) (*domain.DynamicRuleSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ruleset domain.DynamicRuleSet
	err := s.get([]byte(keyRuleSet), &ruleset)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrRuleSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rule set: %w", err)
	}
	return &ruleset, nil
}

// PutRuleSet overwrites the live dynamic rule set without recording a change
// entry. Normal mutations go through CommitRuleChange; this exists for
// seeding and restores.
func (s *Store) PutRuleSet(ctx context.Context, ruleset *domain.DynamicRuleSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.set([]byte(keyRuleSet), ruleset); err != nil {
		return fmt.Errorf("put rule set: %w", err)
	}
	return nil
}

// EnsureRuleSet initializes the rule set with defaults if none exists yet.
// Returns the live rule set and whether it was newly created.
func (s *Store) EnsureRuleSet(ctx context.Context) (*domain.DynamicRuleSet, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	existing, err := s.GetRuleSet(ctx)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrRuleSetNotFound) {
		return nil, false, err
	}

	ruleset := domain.NewDefaultRuleSet()
	if err := s.set([]byte(keyRuleSet), ruleset); err != nil {
		return nil, false, fmt.Errorf("initialize rule set: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Initialized default dynamic rule set",
			"version", ruleset.Metadata.Version,
			"materials", len(ruleset.MaterialClimateRules),
		)
	}

	return ruleset, true, nil
}

// CommitRuleChange persists an updated rule set and its change entry in one
// transaction. Either both writes land or neither does, so a history entry
// can never reference a rule-set state that was not saved (and vice versa).
func (s *Store) CommitRuleChange(ctx context.Context, ruleset *domain.DynamicRuleSet, entry *domain.RuleChangeEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rulesetData, err := json.Marshal(ruleset)
	if err != nil {
		return fmt.Errorf("marshal rule set: %w", err)
	}
	entryData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal change entry: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyRuleSet), rulesetData); err != nil {
			return fmt.Errorf("set rule set: %w", err)
		}
		if err := txn.Set(historyKey(entry), entryData); err != nil {
			return fmt.Errorf("set change entry: %w", err)
		}
		return nil
	})
}
