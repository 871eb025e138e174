package domain

import "time"

// RuleChangeEntry records one successful mutation of the dynamic rule set.
// Entries are append-only: they are never mutated or deleted, and together
// they form a full replayable history of the rule set.
type RuleChangeEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id"`
	RulePath  string    `json:"rule_path"`
	OldValue  any       `json:"old_value"`
	NewValue  any       `json:"new_value"`
}
