package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationResult_Add_SeverityRouting(t *testing.T) {
	r := NewValidationResult()
	assert.True(t, r.Valid)

	r.Add(Issue{Kind: IssueStyleConflict, Severity: SeveritySoft, Reason: "warn"})
	assert.True(t, r.Valid)
	assert.Len(t, r.SoftWarnings, 1)

	r.Add(Issue{Kind: IssueStyleConflict, Severity: SeveritySituational, Reason: "note"})
	assert.True(t, r.Valid)
	assert.Len(t, r.SituationalNotes, 1)

	r.Add(Issue{Kind: IssueStructural, Severity: SeverityHard, Reason: "fail"})
	assert.False(t, r.Valid)
	assert.Len(t, r.HardErrors, 1)
}

func TestNewValidationResult_EmptySlices(t *testing.T) {
	r := NewValidationResult()

	// Non-nil so JSON output is [] rather than null.
	assert.NotNil(t, r.HardErrors)
	assert.NotNil(t, r.SoftWarnings)
	assert.NotNil(t, r.SituationalNotes)
}

func TestValidationResult_Merge(t *testing.T) {
	a := NewValidationResult()
	a.Add(Issue{Severity: SeveritySoft, Reason: "one"})

	b := NewValidationResult()
	b.Add(Issue{Severity: SeverityHard, Reason: "two"})
	b.Add(Issue{Severity: SeveritySituational, Reason: "three"})

	a.Merge(b)
	assert.False(t, a.Valid)
	assert.Len(t, a.HardErrors, 1)
	assert.Len(t, a.SoftWarnings, 1)
	assert.Len(t, a.SituationalNotes, 1)

	a.Merge(nil)
	assert.Len(t, a.HardErrors, 1)
}
