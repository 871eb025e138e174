package domain

// Severity classifies how an issue affects outfit acceptance.
type Severity string

// Severity tiers, ordered: hard > soft > situational.
const (
	SeverityHard        Severity = "hard"        // rule violation that invalidates the outfit
	SeveritySoft        Severity = "soft"        // surfaced to the user, does not block
	SeveritySituational Severity = "situational" // informational only
)

// IssueKind identifies which check produced an issue.
type IssueKind string

// Issue kinds.
const (
	IssueStructural      IssueKind = "structural"
	IssueStyleConflict   IssueKind = "style_conflict"
	IssueMaterialPair    IssueKind = "material_pair"
	IssueMaterialClimate IssueKind = "material_climate"
	IssueOccasion        IssueKind = "occasion"
	IssueColor           IssueKind = "color"
)

// Issue describes one rule violation or annotation found during evaluation.
type Issue struct {
	Kind       IssueKind  `json:"kind"`
	Severity   Severity   `json:"severity"`
	ItemRefs   []string   `json:"item_refs,omitempty"`
	Rule       string     `json:"rule,omitempty"`
	Keyword    string     `json:"keyword,omitempty"`
	Importance Importance `json:"importance,omitempty"`
	RiskLevel  RiskLevel  `json:"risk_level,omitempty"`
	Reason     string     `json:"reason"`
}

// ValidationResult is the single return value of an evaluation call.
// Hard errors force Valid=false; warnings and notes never do.
type ValidationResult struct {
	Valid            bool    `json:"valid"`
	HardErrors       []Issue `json:"hard_errors"`
	SoftWarnings     []Issue `json:"soft_warnings"`
	SituationalNotes []Issue `json:"situational_notes"`
}

// NewValidationResult creates an empty, valid result with non-nil slices so
// JSON output is stable ([] rather than null).
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:            true,
		HardErrors:       []Issue{},
		SoftWarnings:     []Issue{},
		SituationalNotes: []Issue{},
	}
}

// Add routes an issue to the matching tier and flips Valid on hard errors.
func (r *ValidationResult) Add(issue Issue) {
	switch issue.Severity {
	case SeverityHard:
		r.HardErrors = append(r.HardErrors, issue)
		r.Valid = false
	case SeveritySoft:
		r.SoftWarnings = append(r.SoftWarnings, issue)
	case SeveritySituational:
		r.SituationalNotes = append(r.SituationalNotes, issue)
	}
}

// Merge appends all issues from other into r.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for _, i := range other.HardErrors {
		r.Add(i)
	}
	for _, i := range other.SoftWarnings {
		r.Add(i)
	}
	for _, i := range other.SituationalNotes {
		r.Add(i)
	}
}
