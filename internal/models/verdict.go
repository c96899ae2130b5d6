package models

// Status is the final validation decision for one invoice.
type Status string

const (
	StatusApproved               Status = "approved"
	StatusApprovedWithConditions Status = "approved_with_conditions"
	StatusRejected               Status = "rejected"

	// StatusError is reserved for catastrophic failures escaping the whole
	// pipeline; it never results from ordinary bad input.
	StatusError Status = "error"
)

// Stage score caps. The four caps sum to 100.
const (
	FieldStageCap      = 25
	CrossRefStageCap   = 30
	ContextualStageCap = 25
	FraudStageCap      = 20
)

// StageResult is the outcome of one validation stage. Score never exceeds
// the stage cap and is never negative.
type StageResult struct {
	Passed bool    `json:"passed"`
	Issues []Issue `json:"issues"`
	Score  int     `json:"score"`
}

// CrossRefResult extends StageResult with lookup details from the ERP
// cross-reference stage.
type CrossRefResult struct {
	StageResult
	Details map[string]interface{} `json:"details"`
}

// FraudResult extends StageResult with the raw risk accumulator, which is
// unbounded and distinct from the capped stage score.
type FraudResult struct {
	StageResult
	RiskScore int `json:"risk_score"`
}

// ValidationVerdict is the aggregate outcome for one invoice. It is created
// once per submission, is immutable, and is passed downstream to explanation
// generation and ledger logging unchanged.
type ValidationVerdict struct {
	OverallScore         int            `json:"overall_score"`
	Status               Status         `json:"status"`
	Issues               []Issue        `json:"issues"`
	BasicValidation      StageResult    `json:"basic_validation"`
	ERPValidation        CrossRefResult `json:"erp_validation"`
	ContextualValidation StageResult    `json:"contextual_validation"`
	FraudDetection       FraudResult    `json:"fraud_detection"`
}

// HasCriticalIssue reports whether any stage produced a critical finding.
func (v *ValidationVerdict) HasCriticalIssue() bool {
	return HasCritical(v.Issues)
}

// CriticalIssues returns the critical findings in stage order.
func (v *ValidationVerdict) CriticalIssues() []Issue {
	out := make([]Issue, 0)
	for _, issue := range v.Issues {
		if issue.Severity == SeverityCritical {
			out = append(out, issue)
		}
	}
	return out
}
