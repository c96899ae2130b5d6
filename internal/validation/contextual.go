package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

var (
	cfoApprovalThreshold = decimal.NewFromInt(50000)
	yearEndThreshold     = decimal.NewFromInt(10000)
)

// ContextualValidator applies business-timing and reasonableness heuristics.
// A parse failure of the amount or date aborts the stage with a single issue
// describing the failure; malformed input degrades the score, never crashes
// the pipeline.
type ContextualValidator struct{}

// NewContextualValidator creates the contextual heuristics validator.
func NewContextualValidator() *ContextualValidator {
	return &ContextualValidator{}
}

// Validate returns the stage result. Score is tiered: the full cap with zero
// issues, 10 with exactly one, zero with two or more.
func (v *ContextualValidator) Validate(rec *models.InvoiceRecord, now time.Time) models.StageResult {
	issues := make([]models.Issue, 0)

	amount := decimal.Zero
	if rec.Amount.Defined {
		if !rec.Amount.Valid {
			return contextualAborted("Contextual validation failed: invalid amount format")
		}
		amount = rec.Amount.Value
	}

	invoiceDate, err := time.Parse(DateLayout, rec.Date)
	if err != nil {
		return contextualAborted("Contextual validation failed: invalid date format")
	}

	if wd := invoiceDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
		issues = append(issues, models.Warning("WARNING: Invoice dated on weekend"))
	}

	if len(rec.InvoiceID) < 5 {
		issues = append(issues, models.Info("Invoice ID too short for proper tracking"))
	}

	if amount.GreaterThan(cfoApprovalThreshold) {
		issues = append(issues, models.Info("High-value invoice requires CFO approval"))
	}

	if len(strings.Fields(rec.VendorName)) < 2 {
		issues = append(issues, models.Warning("WARNING: Vendor name seems incomplete"))
	}

	if now.Month() == time.December && amount.GreaterThan(yearEndThreshold) {
		issues = append(issues, models.Info("Year-end high-value invoice - verify budget availability"))
	}

	return models.StageResult{
		Passed: len(issues) == 0,
		Issues: issues,
		Score:  contextualScore(len(issues)),
	}
}

func contextualAborted(message string) models.StageResult {
	return models.StageResult{
		Passed: false,
		Issues: []models.Issue{models.Info(message)},
		Score:  contextualScore(1),
	}
}

func contextualScore(issueCount int) int {
	switch {
	case issueCount == 0:
		return models.ContextualStageCap
	case issueCount < 2:
		return 10
	default:
		return 0
	}
}
