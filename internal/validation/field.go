package validation

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// DateLayout is the only date form accepted from submitters.
const DateLayout = "2006-01-02"

var (
	invoiceIDPattern = regexp.MustCompile(`^[A-Z0-9-]{3,20}$`)
	taxIDPattern     = regexp.MustCompile(`^\d{2}-\d{7}$`)

	amountCriticalThreshold = decimal.NewFromInt(100000)
)

// FieldValidator checks presence, type and format of the mandatory invoice
// fields. Checks are independent; every failing check appends its own issue
// and none of them short-circuits the rest.
type FieldValidator struct{}

// NewFieldValidator creates the field-level validator.
func NewFieldValidator() *FieldValidator {
	return &FieldValidator{}
}

// Validate returns the stage result. Score is binary: the full cap with zero
// issues, otherwise zero.
func (v *FieldValidator) Validate(rec *models.InvoiceRecord, now time.Time) models.StageResult {
	issues := make([]models.Issue, 0)

	// Presence means a non-empty value; whitespace-only input is present and
	// left to the format checks below.
	if rec.InvoiceID == "" {
		issues = append(issues, models.Info("Missing required field: invoice_id"))
	}
	if rec.VendorName == "" {
		issues = append(issues, models.Info("Missing required field: vendor_name"))
	}
	if rec.TaxID == "" {
		issues = append(issues, models.Info("Missing required field: tax_id"))
	}
	if rec.Amount.Missing() {
		issues = append(issues, models.Info("Missing required field: amount"))
	}
	if rec.Date == "" {
		issues = append(issues, models.Info("Missing required field: date"))
	}

	switch {
	case !rec.Amount.Defined:
		// An absent amount defaults to zero, which fails the positivity check.
		issues = append(issues, models.Info("Invoice amount must be positive"))
	case !rec.Amount.Valid:
		issues = append(issues, models.Info("Invalid amount format"))
	case rec.Amount.Value.LessThanOrEqual(decimal.Zero):
		issues = append(issues, models.Info("Invoice amount must be positive"))
	case rec.Amount.Value.GreaterThan(amountCriticalThreshold):
		issues = append(issues, models.Critical("CRITICAL: Invoice amount exceeds $100,000 threshold"))
	}

	if !invoiceIDPattern.MatchString(rec.InvoiceID) {
		issues = append(issues, models.Info("Invalid invoice ID format"))
	}

	if !taxIDPattern.MatchString(rec.TaxID) {
		issues = append(issues, models.Info("Invalid tax ID format (expected XX-XXXXXXX)"))
	}

	if date, err := time.Parse(DateLayout, rec.Date); err != nil {
		issues = append(issues, models.Info("Invalid date format (expected YYYY-MM-DD)"))
	} else if date.After(now) {
		issues = append(issues, models.Info("Invoice date cannot be in the future"))
	} else if date.Before(now.AddDate(0, 0, -365)) {
		issues = append(issues, models.Info("Invoice date is more than 1 year old"))
	}

	score := 0
	if len(issues) == 0 {
		score = models.FieldStageCap
	}

	return models.StageResult{
		Passed: len(issues) == 0,
		Issues: issues,
		Score:  score,
	}
}
