package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// poAmountTolerance is the maximum difference between an invoice amount and a
// purchase order total for them to be considered equal.
var poAmountTolerance = decimal.NewFromFloat(0.01)

// CrossRefValidator checks an invoice against the vendor/PO master data.
// Unlike the other stages it terminates immediately on a blacklist hit: no
// further cross-reference checks run and the single critical finding stands
// alone with a stage score of zero.
type CrossRefValidator struct{}

// NewCrossRefValidator creates the ERP cross-reference validator.
func NewCrossRefValidator() *CrossRefValidator {
	return &CrossRefValidator{}
}

// Validate returns the stage result. Score is tiered: the full cap with zero
// issues, a third of it with one or two, zero with three or more.
func (v *CrossRefValidator) Validate(rec *models.InvoiceRecord, ref *models.ReferenceData) models.CrossRefResult {
	issues := make([]models.Issue, 0)
	details := map[string]interface{}{}

	// A non-numeric amount already failed the field stage; cross-reference
	// checks run against zero so they fail open as "not found".
	amount := decimal.Zero
	if rec.Amount.Valid {
		amount = rec.Amount.Value
	}

	// Blacklist first. A match on either identity dimension is enough.
	for _, vendor := range ref.BlacklistedVendors {
		if strings.EqualFold(vendor.VendorName, rec.VendorName) || vendor.TaxID == rec.TaxID {
			issues = append(issues, models.Critical("CRITICAL: Vendor is blacklisted in ERP system"))
			details["blacklisted"] = true
			return models.CrossRefResult{
				StageResult: models.StageResult{Passed: false, Issues: issues, Score: 0},
				Details:     details,
			}
		}
	}
	details["blacklisted"] = false

	var approved *models.VendorRecord
	for i := range ref.ApprovedVendors {
		vendor := &ref.ApprovedVendors[i]
		if strings.EqualFold(vendor.VendorName, rec.VendorName) && vendor.TaxID == rec.TaxID {
			approved = vendor
			break
		}
	}

	if approved == nil {
		issues = append(issues, models.Info("Vendor not found in approved vendor list"))
		details["vendor_approved"] = false
	} else {
		details["vendor_approved"] = true
		details["vendor_risk_level"] = approved.RiskLevel

		if amount.GreaterThan(approved.CreditLimit) {
			issues = append(issues, models.Info(fmt.Sprintf(
				"Invoice amount exceeds vendor credit limit of $%s", formatWithCommas(approved.CreditLimit))))
		}

		if approved.RiskLevel == models.RiskLevelHigh {
			issues = append(issues, models.Warning("WARNING: High-risk vendor requires additional approval"))
		} else if approved.Status != models.VendorStatusApproved {
			issues = append(issues, models.Info(fmt.Sprintf(
				"Vendor status is '%s', not fully approved", approved.Status)))
		}
	}

	var matchedPO *models.PurchaseOrderRecord
	for i := range ref.PurchaseOrders {
		po := &ref.PurchaseOrders[i]
		if strings.EqualFold(po.VendorName, rec.VendorName) &&
			po.Status == models.POStatusOpen &&
			po.TotalAmount.Sub(amount).Abs().LessThan(poAmountTolerance) {
			matchedPO = po
			break
		}
	}

	if matchedPO == nil {
		issues = append(issues, models.Info("No matching open purchase order found"))
		details["po_matched"] = false
	} else {
		details["po_matched"] = true
		details["po_number"] = matchedPO.PONumber

		poDate, poErr := time.Parse(DateLayout, matchedPO.CreatedDate)
		invoiceDate, invErr := time.Parse(DateLayout, rec.Date)
		if poErr == nil && invErr == nil && invoiceDate.Before(poDate) {
			issues = append(issues, models.Info("Invoice date is before purchase order date"))
		}
	}

	return models.CrossRefResult{
		StageResult: models.StageResult{
			Passed: len(issues) == 0,
			Issues: issues,
			Score:  crossRefScore(len(issues)),
		},
		Details: details,
	}
}

func crossRefScore(issueCount int) int {
	switch {
	case issueCount == 0:
		return models.CrossRefStageCap
	case issueCount < 3:
		return 10
	default:
		return 0
	}
}

// formatWithCommas renders a decimal with two fraction digits and thousands
// separators, e.g. 50000 -> "50,000.00".
func formatWithCommas(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(fracPart)
	return b.String()
}
