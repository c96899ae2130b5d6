package explain

import (
	"fmt"
	"strings"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

const systemPrompt = "You are an expert finance compliance auditor for an enterprise ERP system. " +
	"Analyze invoice validation results and provide professional, actionable explanations " +
	"accessible to accounts payable teams."

// buildPrompt renders the structured stage breakdown and issue list into the
// fixed-format explanation request.
func buildPrompt(rec *models.InvoiceRecord, verdict *models.ValidationVerdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invoice Data:\n")
	fmt.Fprintf(&b, "- Invoice ID: %s\n", rec.InvoiceID)
	fmt.Fprintf(&b, "- Vendor: %s\n", rec.VendorName)
	fmt.Fprintf(&b, "- Tax ID: %s\n", rec.TaxID)
	fmt.Fprintf(&b, "- Amount: %s\n", rec.Amount.Raw)
	fmt.Fprintf(&b, "- Date: %s\n\n", rec.Date)

	fmt.Fprintf(&b, "Validation Pipeline Results:\n")
	fmt.Fprintf(&b, "- Basic Validation: %s (Score: %d/%d)\n",
		passMark(verdict.BasicValidation.Passed), verdict.BasicValidation.Score, models.FieldStageCap)
	fmt.Fprintf(&b, "- ERP Cross-checks: %s (Score: %d/%d)\n",
		passMark(verdict.ERPValidation.Passed), verdict.ERPValidation.Score, models.CrossRefStageCap)
	fmt.Fprintf(&b, "- Contextual Logic: %s (Score: %d/%d)\n",
		passMark(verdict.ContextualValidation.Passed), verdict.ContextualValidation.Score, models.ContextualStageCap)
	fmt.Fprintf(&b, "- Fraud Detection: %s (Score: %d/%d, Risk Score: %d)\n",
		passMark(verdict.FraudDetection.Passed), verdict.FraudDetection.Score, models.FraudStageCap,
		verdict.FraudDetection.RiskScore)
	fmt.Fprintf(&b, "- Overall Score: %d/100\n\n", verdict.OverallScore)

	if len(verdict.Issues) == 0 {
		fmt.Fprintf(&b, "Validation Issues Found: None - All checks passed\n\n")
	} else {
		fmt.Fprintf(&b, "Validation Issues Found:\n")
		for _, issue := range verdict.Issues {
			fmt.Fprintf(&b, "- [%s] %s\n", issue.Severity, issue.Message)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `Please provide a response in this exact format:

Status: [APPROVED/APPROVED_WITH_CONDITIONS/REJECTED]
Summary: [2-3 sentence executive summary of the decision]
Key Issues: [Most critical 1-2 issues that need attention, or "None" if approved]
Business Impact: [Brief explanation of what this means for accounts payable]
Next Steps: [Specific actionable recommendations]
Confidence: [1-10 scale of decision confidence]

Keep the tone professional but accessible to finance teams. Focus on business impact and compliance requirements.`)

	return b.String()
}

func passMark(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
