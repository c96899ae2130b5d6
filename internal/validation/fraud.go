package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

var (
	digitRunPattern = regexp.MustCompile(`\d{3,}`)

	roundThousand       = decimal.NewFromInt(1000)
	highValueRiskAmount = decimal.NewFromInt(25000)
)

// DefaultFraudKeywords is the stock suspicious-phrase list matched against
// vendor names, case-insensitive.
func DefaultFraudKeywords() []string {
	return []string{
		"urgent", "immediate payment", "act now", "limited time",
		"wire transfer only", "cash only", "bitcoin", "cryptocurrency",
	}
}

// FraudEngine computes a raw risk score from pattern-matching heuristics.
// The raw accumulator is unbounded; the capped stage score is derived from it
// in tiers.
type FraudEngine struct {
	keywords []string
}

// NewFraudEngine creates the fraud heuristics engine. A nil or empty keyword
// list falls back to the defaults.
func NewFraudEngine(keywords []string) *FraudEngine {
	if len(keywords) == 0 {
		keywords = DefaultFraudKeywords()
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &FraudEngine{keywords: lowered}
}

// Validate returns the stage result together with the raw risk score.
func (e *FraudEngine) Validate(rec *models.InvoiceRecord, ref *models.ReferenceData) models.FraudResult {
	issues := make([]models.Issue, 0)
	risk := 0

	name := strings.ToLower(rec.VendorName)

	for _, kw := range e.keywords {
		if strings.Contains(name, kw) {
			issues = append(issues, models.Warning(fmt.Sprintf(
				"FRAUD ALERT: Suspicious keyword '%s' in vendor name", kw)))
			risk += 3
		}
	}

	// Amount pattern heuristics are skipped for non-numeric amounts; an
	// absent amount counts as zero and therefore trips the round-thousands
	// check, matching the intake default.
	if !rec.Amount.Defined || rec.Amount.Valid {
		amount := decimal.Zero
		if rec.Amount.Valid {
			amount = rec.Amount.Value
		}

		if amount.Mod(roundThousand).IsZero() {
			risk++
		}

		if amount.GreaterThan(highValueRiskAmount) {
			risk += 2
			issues = append(issues, models.Info("High-value transaction flagged for review"))
		}
	}

	if digitRunPattern.MatchString(name) {
		risk++
		issues = append(issues, models.Warning("WARNING: Vendor name contains suspicious digit pattern"))
	}

	if countTokenMatches(name, ref.ApprovedVendors) > 1 {
		risk++
		issues = append(issues, models.Warning("WARNING: Similar vendor names exist - verify authenticity"))
	}

	// Timing anomaly: an invoice timestamped exactly midnight. The intake
	// date format carries no clock, so this can only trip when a full
	// timestamp is supplied; kept pending clarification of the timing rule.
	if t, ok := parseTimestamp(rec.Date); ok && t.Hour() == 0 && t.Minute() == 0 {
		risk++
	}

	return models.FraudResult{
		StageResult: models.StageResult{
			Passed: len(issues) == 0,
			Issues: issues,
			Score:  fraudScore(risk),
		},
		RiskScore: risk,
	}
}

// countTokenMatches counts approved vendors whose name contains any
// whitespace token of the submitted name. The submitted vendor itself counts,
// so more than one match means a second, similarly named vendor exists.
func countTokenMatches(loweredName string, vendors []models.VendorRecord) int {
	tokens := strings.Fields(loweredName)
	if len(tokens) == 0 {
		return 0
	}
	count := 0
	for _, vendor := range vendors {
		candidate := strings.ToLower(vendor.VendorName)
		for _, token := range tokens {
			if strings.Contains(candidate, token) {
				count++
				break
			}
		}
	}
	return count
}

// parseTimestamp recognises date values that carry a clock component. Plain
// calendar dates do not and are reported as not-a-timestamp.
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fraudScore(risk int) int {
	switch {
	case risk < 3:
		return models.FraudStageCap
	case risk < 6:
		return 10
	default:
		return 0
	}
}
