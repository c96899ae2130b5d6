package explain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

func testInvoice() *models.InvoiceRecord {
	return &models.InvoiceRecord{
		InvoiceID:  "INV-001",
		VendorName: "Acme Corp",
		TaxID:      "12-3456789",
		Amount:     models.NewAmount(decimal.NewFromFloat(1500.50)),
		Date:       "2025-08-04",
	}
}

func approvedVerdict() *models.ValidationVerdict {
	return &models.ValidationVerdict{
		OverallScore: 100,
		Status:       models.StatusApproved,
		Issues:       []models.Issue{},
		BasicValidation: models.StageResult{
			Passed: true, Issues: []models.Issue{}, Score: models.FieldStageCap,
		},
		ERPValidation: models.CrossRefResult{
			StageResult: models.StageResult{Passed: true, Issues: []models.Issue{}, Score: models.CrossRefStageCap},
			Details:     map[string]interface{}{},
		},
		ContextualValidation: models.StageResult{
			Passed: true, Issues: []models.Issue{}, Score: models.ContextualStageCap,
		},
		FraudDetection: models.FraudResult{
			StageResult: models.StageResult{Passed: true, Issues: []models.Issue{}, Score: models.FraudStageCap},
		},
	}
}

func TestFallbackApproved(t *testing.T) {
	g := NewGenerator(Config{}, nil)

	got := g.Fallback(testInvoice(), approvedVerdict())

	assert.Equal(t,
		"Invoice INV-001 APPROVED (Score: 100/100) - All validation stages passed. "+
			"Vendor: Acme Corp, Amount: $1500.50. Ready for processing and ledger logging.",
		got)
}

func TestFallbackCritical(t *testing.T) {
	g := NewGenerator(Config{}, nil)

	verdict := approvedVerdict()
	verdict.Status = models.StatusRejected
	verdict.OverallScore = 35
	verdict.Issues = []models.Issue{
		models.Critical("CRITICAL: Vendor is blacklisted in ERP system"),
		models.Info("No matching open purchase order found"),
	}

	got := g.Fallback(testInvoice(), verdict)

	assert.Equal(t,
		"Invoice INV-001 REJECTED - Critical issues detected: "+
			"CRITICAL: Vendor is blacklisted in ERP system. Immediate review required.",
		got)
}

func TestFallbackTruncatesLongIssueList(t *testing.T) {
	g := NewGenerator(Config{}, nil)

	verdict := approvedVerdict()
	verdict.Status = models.StatusApprovedWithConditions
	verdict.OverallScore = 65
	verdict.Issues = []models.Issue{
		models.Info("one"), models.Info("two"), models.Info("three"), models.Info("four"),
	}

	got := g.Fallback(testInvoice(), verdict)

	assert.Contains(t, got, "APPROVED WITH CONDITIONS")
	assert.Contains(t, got, "one; two; three...")
	assert.NotContains(t, got, "four")
}

func TestFallbackUnknownInvoiceID(t *testing.T) {
	g := NewGenerator(Config{}, nil)

	rec := testInvoice()
	rec.InvoiceID = ""

	got := g.Fallback(rec, approvedVerdict())

	assert.Contains(t, got, "Invoice Unknown APPROVED")
}

func TestExplainWithoutAPIKeyUsesFallback(t *testing.T) {
	g := NewGenerator(Config{}, nil)

	got := g.Explain(context.Background(), testInvoice(), approvedVerdict())

	assert.Equal(t, g.Fallback(testInvoice(), approvedVerdict()), got)
}

func TestExplainFallbackIdenticalAcrossFailureCauses(t *testing.T) {
	// A server that always errors.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	failing := NewGenerator(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "gpt-4o-mini",
	}, nil)
	unconfigured := NewGenerator(Config{}, nil)

	rec := testInvoice()
	verdict := approvedVerdict()

	fromError := failing.Explain(context.Background(), rec, verdict)
	fromMissing := unconfigured.Explain(context.Background(), rec, verdict)

	assert.Equal(t, fromMissing, fromError)
}

func TestExplainReturnsAPIContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Status: APPROVED"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	g := NewGenerator(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "gpt-4o-mini",
	}, nil)

	got := g.Explain(context.Background(), testInvoice(), approvedVerdict())

	assert.Equal(t, "Status: APPROVED", got)
}

func TestBuildPromptIncludesStageBreakdown(t *testing.T) {
	verdict := approvedVerdict()
	verdict.FraudDetection.RiskScore = 2

	prompt := buildPrompt(testInvoice(), verdict)

	assert.Contains(t, prompt, "Invoice ID: INV-001")
	assert.Contains(t, prompt, "Basic Validation: PASS (Score: 25/25)")
	assert.Contains(t, prompt, "ERP Cross-checks: PASS (Score: 30/30)")
	assert.Contains(t, prompt, "Contextual Logic: PASS (Score: 25/25)")
	assert.Contains(t, prompt, "Risk Score: 2")
	assert.Contains(t, prompt, "Validation Issues Found: None - All checks passed")
	assert.Contains(t, prompt, "Confidence:")
}
