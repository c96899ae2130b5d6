package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

func TestFraudCleanInvoice(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-001",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 1500.00,
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	assert.True(t, result.Passed)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, models.FraudStageCap, result.Score)
}

func TestFraudKeywordInVendorName(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-300",
		"vendor_name": "Bitcoin Payments LLC",
		"tax_id": "55-5551234",
		"amount": 999.50,
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	assert.False(t, result.Passed)
	assert.Equal(t, []string{"FRAUD ALERT: Suspicious keyword 'bitcoin' in vendor name"},
		models.Messages(result.Issues))
	assert.Equal(t, 3, result.RiskScore)
	assert.Equal(t, 10, result.Score)
}

func TestFraudRoundThousandsRaisesRiskSilently(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-301",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 5000,
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	assert.Empty(t, result.Issues)
	assert.Equal(t, 1, result.RiskScore)
	assert.Equal(t, models.FraudStageCap, result.Score)
}

func TestFraudHighValueTransaction(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-302",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 30000,
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	assert.Equal(t, []string{"High-value transaction flagged for review"},
		models.Messages(result.Issues))
	// Round thousands plus high value.
	assert.Equal(t, 3, result.RiskScore)
	assert.Equal(t, 10, result.Score)
}

func TestFraudDigitRunInVendorName(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-303",
		"vendor_name": "Division 555 Supplies",
		"tax_id": "11-2223334",
		"amount": 900.50,
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	assert.Equal(t, []string{"WARNING: Vendor name contains suspicious digit pattern"},
		models.Messages(result.Issues))
	assert.Equal(t, 1, result.RiskScore)
	assert.Equal(t, models.FraudStageCap, result.Score)
}

func TestFraudSimilarVendorNames(t *testing.T) {
	ref := testReferenceData()
	ref.ApprovedVendors = append(ref.ApprovedVendors, models.VendorRecord{
		VendorName: "Acme Corporation Holdings",
		TaxID:      "12-9999999",
		Status:     models.VendorStatusApproved,
	})

	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-304",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 1500.50,
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, ref)

	assert.Equal(t, []string{"WARNING: Similar vendor names exist - verify authenticity"},
		models.Messages(result.Issues))
	assert.Equal(t, 1, result.RiskScore)
}

func TestFraudSkipsAmountChecksForInvalidAmount(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-305",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": "abc",
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	assert.Empty(t, result.Issues)
	assert.Equal(t, 0, result.RiskScore)
}

func TestFraudAbsentAmountCountsAsZero(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-306",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	// Zero is a multiple of a thousand.
	assert.Equal(t, 1, result.RiskScore)
	assert.Empty(t, result.Issues)
}

func TestFraudPlainDateNeverTripsMidnightCheck(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-307",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 1500.50,
		"date": "2025-08-04"
	}`)

	result := NewFraudEngine(nil).Validate(rec, testReferenceData())

	assert.Equal(t, 0, result.RiskScore)
}

func TestFraudCustomKeywords(t *testing.T) {
	engine := NewFraudEngine([]string{"shell company"})

	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-308",
		"vendor_name": "Shell Company Ventures",
		"tax_id": "22-3334445",
		"amount": 100.50,
		"date": "2025-08-04"
	}`)

	result := engine.Validate(rec, testReferenceData())

	assert.Equal(t, []string{"FRAUD ALERT: Suspicious keyword 'shell company' in vendor name"},
		models.Messages(result.Issues))
	assert.Equal(t, 3, result.RiskScore)
}

func TestFraudScoreTiers(t *testing.T) {
	assert.Equal(t, models.FraudStageCap, fraudScore(0))
	assert.Equal(t, models.FraudStageCap, fraudScore(2))
	assert.Equal(t, 10, fraudScore(3))
	assert.Equal(t, 10, fraudScore(5))
	assert.Equal(t, 0, fraudScore(6))
	assert.Equal(t, 0, fraudScore(9))
}
