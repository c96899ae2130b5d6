package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

func testReferenceData() *models.ReferenceData {
	return &models.ReferenceData{
		ApprovedVendors: []models.VendorRecord{
			{
				VendorName:  "Acme Corp",
				TaxID:       "12-3456789",
				CreditLimit: decimal.NewFromInt(50000),
				RiskLevel:   models.RiskLevelLow,
				Status:      models.VendorStatusApproved,
			},
			{
				VendorName:  "Global Logistics LLC",
				TaxID:       "45-1234567",
				CreditLimit: decimal.NewFromInt(100000),
				RiskLevel:   models.RiskLevelHigh,
				Status:      models.VendorStatusApproved,
			},
			{
				VendorName:  "Pending Partners Ltd",
				TaxID:       "33-9876543",
				CreditLimit: decimal.NewFromInt(10000),
				RiskLevel:   models.RiskLevelMedium,
				Status:      "pending_review",
			},
		},
		BlacklistedVendors: []models.VendorRecord{
			{
				VendorName: "Fraudulent Supplies Co",
				TaxID:      "00-0000001",
				RiskLevel:  models.RiskLevelHigh,
				Status:     "blacklisted",
			},
		},
		PurchaseOrders: []models.PurchaseOrderRecord{
			{
				PONumber:    "PO-2025-001",
				VendorName:  "Acme Corp",
				TotalAmount: decimal.NewFromInt(1500),
				Status:      models.POStatusOpen,
				CreatedDate: "2025-08-01",
			},
			{
				PONumber:    "PO-2025-003",
				VendorName:  "Global Logistics LLC",
				TotalAmount: decimal.NewFromInt(42000),
				Status:      "closed",
				CreatedDate: "2025-06-15",
			},
		},
	}
}

func TestCrossRefMatchedVendorAndPO(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-001",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 1500.00,
		"date": "2025-08-04"
	}`)

	result := NewCrossRefValidator().Validate(rec, testReferenceData())

	assert.True(t, result.Passed)
	assert.Empty(t, result.Issues)
	assert.Equal(t, models.CrossRefStageCap, result.Score)
	assert.Equal(t, true, result.Details["vendor_approved"])
	assert.Equal(t, true, result.Details["po_matched"])
	assert.Equal(t, "PO-2025-001", result.Details["po_number"])
}

func TestCrossRefBlacklistShortCircuits(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name: "matched by name",
			payload: `{
				"invoice_id": "INV-100",
				"vendor_name": "fraudulent supplies co",
				"tax_id": "12-3456789",
				"amount": 1500.00,
				"date": "2025-08-04"
			}`,
		},
		{
			name: "matched by tax id",
			payload: `{
				"invoice_id": "INV-101",
				"vendor_name": "Harmless Looking Ltd",
				"tax_id": "00-0000001",
				"amount": 1500.00,
				"date": "2025-08-04"
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewCrossRefValidator().Validate(invoiceFromJSON(t, tt.payload), testReferenceData())

			assert.False(t, result.Passed)
			assert.Equal(t, 0, result.Score)
			assert.Equal(t, []string{"CRITICAL: Vendor is blacklisted in ERP system"}, models.Messages(result.Issues))
			assert.True(t, models.HasCritical(result.Issues))
			assert.Equal(t, true, result.Details["blacklisted"])
			// Nothing after the blacklist check ran.
			assert.NotContains(t, result.Details, "vendor_approved")
		})
	}
}

func TestCrossRefUnknownVendor(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-102",
		"vendor_name": "Unknown Widgets LLC",
		"tax_id": "77-7654321",
		"amount": 200.00,
		"date": "2025-08-04"
	}`)

	result := NewCrossRefValidator().Validate(rec, testReferenceData())

	assert.False(t, result.Passed)
	assert.Equal(t, []string{
		"Vendor not found in approved vendor list",
		"No matching open purchase order found",
	}, models.Messages(result.Issues))
	assert.Equal(t, 10, result.Score)
}

func TestCrossRefEmptyReferenceData(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-103",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 1500.00,
		"date": "2025-08-04"
	}`)

	result := NewCrossRefValidator().Validate(rec, models.EmptyReferenceData())

	assert.Equal(t, []string{
		"Vendor not found in approved vendor list",
		"No matching open purchase order found",
	}, models.Messages(result.Issues))
	assert.Equal(t, 10, result.Score)
}

func TestCrossRefCreditLimitAndRisk(t *testing.T) {
	t.Run("over credit limit", func(t *testing.T) {
		rec := invoiceFromJSON(t, `{
			"invoice_id": "INV-104",
			"vendor_name": "Acme Corp",
			"tax_id": "12-3456789",
			"amount": 60000,
			"date": "2025-08-04"
		}`)

		result := NewCrossRefValidator().Validate(rec, testReferenceData())

		assert.Contains(t, models.Messages(result.Issues),
			"Invoice amount exceeds vendor credit limit of $50,000.00")
	})

	t.Run("high risk vendor", func(t *testing.T) {
		rec := invoiceFromJSON(t, `{
			"invoice_id": "INV-105",
			"vendor_name": "Global Logistics LLC",
			"tax_id": "45-1234567",
			"amount": 42000,
			"date": "2025-08-04"
		}`)

		result := NewCrossRefValidator().Validate(rec, testReferenceData())

		messages := models.Messages(result.Issues)
		assert.Contains(t, messages, "WARNING: High-risk vendor requires additional approval")
		// The only open PO for this vendor is closed.
		assert.Contains(t, messages, "No matching open purchase order found")
		assert.Equal(t, 10, result.Score)
	})

	t.Run("vendor not fully approved", func(t *testing.T) {
		rec := invoiceFromJSON(t, `{
			"invoice_id": "INV-106",
			"vendor_name": "Pending Partners Ltd",
			"tax_id": "33-9876543",
			"amount": 500,
			"date": "2025-08-04"
		}`)

		result := NewCrossRefValidator().Validate(rec, testReferenceData())

		assert.Contains(t, models.Messages(result.Issues),
			"Vendor status is 'pending_review', not fully approved")
	})
}

func TestCrossRefInvoiceDatedBeforePO(t *testing.T) {
	rec := invoiceFromJSON(t, `{
		"invoice_id": "INV-107",
		"vendor_name": "Acme Corp",
		"tax_id": "12-3456789",
		"amount": 1500.00,
		"date": "2025-07-15"
	}`)

	result := NewCrossRefValidator().Validate(rec, testReferenceData())

	assert.Equal(t, []string{"Invoice date is before purchase order date"}, models.Messages(result.Issues))
	assert.Equal(t, 10, result.Score)
}

func TestCrossRefScoreTiers(t *testing.T) {
	assert.Equal(t, models.CrossRefStageCap, crossRefScore(0))
	assert.Equal(t, 10, crossRefScore(1))
	assert.Equal(t, 10, crossRefScore(2))
	assert.Equal(t, 0, crossRefScore(3))
	assert.Equal(t, 0, crossRefScore(5))
}
