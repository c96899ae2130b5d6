package models

import "github.com/shopspring/decimal"

// Vendor risk levels as recorded in the ERP master data.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// VendorStatusApproved is the only vendor status that clears cross-reference
// checks; any other value is surfaced as an issue citing the actual status.
const VendorStatusApproved = "approved"

// VendorRecord is one vendor in the approved or blacklisted master lists.
type VendorRecord struct {
	VendorName  string          `json:"vendor_name"`
	TaxID       string          `json:"tax_id"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	RiskLevel   string          `json:"risk_level"`
	Status      string          `json:"status"`
}

// PurchaseOrderRecord is an ERP purchase order. Invoices are matched against
// open POs by vendor name and amount equality within a 0.01 tolerance.
type PurchaseOrderRecord struct {
	PONumber    string          `json:"po_number"`
	VendorName  string          `json:"vendor_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedDate string          `json:"created_date"`
}

// POStatusOpen marks a purchase order still accepting invoices.
const POStatusOpen = "open"

// ReferenceData is the vendor/PO master data snapshot used by the
// cross-reference and fraud stages. It is read-only during validation.
type ReferenceData struct {
	PurchaseOrders     []PurchaseOrderRecord `json:"purchase_orders"`
	ApprovedVendors    []VendorRecord        `json:"approved_vendors"`
	BlacklistedVendors []VendorRecord        `json:"blacklisted_vendors"`
}

// EmptyReferenceData returns a usable zero dataset. Validation against it
// fails open: every lookup reports "not found" and drives the score down.
func EmptyReferenceData() *ReferenceData {
	return &ReferenceData{
		PurchaseOrders:     []PurchaseOrderRecord{},
		ApprovedVendors:    []VendorRecord{},
		BlacklistedVendors: []VendorRecord{},
	}
}
