package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value taken from an untrusted payload. Submitters may
// send it as a JSON number or a numeric string; both forms are preserved so
// the validators can distinguish "absent", "present but not numeric" and
// "numeric but out of range".
type Amount struct {
	Raw        string          // textual form as submitted
	Value      decimal.Decimal // parsed value, zero unless Valid
	Valid      bool            // parsed as a number
	Defined    bool            // key present and non-null in the payload
	FromString bool            // submitted as a JSON string
}

// NewAmount builds a valid Amount from a decimal, for programmatic construction.
func NewAmount(v decimal.Decimal) Amount {
	return Amount{Raw: v.String(), Value: v, Valid: true, Defined: true}
}

// UnmarshalJSON accepts both string and number forms.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	a.Defined = true
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.FromString = true
		a.Raw = s
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if v, err := decimal.NewFromString(s); err == nil {
			a.Value = v
			a.Valid = true
		}
		return nil
	}
	a.Raw = string(data)
	if v, err := decimal.NewFromString(string(data)); err == nil {
		a.Value = v
		a.Valid = true
	}
	return nil
}

// MarshalJSON emits the parsed value as a bare number when valid, otherwise
// the raw text as a string.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Defined {
		return []byte("null"), nil
	}
	if a.Valid {
		return []byte(a.Value.String()), nil
	}
	return json.Marshal(a.Raw)
}

// Missing reports whether the field should be treated as absent for the
// required-field check: never submitted, the exact empty string, or a bare
// zero. A whitespace-only string is present; it fails the format check
// instead.
func (a Amount) Missing() bool {
	if !a.Defined {
		return true
	}
	if a.FromString {
		return a.Raw == ""
	}
	return a.Valid && a.Value.IsZero()
}

// Float64 returns the parsed value as a float, zero when not numeric.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

// LineItem is auxiliary invoice detail. Line items are carried through to the
// ledger but are not scored by any validation stage.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity,omitempty"`
	UnitPrice   Amount  `json:"unit_price,omitempty"`
}

// InvoiceRecord is one submission under evaluation. It is constructed from
// the untrusted payload at intake and never mutated by any validator stage.
type InvoiceRecord struct {
	InvoiceID  string     `json:"invoice_id"`
	VendorName string     `json:"vendor_name"`
	TaxID      string     `json:"tax_id"`
	Amount     Amount     `json:"amount"`
	Date       string     `json:"date"`
	LineItems  []LineItem `json:"line_items,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}
