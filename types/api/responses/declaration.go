package responses

import (
	"github.com/shopspring/decimal"

	"github.com/fiscalis/dgi-api/types/business"
)

// DeclarationListItem is a declaration enriched with its taxpayer's display
// name for listings.
type DeclarationListItem struct {
	business.Declaration
	TaxpayerName *string `json:"contribuable"`
}

// DeclarationDetail is a declaration enriched with its linked records.
type DeclarationDetail struct {
	business.Declaration
	Taxpayer      *business.Taxpayer      `json:"contribuable,omitempty"`
	Establishment *business.Establishment `json:"etablissement,omitempty"`
	Payments      []business.Payment      `json:"paiements"`
}

// DeclarationPayments reports the payments recorded against a declaration
// with the running totals. RemainingBalance is null when the declaration
// itself cannot be found.
type DeclarationPayments struct {
	Payments         []business.Payment `json:"paiements"`
	TotalPaid        decimal.Decimal    `json:"totalPaye"`
	RemainingBalance *decimal.Decimal   `json:"resteAPayer"`
}
