package business

import "github.com/shopspring/decimal"

// PaymentStatusCompleted is the status every recorded payment carries.
const PaymentStatusCompleted = "EFFECTUE"

// Revenue ventilation: every payment is split between exactly these two
// beneficiaries at fixed shares.
const (
	BeneficiaryMunicipality = "Commune"
	BeneficiaryTreasury     = "Trésor Public"
)

var (
	MunicipalityShare = decimal.NewFromFloat(60.0)
	TreasuryShare     = decimal.NewFromFloat(40.0)
)

// Payment represents a payment recorded against a validated declaration.
// Payments are immutable once created.
type Payment struct {
	ID            int64           `json:"id_paiement"`
	DeclarationID int64           `json:"id_declaration"`
	AmountPaid    decimal.Decimal `json:"montant_paye"`
	Mode          string          `json:"mode_paiement"`
	Reference     string          `json:"reference_paiement"`
	Status        string          `json:"statut"`
	PaidAt        string          `json:"date_paiement"`
}

// Beneficiary represents one share of a ventilated payment
type Beneficiary struct {
	ID         int64           `json:"id_beneficiaire"`
	PaymentID  int64           `json:"id_paiement"`
	Name       string          `json:"nom_beneficiaire"`
	Percentage decimal.Decimal `json:"pourcentage_ventilation"`
	Amount     decimal.Decimal `json:"montant_ventile"`
}
