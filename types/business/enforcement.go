package business

import "github.com/shopspring/decimal"

// Enforcement notice (AMR) statuses
const (
	EnforcementStatusInProgress = "EN_COURS"
	EnforcementStatusSettled    = "APURE"
	EnforcementStatusContested  = "CONTESTE"
	EnforcementStatusCancelled  = "ANNULE"
)

// EnforcementStatuses lists the accepted AMR statuses.
var EnforcementStatuses = []string{
	EnforcementStatusInProgress,
	EnforcementStatusSettled,
	EnforcementStatusContested,
	EnforcementStatusCancelled,
}

// IsValidEnforcementStatus reports whether s is an accepted AMR status.
func IsValidEnforcementStatus(s string) bool {
	for _, valid := range EnforcementStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// EnforcementNotice (AMR, avis de mise en recouvrement) is issued by
// administrative action against a taxpayer. The surcharge is a fixed 10% of
// the principal, the total is principal plus surcharge.
type EnforcementNotice struct {
	ID         int64           `json:"id_AMR"`
	Number     int64           `json:"numero_AMR"`
	IssuedAt   string          `json:"date_emission"`
	Reason     string          `json:"motif"`
	Principal  decimal.Decimal `json:"montant_initial"`
	Surcharge  decimal.Decimal `json:"montant_majorations"`
	Total      decimal.Decimal `json:"montant_total"`
	Status     string          `json:"statut"`
	TaxpayerID int64           `json:"id_contribuable"`
}
