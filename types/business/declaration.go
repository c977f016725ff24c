package business

import "github.com/shopspring/decimal"

// Declaration statuses. EN_COURS is the creation state; any status may follow
// any other as long as the value is one of these four (see ChangeStatus).
const (
	DeclarationStatusInProgress = "EN_COURS"
	DeclarationStatusValidated  = "VALIDEE"
	DeclarationStatusRejected   = "REJETEE"
	DeclarationStatusCancelled  = "ANNULEE"
)

// DeclarationStatuses lists the accepted statuses in the order they are
// reported to callers on an invalid transition.
var DeclarationStatuses = []string{
	DeclarationStatusInProgress,
	DeclarationStatusValidated,
	DeclarationStatusRejected,
	DeclarationStatusCancelled,
}

// Declaration types (the four taxes a taxpayer can file for)
const (
	DeclarationTypePatente = "PATENTE"
	DeclarationTypeIGS     = "IGS"
	DeclarationTypeTDL     = "TDL"
	DeclarationTypeLicence = "LICENCE"
)

// DeclarationTypes lists the four fixed declaration types used by the
// by-type dashboard breakdown.
var DeclarationTypes = []string{
	DeclarationTypePatente,
	DeclarationTypeIGS,
	DeclarationTypeTDL,
	DeclarationTypeLicence,
}

// IsValidDeclarationStatus reports whether s is one of the four accepted
// declaration statuses. The transition policy is deliberately permissive;
// tightening it only requires changing this check's call site in the
// lifecycle service.
func IsValidDeclarationStatus(s string) bool {
	for _, valid := range DeclarationStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Declaration represents a tax declaration filed by a taxpayer
type Declaration struct {
	ID          int64           `json:"id_declaration"`
	TaxpayerID  int64           `json:"id_contribuable"`
	Type        string          `json:"type_declaration"`
	FiscalYear  int             `json:"annee_fiscale"`
	Reference   string          `json:"reference_declaration"`
	Status      string          `json:"statut"`
	SubmittedAt string          `json:"date_soumission"`
	AmountDue   decimal.Decimal `json:"montant_a_payer"`
	Extra       map[string]any  `json:"extra,omitempty"`
}
