package business

import "github.com/shopspring/decimal"

// Assessment notice statuses
const (
	NoticeStatusUnpaid = "NON_PAYE"
	NoticeStatusPaid   = "PAYE"
)

// ReceiverBankAccount is the fixed receiving-bank identifier stamped on every
// generated assessment notice.
const ReceiverBankAccount = "CM21 00000 00000 000000000000 00"

// AssessmentNotice (avis d'imposition) is generated exactly once when a
// declaration first reaches VALIDEE, carrying the amount due at that moment.
type AssessmentNotice struct {
	ID            int64           `json:"id_avis"`
	Reference     string          `json:"reference"`
	ReceiverBank  string          `json:"RIB_receveur"`
	ReceivedAt    string          `json:"date_reception"`
	NotifiedAt    string          `json:"date_notification"`
	Amount        decimal.Decimal `json:"montant"`
	Status        string          `json:"statut"`
	TaxpayerID    int64           `json:"id_contribuable"`
	DeclarationID int64           `json:"id_declaration"`
}
