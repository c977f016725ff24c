package responses

import "github.com/fiscalis/dgi-api/types/business"

// PaymentDetail is a payment enriched with its beneficiary splits and the
// declaration it settles.
type PaymentDetail struct {
	business.Payment
	Beneficiaries []business.Beneficiary `json:"beneficiaires"`
	Declaration   *business.Declaration  `json:"declaration,omitempty"`
}
