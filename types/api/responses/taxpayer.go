package responses

import "github.com/fiscalis/dgi-api/types/business"

// TaxpayerDetail is a taxpayer enriched with its municipality.
type TaxpayerDetail struct {
	business.Taxpayer
	Municipality *business.Municipality `json:"commune,omitempty"`
}
