package responses

import "github.com/fiscalis/dgi-api/types/business"

// NoticeDetail is an assessment notice enriched with its declaration and
// taxpayer.
type NoticeDetail struct {
	business.AssessmentNotice
	Declaration *business.Declaration `json:"declaration,omitempty"`
	Taxpayer    *business.Taxpayer    `json:"contribuable,omitempty"`
}

// EnforcementDetail is an enforcement notice enriched with its taxpayer.
type EnforcementDetail struct {
	business.EnforcementNotice
	Taxpayer *business.Taxpayer `json:"contribuable,omitempty"`
}
