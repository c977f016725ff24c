package responses

import "github.com/shopspring/decimal"

// DashboardStats aggregates the fiscal position, either globally or scoped
// to one taxpayer.
type DashboardStats struct {
	Declarations  DeclarationStats  `json:"declarations"`
	Notices       NoticeStats       `json:"avis"`
	Enforcement   EnforcementStats  `json:"AMR"`
	Revenue       RevenueStats      `json:"recettes"`
	Notifications NotificationStats `json:"notifications"`
}

// DeclarationStats counts declarations by status. ValidationRate is a whole
// percentage in [0,100], zero when there are no declarations.
type DeclarationStats struct {
	Total          int `json:"total"`
	Validated      int `json:"validees"`
	InProgress     int `json:"en_cours"`
	Rejected       int `json:"rejetees"`
	ValidationRate int `json:"taux_validation"`
}

// NoticeStats counts assessment notices by paid status.
type NoticeStats struct {
	Total  int `json:"total"`
	Paid   int `json:"payes"`
	Unpaid int `json:"non_payes"`
}

// EnforcementStats counts enforcement notices; TotalAmount sums the totals
// of the in-progress ones.
type EnforcementStats struct {
	Total       int             `json:"total"`
	InProgress  int             `json:"en_cours"`
	TotalAmount decimal.Decimal `json:"montant_total"`
}

// RevenueStats reports collected revenue.
type RevenueStats struct {
	TotalCollected decimal.Decimal `json:"total_recouvre"`
}

// NotificationStats counts unread notifications.
type NotificationStats struct {
	Unread int `json:"non_lues"`
}

// MunicipalityRevenue reports collected revenue and taxpayer count for one
// municipality.
type MunicipalityRevenue struct {
	Municipality  string          `json:"commune"`
	Revenue       decimal.Decimal `json:"recettes"`
	TaxpayerCount int             `json:"nb_contribuables"`
}

// DeclarationTypeStats reports declaration volume per type; TotalAmount sums
// amount due across the validated ones.
type DeclarationTypeStats struct {
	Type        string          `json:"type"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"montant_total"`
}
