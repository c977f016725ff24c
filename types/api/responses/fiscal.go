package responses

import "github.com/shopspring/decimal"

// LicenseTaxResult is the license-tax (patente) computation breakdown.
type LicenseTaxResult struct {
	Revenue            decimal.Decimal `json:"chiffre_affaire"`
	AppliedRate        string          `json:"taux_applique"`
	BaseDue            decimal.Decimal `json:"droit_patente"`
	AdditionalCentimes decimal.Decimal `json:"centimes_additionnels"`
	Total              decimal.Decimal `json:"montant_total"`
}

// LocalDevelopmentTaxResult is the TDL computation breakdown.
type LocalDevelopmentTaxResult struct {
	SurfaceArea decimal.Decimal `json:"surface_m2"`
	RatePerM2   decimal.Decimal `json:"tarif_m2"`
	Total       decimal.Decimal `json:"montant_TDL"`
}
