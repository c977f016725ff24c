package params

// LicenseTaxParams is the input of the license-tax (patente) calculator.
type LicenseTaxParams struct {
	Revenue      any
	ActivityType string
}

// LocalDevelopmentTaxParams is the input of the TDL calculator. The
// municipality is looked up by name; an unknown name falls back to the
// urban rate.
type LocalDevelopmentTaxParams struct {
	SurfaceArea      any
	MunicipalityName string
}
