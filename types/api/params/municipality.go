package params

// CreateMunicipalityParams registers a commune.
type CreateMunicipalityParams struct {
	Name string
	Type string
}
