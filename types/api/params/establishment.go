package params

// CreateEstablishmentParams registers a place of business for a taxpayer.
type CreateEstablishmentParams struct {
	TaxpayerID     int64
	MunicipalityID int64
	Name           string
	Extra          map[string]any
}

// UpdateEstablishmentParams merges fields into an existing establishment.
type UpdateEstablishmentParams struct {
	EstablishmentID int64
	MunicipalityID  *int64
	Name            *string
	Extra           map[string]any
}

// ListEstablishmentsParams filters the establishment listing.
type ListEstablishmentsParams struct {
	TaxpayerID     int64
	MunicipalityID int64
	Page           int
	Size           int
}
