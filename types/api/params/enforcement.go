package params

// CreateEnforcementParams issues an enforcement notice (AMR) against a
// taxpayer. The 10% surcharge and the total are computed, not supplied.
type CreateEnforcementParams struct {
	TaxpayerID int64
	Reason     string
	Principal  any
}

// ListEnforcementsParams filters the AMR listing.
type ListEnforcementsParams struct {
	Status     string
	TaxpayerID int64
	Page       int
	Size       int
}
