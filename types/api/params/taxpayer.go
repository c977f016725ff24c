package params

// CreateTaxpayerParams registers a taxpayer. NIU and Email are required and
// NIU must be unique.
type CreateTaxpayerParams struct {
	NIU            string
	LastName       string
	FirstName      string
	CompanyName    string
	Email          string
	Phone          string
	MunicipalityID int64
	Extra          map[string]any
}

// UpdateTaxpayerParams merges fields into an existing taxpayer; nil pointers
// leave the stored value untouched. The id itself is immutable.
type UpdateTaxpayerParams struct {
	TaxpayerID     int64
	NIU            *string
	LastName       *string
	FirstName      *string
	CompanyName    *string
	Email          *string
	Phone          *string
	MunicipalityID *int64
	Extra          map[string]any
}

// ListTaxpayersParams filters the taxpayer listing. Name matches against
// last name, first name and company name, case insensitively.
type ListTaxpayersParams struct {
	Status string
	NIU    string
	Name   string
	Page   int
	Size   int
}
