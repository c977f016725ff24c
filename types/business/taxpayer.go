package business

// Taxpayer statuses. Taxpayers are never physically removed, deactivation is
// a status flip to SUPPRIME.
const (
	TaxpayerStatusActive  = "ACTIF"
	TaxpayerStatusDeleted = "SUPPRIME"
)

// Taxpayer represents a registered taxpayer (contribuable)
type Taxpayer struct {
	ID             int64  `json:"id_contribuable"`
	NIU            string `json:"NIU"`
	LastName       string `json:"nom"`
	FirstName      string `json:"prenom"`
	CompanyName    string `json:"raison_sociale"`
	Email          string `json:"email"`
	Phone          string `json:"telephone,omitempty"`
	MunicipalityID int64  `json:"id_commune,omitempty"`
	RegisteredAt   string `json:"date_immatriculation"`
	Status         string `json:"statut"`
	// Extra carries declared fields outside the core schema, scalar
	// values only.
	Extra map[string]any `json:"extra,omitempty"`
}

// DisplayName returns the name shown in declaration listings: the personal
// name when set, otherwise the company name.
func (t Taxpayer) DisplayName() string {
	if t.FirstName != "" || t.LastName != "" {
		if t.FirstName == "" {
			return t.LastName
		}
		return t.FirstName + " " + t.LastName
	}
	return t.CompanyName
}
