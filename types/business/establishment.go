package business

// Establishment represents a taxpayer's place of business. Revenue breakdown
// by activity category travels in the extension map, the core schema only
// pins the identity and reference fields.
type Establishment struct {
	ID             int64          `json:"id_etablissement"`
	TaxpayerID     int64          `json:"id_contribuable"`
	MunicipalityID int64          `json:"id_commune,omitempty"`
	Name           string         `json:"nom_etablissement,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}
