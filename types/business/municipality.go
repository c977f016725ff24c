package business

// Municipality categories. The category drives the local development tax
// rate per square metre.
const (
	MunicipalityTypeUrban     = "URBAINE"
	MunicipalityTypeSemiUrban = "SEMI_URBAINE"
)

// Municipality represents a commune benefiting from local tax revenue
type Municipality struct {
	ID   int64  `json:"id_commune"`
	Name string `json:"nom_commune"`
	Type string `json:"type_commune"`
}
