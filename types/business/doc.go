// Package business holds the entity types shared by the store, the domain
// services and the HTTP layer. JSON field names follow the original fiscal
// administration wire format.
package business

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
