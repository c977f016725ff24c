// Package params holds the input structs of the service layer.
package params

// CreateDeclarationParams carries a declaration filing. FiscalYear defaults
// to the current year when zero; AmountDue and other declared inputs arrive
// through Extra, the bounded scalar extension map.
type CreateDeclarationParams struct {
	TaxpayerID int64
	Type       string
	FiscalYear int
	AmountDue  any
	Extra      map[string]any
}

// ChangeDeclarationStatusParams carries a status transition request.
// RejectionReason is only meaningful for REJETEE and defaults to
// "Non précisé" when empty.
type ChangeDeclarationStatusParams struct {
	DeclarationID   int64
	NewStatus       string
	RejectionReason string
}

// UpdateDeclarationParams merges fields into an existing declaration; nil
// pointers leave the stored value untouched.
type UpdateDeclarationParams struct {
	DeclarationID int64
	Type          *string
	FiscalYear    *int
	Status        *string
	AmountDue     any
	Extra         map[string]any
}

// ListDeclarationsParams filters the declaration listing.
type ListDeclarationsParams struct {
	Status     string
	Type       string
	FiscalYear int
	TaxpayerID int64
	Page       int
	Size       int
}
