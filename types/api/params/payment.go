package params

// RecordPaymentParams carries a payment to record against a validated
// declaration. AmountPaid accepts a JSON number or a numeric string.
type RecordPaymentParams struct {
	DeclarationID int64
	AmountPaid    any
	Mode          string
}

// ListPaymentsParams filters the payment listing.
type ListPaymentsParams struct {
	DeclarationID int64
	Status        string
	Mode          string
	Page          int
	Size          int
}
