package business

// Notification statuses
const (
	NotificationStatusUnread = "NON_LU"
	NotificationStatusRead   = "LU"
)

// Notification is an in-portal message emitted as a side effect of
// declaration, payment and enforcement events. Only the read flag is ever
// mutated after creation.
type Notification struct {
	ID         int64  `json:"id_notification"`
	Title      string `json:"titre"`
	Body       string `json:"contenu"`
	Status     string `json:"statut"`
	TaxpayerID int64  `json:"id_contribuable"`
	CreatedAt  string `json:"date_creation"`
}
