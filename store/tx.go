package store

import "github.com/fiscalis/dgi-api/types/business"

// Tx gives access to the store's records within one View or RunInTransaction
// call. Collection accessors return the live backing slices: callers iterate
// and copy what they need inside the transaction, they never retain them.
type Tx struct {
	store *Store
}

// NextID allocates the next id for an entity kind. IDs are monotonic per
// kind and never reused.
func (tx *Tx) NextID(kind string) int64 {
	tx.store.counters[kind]++
	return tx.store.counters[kind]
}

// --- Taxpayers ---

func (tx *Tx) Taxpayers() []business.Taxpayer { return tx.store.taxpayers }

// Taxpayer returns a copy of the taxpayer with the given id.
func (tx *Tx) Taxpayer(id int64) (business.Taxpayer, bool) {
	for _, t := range tx.store.taxpayers {
		if t.ID == id {
			return t, true
		}
	}
	return business.Taxpayer{}, false
}

// TaxpayerByNIU returns a copy of the taxpayer carrying the given NIU.
func (tx *Tx) TaxpayerByNIU(niu string) (business.Taxpayer, bool) {
	for _, t := range tx.store.taxpayers {
		if t.NIU == niu {
			return t, true
		}
	}
	return business.Taxpayer{}, false
}

func (tx *Tx) InsertTaxpayer(t business.Taxpayer) {
	tx.store.taxpayers = append(tx.store.taxpayers, t)
}

// UpdateTaxpayer applies fn to the stored record in place. Returns false if
// the id does not resolve.
func (tx *Tx) UpdateTaxpayer(id int64, fn func(*business.Taxpayer)) bool {
	for i := range tx.store.taxpayers {
		if tx.store.taxpayers[i].ID == id {
			fn(&tx.store.taxpayers[i])
			return true
		}
	}
	return false
}

// --- Municipalities ---

func (tx *Tx) Municipalities() []business.Municipality { return tx.store.municipalities }

func (tx *Tx) Municipality(id int64) (business.Municipality, bool) {
	for _, m := range tx.store.municipalities {
		if m.ID == id {
			return m, true
		}
	}
	return business.Municipality{}, false
}

func (tx *Tx) MunicipalityByName(name string) (business.Municipality, bool) {
	for _, m := range tx.store.municipalities {
		if m.Name == name {
			return m, true
		}
	}
	return business.Municipality{}, false
}

func (tx *Tx) InsertMunicipality(m business.Municipality) {
	tx.store.municipalities = append(tx.store.municipalities, m)
}

// --- Establishments ---

func (tx *Tx) Establishments() []business.Establishment { return tx.store.establishments }

func (tx *Tx) Establishment(id int64) (business.Establishment, bool) {
	for _, e := range tx.store.establishments {
		if e.ID == id {
			return e, true
		}
	}
	return business.Establishment{}, false
}

func (tx *Tx) InsertEstablishment(e business.Establishment) {
	tx.store.establishments = append(tx.store.establishments, e)
}

func (tx *Tx) UpdateEstablishment(id int64, fn func(*business.Establishment)) bool {
	for i := range tx.store.establishments {
		if tx.store.establishments[i].ID == id {
			fn(&tx.store.establishments[i])
			return true
		}
	}
	return false
}

// --- Declarations ---

func (tx *Tx) Declarations() []business.Declaration { return tx.store.declarations }

func (tx *Tx) Declaration(id int64) (business.Declaration, bool) {
	for _, d := range tx.store.declarations {
		if d.ID == id {
			return d, true
		}
	}
	return business.Declaration{}, false
}

func (tx *Tx) InsertDeclaration(d business.Declaration) {
	tx.store.declarations = append(tx.store.declarations, d)
}

func (tx *Tx) UpdateDeclaration(id int64, fn func(*business.Declaration)) bool {
	for i := range tx.store.declarations {
		if tx.store.declarations[i].ID == id {
			fn(&tx.store.declarations[i])
			return true
		}
	}
	return false
}

// --- Payments ---

func (tx *Tx) Payments() []business.Payment { return tx.store.payments }

func (tx *Tx) Payment(id int64) (business.Payment, bool) {
	for _, p := range tx.store.payments {
		if p.ID == id {
			return p, true
		}
	}
	return business.Payment{}, false
}

func (tx *Tx) InsertPayment(p business.Payment) {
	tx.store.payments = append(tx.store.payments, p)
}

// PaymentsByDeclaration returns copies of all payments referencing the
// declaration.
func (tx *Tx) PaymentsByDeclaration(declarationID int64) []business.Payment {
	var out []business.Payment
	for _, p := range tx.store.payments {
		if p.DeclarationID == declarationID {
			out = append(out, p)
		}
	}
	return out
}

// --- Beneficiaries ---

func (tx *Tx) Beneficiaries() []business.Beneficiary { return tx.store.beneficiaries }

func (tx *Tx) InsertBeneficiary(b business.Beneficiary) {
	tx.store.beneficiaries = append(tx.store.beneficiaries, b)
}

// BeneficiariesByPayment returns copies of the split records of a payment.
func (tx *Tx) BeneficiariesByPayment(paymentID int64) []business.Beneficiary {
	var out []business.Beneficiary
	for _, b := range tx.store.beneficiaries {
		if b.PaymentID == paymentID {
			out = append(out, b)
		}
	}
	return out
}

// --- Assessment notices ---

func (tx *Tx) Notices() []business.AssessmentNotice { return tx.store.notices }

func (tx *Tx) Notice(id int64) (business.AssessmentNotice, bool) {
	for _, n := range tx.store.notices {
		if n.ID == id {
			return n, true
		}
	}
	return business.AssessmentNotice{}, false
}

func (tx *Tx) InsertNotice(n business.AssessmentNotice) {
	tx.store.notices = append(tx.store.notices, n)
}

// --- Enforcement notices ---

func (tx *Tx) Enforcements() []business.EnforcementNotice { return tx.store.enforcements }

func (tx *Tx) Enforcement(id int64) (business.EnforcementNotice, bool) {
	for _, e := range tx.store.enforcements {
		if e.ID == id {
			return e, true
		}
	}
	return business.EnforcementNotice{}, false
}

func (tx *Tx) InsertEnforcement(e business.EnforcementNotice) {
	tx.store.enforcements = append(tx.store.enforcements, e)
}

func (tx *Tx) UpdateEnforcement(id int64, fn func(*business.EnforcementNotice)) bool {
	for i := range tx.store.enforcements {
		if tx.store.enforcements[i].ID == id {
			fn(&tx.store.enforcements[i])
			return true
		}
	}
	return false
}

// --- Notifications ---

func (tx *Tx) Notifications() []business.Notification { return tx.store.notifications }

func (tx *Tx) InsertNotification(n business.Notification) {
	tx.store.notifications = append(tx.store.notifications, n)
}

func (tx *Tx) UpdateNotification(id int64, fn func(*business.Notification)) bool {
	for i := range tx.store.notifications {
		if tx.store.notifications[i].ID == id {
			fn(&tx.store.notifications[i])
			return true
		}
	}
	return false
}

// UpdateNotifications applies fn to every notification matching the filter.
func (tx *Tx) UpdateNotifications(match func(business.Notification) bool, fn func(*business.Notification)) int {
	updated := 0
	for i := range tx.store.notifications {
		if match(tx.store.notifications[i]) {
			fn(&tx.store.notifications[i])
			updated++
		}
	}
	return updated
}
