// Package store owns every entity record and all mutation of the fiscal
// backend. State lives in memory for the lifetime of the process: it is
// initialized from a seed snapshot at startup and discarded on shutdown, so
// a restart always returns to the seed state.
package store

import (
	"sync"

	"github.com/fiscalis/dgi-api/types/business"
)

// Counter keys, one per entity kind.
const (
	CounterTaxpayer      = "contribuable"
	CounterMunicipality  = "commune"
	CounterEstablishment = "etablissement"
	CounterDeclaration   = "declaration"
	CounterPayment       = "paiement"
	CounterBeneficiary   = "beneficiaire"
	CounterNotice        = "avis"
	CounterEnforcement   = "AMR"
	CounterNotification  = "notification"
)

// Store is the in-memory entity store. Every mutating logical operation runs
// under the exclusive lock as one unit (id allocation, record writes and
// derived side-effect records together), so readers can never observe a
// partially applied multi-record mutation.
type Store struct {
	mu sync.RWMutex

	taxpayers      []business.Taxpayer
	municipalities []business.Municipality
	establishments []business.Establishment
	declarations   []business.Declaration
	payments       []business.Payment
	beneficiaries  []business.Beneficiary
	notices        []business.AssessmentNotice
	enforcements   []business.EnforcementNotice
	notifications  []business.Notification

	counters map[string]int64
}

// New builds a store from a snapshot. The snapshot's slices are copied so
// the caller's data stays untouched.
func New(snapshot Snapshot) *Store {
	s := &Store{
		taxpayers:      append([]business.Taxpayer(nil), snapshot.Taxpayers...),
		municipalities: append([]business.Municipality(nil), snapshot.Municipalities...),
		establishments: append([]business.Establishment(nil), snapshot.Establishments...),
		declarations:   append([]business.Declaration(nil), snapshot.Declarations...),
		payments:       append([]business.Payment(nil), snapshot.Payments...),
		beneficiaries:  append([]business.Beneficiary(nil), snapshot.Beneficiaries...),
		notices:        append([]business.AssessmentNotice(nil), snapshot.Notices...),
		enforcements:   append([]business.EnforcementNotice(nil), snapshot.Enforcements...),
		notifications:  append([]business.Notification(nil), snapshot.Notifications...),
		counters:       make(map[string]int64, len(snapshot.Counters)),
	}
	for kind, value := range snapshot.Counters {
		s.counters[kind] = value
	}
	return s
}

// NewEmpty builds a store with no records and zeroed counters. Used by
// tests that assemble their own fixtures through the services.
func NewEmpty() *Store {
	return New(Snapshot{Counters: map[string]int64{}})
}

// RunInTransaction executes fn under the exclusive lock. Services validate
// before their first write, so a returned error means nothing was applied.
func (s *Store) RunInTransaction(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{store: s})
}

// View executes fn under the shared lock. The Tx passed to fn must only be
// used for reads; slices returned by its accessors must not be retained
// past fn.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{store: s})
}

// CollectionCount reports how many entity collections the store holds,
// mirrored by the health endpoint.
func (s *Store) CollectionCount() int {
	return 9
}
