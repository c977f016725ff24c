package store

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalis/dgi-api/types/business"
)

func TestLoadSeed(t *testing.T) {
	snapshot, err := LoadSeed()
	require.NoError(t, err)

	assert.Len(t, snapshot.Taxpayers, 3)
	assert.Len(t, snapshot.Municipalities, 3)
	assert.Len(t, snapshot.Declarations, 4)
	assert.Len(t, snapshot.Payments, 2)
	assert.Len(t, snapshot.Beneficiaries, 4)
	assert.Len(t, snapshot.Notices, 2)
	assert.Len(t, snapshot.Enforcements, 1)
	assert.Len(t, snapshot.Notifications, 6)

	// Counters match the highest seeded id per kind so allocation
	// continues past the seed records.
	assert.Equal(t, int64(3), snapshot.Counters[CounterTaxpayer])
	assert.Equal(t, int64(4), snapshot.Counters[CounterDeclaration])
	assert.Equal(t, int64(6), snapshot.Counters[CounterNotification])
}

func TestNewFromSeed(t *testing.T) {
	st, err := NewFromSeed()
	require.NoError(t, err)

	err = st.View(func(tx *Tx) error {
		taxpayer, ok := tx.Taxpayer(1)
		require.True(t, ok)
		assert.NotEmpty(t, taxpayer.NIU)

		_, ok = tx.Taxpayer(999)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestNewCopiesSnapshot(t *testing.T) {
	snapshot := Snapshot{
		Taxpayers: []business.Taxpayer{{ID: 1, NIU: "P111111111111A"}},
		Counters:  map[string]int64{CounterTaxpayer: 1},
	}
	st := New(snapshot)

	err := st.RunInTransaction(func(tx *Tx) error {
		tx.InsertTaxpayer(business.Taxpayer{ID: tx.NextID(CounterTaxpayer)})
		return nil
	})
	require.NoError(t, err)

	// The caller's snapshot stays untouched by store mutation.
	assert.Len(t, snapshot.Taxpayers, 1)
	assert.Equal(t, int64(1), snapshot.Counters[CounterTaxpayer])
}

func TestNextIDMonotonic(t *testing.T) {
	st := NewEmpty()

	var ids []int64
	err := st.RunInTransaction(func(tx *Tx) error {
		for i := 0; i < 3; i++ {
			ids = append(ids, tx.NextID(CounterDeclaration))
		}
		// Kinds count independently.
		assert.Equal(t, int64(1), tx.NextID(CounterPayment))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestRunInTransactionIsAtomicUnderConcurrency(t *testing.T) {
	st := NewEmpty()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = st.RunInTransaction(func(tx *Tx) error {
					id := tx.NextID(CounterPayment)
					tx.InsertPayment(business.Payment{ID: id})
					tx.InsertBeneficiary(business.Beneficiary{ID: tx.NextID(CounterBeneficiary), PaymentID: id})
					tx.InsertBeneficiary(business.Beneficiary{ID: tx.NextID(CounterBeneficiary), PaymentID: id})
					return nil
				})
			}
		}()
	}
	wg.Wait()

	err := st.View(func(tx *Tx) error {
		payments := tx.Payments()
		assert.Len(t, payments, workers*perWorker)
		assert.Len(t, tx.Beneficiaries(), 2*workers*perWorker)

		seen := make(map[int64]bool, len(payments))
		for _, p := range payments {
			assert.False(t, seen[p.ID], "payment id %d allocated twice", p.ID)
			seen[p.ID] = true
			assert.Len(t, tx.BeneficiariesByPayment(p.ID), 2)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestTransactionErrorPropagates(t *testing.T) {
	st := NewEmpty()

	boom := errors.New("boom")
	err := st.RunInTransaction(func(tx *Tx) error {
		return boom
	})
	assert.Equal(t, boom, err)
}

func TestUpdateAccessors(t *testing.T) {
	st := NewEmpty()

	err := st.RunInTransaction(func(tx *Tx) error {
		tx.InsertDeclaration(business.Declaration{ID: tx.NextID(CounterDeclaration), Status: business.DeclarationStatusInProgress})

		ok := tx.UpdateDeclaration(1, func(d *business.Declaration) {
			d.Status = business.DeclarationStatusValidated
		})
		assert.True(t, ok)

		ok = tx.UpdateDeclaration(42, func(d *business.Declaration) {})
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)

	err = st.View(func(tx *Tx) error {
		d, ok := tx.Declaration(1)
		require.True(t, ok)
		assert.Equal(t, business.DeclarationStatusValidated, d.Status)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateNotificationsBulk(t *testing.T) {
	st := NewEmpty()

	err := st.RunInTransaction(func(tx *Tx) error {
		for i := 0; i < 3; i++ {
			tx.InsertNotification(business.Notification{
				ID:         tx.NextID(CounterNotification),
				TaxpayerID: 1,
				Status:     business.NotificationStatusUnread,
			})
		}
		tx.InsertNotification(business.Notification{
			ID:         tx.NextID(CounterNotification),
			TaxpayerID: 2,
			Status:     business.NotificationStatusUnread,
		})

		updated := tx.UpdateNotifications(
			func(n business.Notification) bool { return n.TaxpayerID == 1 },
			func(n *business.Notification) { n.Status = business.NotificationStatusRead },
		)
		assert.Equal(t, 3, updated)
		return nil
	})
	require.NoError(t, err)
}
