package services_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/domain"
)

func TestSKU_SequentialMonotonic(t *testing.T) {
	h := newHarness(t)

	for i := 1; i <= 5; i++ {
		it := h.addItem(t, fmt.Sprintf("Item %d", i), 10)
		require.Equal(t, fmt.Sprintf("%d", i), it.SKU)
	}

	var last int64
	require.NoError(t, h.db.Get(&last, `SELECT last_item_sku FROM accounts WHERE id = ?`, testAccount))
	require.Equal(t, int64(5), last)
}

// Items and donations draw from the same counter, so an interleaved sequence
// never reuses a number.
func TestSKU_SharedWithDonations(t *testing.T) {
	h := newHarness(t)

	it := h.addItem(t, "First", 10)
	require.Equal(t, "1", it.SKU)

	don, err := h.donationSvc.Record(testAccount, testAuction, patronAnn, 25)
	require.NoError(t, err)
	require.Equal(t, "DON-2", don.SKU)

	it = h.addItem(t, "Third", 10)
	require.Equal(t, "3", it.SKU)
}

func TestSKU_ConcurrentAllocation(t *testing.T) {
	h := newHarness(t)

	const n = 16
	got := make(chan int64, n)
	errs := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := h.db.Beginx()
			if err != nil {
				errs <- err
				return
			}
			next, err := h.accounts.AllocateSKU(tx, testAccount)
			if err != nil {
				_ = tx.Rollback()
				errs <- err
				return
			}
			if err := tx.Commit(); err != nil {
				errs <- err
				return
			}
			got <- next
		}()
	}
	wg.Wait()
	close(got)
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}

	seen := map[int64]bool{}
	for v := range got {
		require.False(t, seen[v], "counter value %d allocated twice", v)
		seen[v] = true
	}
	require.Len(t, seen, n)
	require.True(t, seen[int64(n)], "highest value should equal the allocation count")
}

func TestSKU_UnknownAccount(t *testing.T) {
	h := newHarness(t)

	tx, err := h.db.Beginx()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = h.accounts.AllocateSKU(tx, "acct-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
