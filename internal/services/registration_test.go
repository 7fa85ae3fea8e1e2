package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/domain"
)

func TestRegistration_DuplicateBidderNumber(t *testing.T) {
	h := newHarness(t)

	h.register(t, patronAnn, 101)
	_, err := h.regSvc.Register(testAccount, testAuction, patronBo, 101)
	require.ErrorIs(t, err, domain.ErrConflict)

	// a different number is fine
	h.register(t, patronBo, 102)
}

func TestRegistration_PatronOnlyOnce(t *testing.T) {
	h := newHarness(t)

	h.register(t, patronAnn, 101)
	_, err := h.regSvc.Register(testAccount, testAuction, patronAnn, 200)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistration_UnregisterBlockedByWinnings(t *testing.T) {
	h := newHarness(t)

	regID := h.register(t, patronAnn, 101)
	it := h.addItem(t, "Spa day", 120)
	_, err := h.itemSvc.RecordWinningBid(testAccount, testAuction, it.ID, 130, patronAnn)
	require.NoError(t, err)

	err = h.regSvc.Unregister(testAccount, testAuction, regID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistration_UnregisterBlockedByDonation(t *testing.T) {
	h := newHarness(t)

	regID := h.register(t, patronAnn, 101)
	_, err := h.donationSvc.Record(testAccount, testAuction, patronAnn, 50)
	require.NoError(t, err)

	err = h.regSvc.Unregister(testAccount, testAuction, regID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistration_UnregisterClean(t *testing.T) {
	h := newHarness(t)

	regID := h.register(t, patronAnn, 101)
	require.NoError(t, h.regSvc.Unregister(testAccount, testAuction, regID))

	_, err := h.registrations.Get(h.db, testAuction, regID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// the number is free again
	h.register(t, patronBo, 101)
}

func TestRegistration_UnknownPatron(t *testing.T) {
	h := newHarness(t)

	_, err := h.regSvc.Register(testAccount, testAuction, "pat-missing", 5)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatron_DeleteBlockedByActivity(t *testing.T) {
	h := newHarness(t)

	h.register(t, patronAnn, 101)
	err := h.patronSvc.Delete(testAccount, patronAnn)
	require.ErrorIs(t, err, domain.ErrConflict)

	// Bo has no history anywhere, so the delete goes through
	require.NoError(t, h.patronSvc.Delete(testAccount, patronBo))
	_, _, err = h.patronSvc.Get(testAccount, patronBo)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatron_Stats(t *testing.T) {
	h := newHarness(t)

	h.register(t, patronAnn, 101)
	it := h.addItem(t, "Framed print", 75)
	_, err := h.itemSvc.RecordWinningBid(testAccount, testAuction, it.ID, 90, patronAnn)
	require.NoError(t, err)
	_, err = h.donationSvc.Record(testAccount, testAuction, patronAnn, 10)
	require.NoError(t, err)

	_, stats, err := h.patronSvc.Get(testAccount, patronAnn)
	require.NoError(t, err)
	require.Equal(t, 100.0, stats.TotalSpent)
	require.Equal(t, 2, stats.ItemsWon)
}
