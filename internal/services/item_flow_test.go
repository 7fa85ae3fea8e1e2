package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/domain"
	"gavelbook/internal/services"
)

func TestItemFlow_CreateBidPay(t *testing.T) {
	h := newHarness(t)

	// fresh demo account starts at SKU 0
	it := h.addItem(t, "Signed team jersey", 200)
	require.Equal(t, "1", it.SKU)

	auc, err := h.auctions.Get(h.db, testAccount, testAuction)
	require.NoError(t, err)
	require.Equal(t, 1, auc.ItemCount)

	h.register(t, patronAnn, 101)

	won, err := h.itemSvc.RecordWinningBid(testAccount, testAuction, it.ID, 150, patronAnn)
	require.NoError(t, err)
	require.Equal(t, 150.0, won.WinningBid)
	require.Equal(t, patronAnn, won.WinningBidder)
	require.Equal(t, "Ann Rivers", won.WinnerName)
	require.Equal(t, 101, won.WinnerBidderNumber)

	// sold items cannot be deleted, and the count must not drift
	err = h.itemSvc.Delete(testAccount, testAuction, it.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
	auc, err = h.auctions.Get(h.db, testAccount, testAuction)
	require.NoError(t, err)
	require.Equal(t, 1, auc.ItemCount)

	require.NoError(t, h.itemSvc.MarkPaid(testAccount, testAuction, it.ID, "card"))
	err = h.itemSvc.MarkPaid(testAccount, testAuction, it.ID, "card")
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := h.items.Get(h.db, testAuction, it.ID)
	require.NoError(t, err)
	require.True(t, got.Paid)
	require.Equal(t, "card", got.PaymentMethod)
}

func TestItemFlow_DeleteUnsold(t *testing.T) {
	h := newHarness(t)

	it := h.addItem(t, "Wine basket", 60)
	require.NoError(t, h.itemSvc.Delete(testAccount, testAuction, it.ID))

	_, err := h.items.Get(h.db, testAuction, it.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	auc, err := h.auctions.Get(h.db, testAccount, testAuction)
	require.NoError(t, err)
	require.Equal(t, 0, auc.ItemCount)
}

func TestItemFlow_BidRequiresRegistration(t *testing.T) {
	h := newHarness(t)

	it := h.addItem(t, "Dinner for two", 80)
	_, err := h.itemSvc.RecordWinningBid(testAccount, testAuction, it.ID, 90, patronBo)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := h.items.Get(h.db, testAuction, it.ID)
	require.NoError(t, err)
	require.False(t, got.Sold())
}

func TestItemFlow_MarkPaidRequiresSale(t *testing.T) {
	h := newHarness(t)

	it := h.addItem(t, "Golf outing", 300)
	err := h.itemSvc.MarkPaid(testAccount, testAuction, it.ID, "cash")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestItemFlow_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.itemSvc.Create(testAccount, testAuction, services.ItemInput{EstimatedValue: 10}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.itemSvc.Create(testAccount, testAuction, services.ItemInput{Name: "x", EstimatedValue: -1}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	it := h.addItem(t, "Quilt", 40)
	_, err = h.itemSvc.RecordWinningBid(testAccount, testAuction, it.ID, 0, patronAnn)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestItemFlow_TenantScope(t *testing.T) {
	h := newHarness(t)

	it := h.addItem(t, "Pottery set", 45)
	err := h.itemSvc.Delete("acct-other", testAuction, it.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
