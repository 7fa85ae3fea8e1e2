package services_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/domain"
	"gavelbook/internal/services"
)

func TestDonation_RecordShape(t *testing.T) {
	h := newHarness(t)

	it, err := h.donationSvc.Record(testAccount, testAuction, patronAnn, 250)
	require.NoError(t, err)

	require.Regexp(t, regexp.MustCompile(`^DON-\d+$`), it.SKU)
	require.True(t, it.IsDonation())
	require.Equal(t, 250.0, it.WinningBid)
	require.Equal(t, 250.0, it.EstimatedValue)
	require.Equal(t, patronAnn, it.WinningBidder)
	require.Equal(t, "Ann Rivers", it.WinnerName)
	require.Equal(t, domain.DonationCategoryName, it.CategoryName)
	require.Contains(t, it.Name, "Ann Rivers")

	// the pseudo-item counts toward the auction's item total
	auc, err := h.auctions.Get(h.db, testAccount, testAuction)
	require.NoError(t, err)
	require.Equal(t, 1, auc.ItemCount)
}

func TestDonation_Immutable(t *testing.T) {
	h := newHarness(t)

	it, err := h.donationSvc.Record(testAccount, testAuction, patronAnn, 40)
	require.NoError(t, err)

	_, err = h.itemSvc.Update(testAccount, testAuction, it.ID, services.ItemInput{Name: "edited", EstimatedValue: 1}, nil)
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = h.itemSvc.RecordWinningBid(testAccount, testAuction, it.ID, 99, patronAnn)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestDonation_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.donationSvc.Record(testAccount, testAuction, patronAnn, 0)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.donationSvc.Record(testAccount, testAuction, "pat-missing", 10)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
