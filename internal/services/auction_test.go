package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/domain"
	"gavelbook/internal/services"
)

func TestAuction_CreateAndStatus(t *testing.T) {
	h := newHarness(t)

	a, err := h.auctionSvc.Create(testAccount, services.AuctionInput{Name: "Fall Dinner", Type: "Live"})
	require.NoError(t, err)
	require.Equal(t, "upcoming", a.Status)
	require.Equal(t, 0, a.ItemCount)

	require.NoError(t, h.auctionSvc.SetStatus(testAccount, a.ID, "active"))
	err = h.auctionSvc.SetStatus(testAccount, a.ID, "archived")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.auctionSvc.Create(testAccount, services.AuctionInput{Name: "Bad", Type: "Sealed"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuction_CategoryRename(t *testing.T) {
	h := newHarness(t)

	it := h.addItem(t, "Watercolor", 55) // seeded categoryArt
	_, err := h.auctionSvc.UpdateCategory(testAccount, testAuction, categoryArt, "Fine Art")
	require.NoError(t, err)

	// exactly one category row carries the id after the replace
	var n int
	require.NoError(t, h.db.Get(&n, `SELECT COUNT(*) FROM auction_categories WHERE id = ?`, categoryArt))
	require.Equal(t, 1, n)

	cats, err := h.auctions.Categories(testAuction)
	require.NoError(t, err)
	names := map[string]string{}
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	require.Equal(t, "Fine Art", names[categoryArt])

	// the denormalized label on the item follows the rename
	got, err := h.items.Get(h.db, testAuction, it.ID)
	require.NoError(t, err)
	require.Equal(t, "Fine Art", got.CategoryName)
}

func TestAuction_RemoveCategoryInUse(t *testing.T) {
	h := newHarness(t)

	h.addItem(t, "Oil painting", 500)
	err := h.auctionSvc.RemoveCategory(testAccount, testAuction, categoryArt)
	require.ErrorIs(t, err, domain.ErrConflict)

	// an unused category goes quietly
	require.NoError(t, h.auctionSvc.RemoveCategory(testAccount, testAuction, "cat-travel"))
}

func TestLots_MoveAndDelete(t *testing.T) {
	h := newHarness(t)

	lot, err := h.auctionSvc.AddLot(testAccount, testAuction, "Table 4")
	require.NoError(t, err)
	it := h.addItem(t, "Cheese board", 35)

	require.NoError(t, h.itemSvc.MoveToLot(testAccount, testAuction, it.ID, lot.ID))
	got, err := h.items.Get(h.db, testAuction, it.ID)
	require.NoError(t, err)
	require.Equal(t, lot.ID, got.LotID)

	// lots from another auction are rejected
	other, err := h.auctionSvc.Create(testAccount, services.AuctionInput{Name: "Other", Type: "Silent"})
	require.NoError(t, err)
	foreign, err := h.auctionSvc.AddLot(testAccount, other.ID, "Elsewhere")
	require.NoError(t, err)
	err = h.itemSvc.MoveToLot(testAccount, testAuction, it.ID, foreign.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	// deleting the lot detaches its members instead of deleting them
	require.NoError(t, h.auctionSvc.DeleteLot(testAccount, testAuction, lot.ID))
	got, err = h.items.Get(h.db, testAuction, it.ID)
	require.NoError(t, err)
	require.Equal(t, "", got.LotID)
}
