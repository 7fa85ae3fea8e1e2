package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/domain"
	"gavelbook/internal/services"
)

func TestAuth_SignupAndLogin(t *testing.T) {
	h := newHarness(t)

	u, err := h.authSvc.Signup("pat@shelter.test", "Pat Doyle", "s3cret-pw", "Harbor Shelter")
	require.NoError(t, err)
	require.NotEmpty(t, u.AccountID)

	acct, err := h.accounts.Get(u.AccountID)
	require.NoError(t, err)
	require.Equal(t, "Harbor Shelter", acct.Name)
	require.Equal(t, int64(0), acct.LastItemSKU)

	// a second signup with the same email loses to the unique index
	_, err = h.authSvc.Signup("pat@shelter.test", "Other", "whatever1", "Other Org")
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := h.authSvc.Login("sid-1", "pat@shelter.test", "s3cret-pw")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = h.authSvc.Login("sid-2", "pat@shelter.test", "wrong")
	require.ErrorIs(t, err, services.ErrBadCreds)

	cur, err := h.authSvc.CurrentUser("sid-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, cur.ID)

	require.NoError(t, h.authSvc.Logout("sid-1"))
	_, err = h.authSvc.CurrentUser("sid-1")
	require.Error(t, err)
}

func TestInvitation_ConsumedOnce(t *testing.T) {
	h := newHarness(t)

	helper, err := h.authSvc.Signup("helper@example.test", "Helper", "s3cret-pw", "Helper Org")
	require.NoError(t, err)

	inv, err := h.invSvc.Invite(testAccount, testAuction, "helper@example.test")
	require.NoError(t, err)

	accepted, err := h.invSvc.Accept(inv.ID, helper.ID)
	require.NoError(t, err)
	require.Equal(t, "accepted", accepted.Status)
	require.Equal(t, helper.ID, accepted.AcceptedBy)

	ok, err := h.auctions.IsManager(testAuction, helper.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// second accept hits the already-consumed row
	_, err = h.invSvc.Accept(inv.ID, helper.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestInvitation_WrongAddress(t *testing.T) {
	h := newHarness(t)

	stranger, err := h.authSvc.Signup("stranger@example.test", "Stranger", "s3cret-pw", "Elsewhere")
	require.NoError(t, err)

	inv, err := h.invSvc.Invite(testAccount, testAuction, "helper@example.test")
	require.NoError(t, err)

	_, err = h.invSvc.Accept(inv.ID, stranger.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	// the invitation survives the failed attempt
	got, err := h.invitations.Get(h.db, inv.ID)
	require.NoError(t, err)
	require.Equal(t, "pending", got.Status)
}
