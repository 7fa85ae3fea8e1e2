package services_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/assets"
	"gavelbook/internal/services"
)

func TestItemImage_CreateReplaceDelete(t *testing.T) {
	h := newHarness(t)

	it, err := h.itemSvc.Create(testAccount, testAuction, services.ItemInput{
		Name:           "Landscape photo",
		EstimatedValue: 30,
	}, &services.ImageUpload{MimeType: "image/png", Data: strings.NewReader("v1")})
	require.NoError(t, err)
	require.NotEmpty(t, it.ImageKey)

	rc, _, err := h.store.Open(it.ImageKey)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	require.Equal(t, "v1", string(body))

	// a new upload replaces the blob and the reference
	updated, err := h.itemSvc.Update(testAccount, testAuction, it.ID, services.ItemInput{
		Name:           "Landscape photo",
		EstimatedValue: 30,
	}, &services.ImageUpload{MimeType: "image/png", Data: strings.NewReader("v2")})
	require.NoError(t, err)
	require.NotEqual(t, it.ImageKey, updated.ImageKey)
	_, _, err = h.store.Open(it.ImageKey)
	require.ErrorIs(t, err, assets.ErrNotExist)

	// no upload leaves the reference alone
	kept, err := h.itemSvc.Update(testAccount, testAuction, it.ID, services.ItemInput{
		Name:           "Landscape photo, framed",
		EstimatedValue: 35,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, updated.ImageKey, kept.ImageKey)

	require.NoError(t, h.itemSvc.Delete(testAccount, testAuction, it.ID))
	_, _, err = h.store.Open(updated.ImageKey)
	require.ErrorIs(t, err, assets.ErrNotExist)
}
