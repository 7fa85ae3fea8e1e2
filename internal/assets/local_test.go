package assets_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/assets"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := assets.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save("acct-1", "auc-1", "image/png", strings.NewReader("not-really-a-png"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "items/acct-1/auc-1/"))
	require.True(t, strings.HasSuffix(key, ".png"))

	rc, mime, err := store.Open(key)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, "image/png", mime)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "not-really-a-png", string(body))

	require.NoError(t, store.Delete(key))
	require.ErrorIs(t, store.Delete(key), assets.ErrNotExist)
	_, _, err = store.Open(key)
	require.ErrorIs(t, err, assets.ErrNotExist)
}

func TestLocalStore_UnknownMimeFallsBackToJPEG(t *testing.T) {
	store, err := assets.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save("a", "b", "application/octet-stream", strings.NewReader("x"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(key, ".jpg"))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := assets.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside.png", "items/../../etc/passwd"} {
		if err := store.Delete(key); err == nil || err == assets.ErrNotExist {
			t.Fatalf("key %q should have been rejected", key)
		}
	}
}
