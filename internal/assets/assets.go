// Package assets stores item images outside the database; items reference
// them by storage key. Uploads happen before the item transaction commits, so
// a failed commit can leave an orphaned asset behind (accepted, logged, never
// retried).
package assets

import "io"

type Store interface {
	// Save writes the blob under items/<accountID>/<auctionID>/<generated>
	// and returns the storage key.
	Save(accountID, auctionID, mimeType string, r io.Reader) (string, error)
	// Delete removes the blob. Missing blobs are reported as ErrNotExist so
	// callers can treat them as best-effort.
	Delete(storageKey string) error
	// Open returns the blob and its mime type.
	Open(storageKey string) (io.ReadCloser, string, error)
}
