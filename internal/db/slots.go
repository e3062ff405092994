package db

import (
	"context"
	"errors"
)

var (
	// ErrSlotNotFound is returned by Slots.Get when nothing is stored under the key.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrConflict reports a write against a revision that is no longer current.
	ErrConflict = errors.New("document revision conflict")
)

// Slots is a key-value facility with per-key revisions. Revision 0 means "absent":
// Put with expectRev 0 only succeeds when the key does not exist yet, and any other
// expectRev must match the stored revision. A successful Put returns the new revision.
type Slots interface {
	Get(ctx context.Context, key string) ([]byte, int64, error)
	Put(ctx context.Context, key string, value []byte, expectRev int64) (int64, error)
}
