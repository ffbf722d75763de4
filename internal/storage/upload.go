// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/docmerge/pkg/types"
)

// Uploader persists batches of accepted documents for a user.
type Uploader struct {
	store ObjectStore
	now   func() time.Time
}

// NewUploader returns an uploader writing to store.
func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store, now: time.Now}
}

// Key derives the object key for one document: the user ID, the upload
// start time in epoch milliseconds, and the original filename.
// Uniqueness is best effort; a same-millisecond collision on the same
// name is not guarded against.
func (u *Uploader) Key(user types.User, doc types.Document) string {
	return fmt.Sprintf("%s/%d-%s", user.ID, u.now().UnixMilli(), doc.Name)
}

// UploadBatch persists docs sequentially, in slice order. The first
// failure abandons the rest of the batch; documents persisted before
// the failure stay persisted (partial persistence is an accepted
// outcome, not rolled back). Per-document progress is written to w.
// The keys written so far are returned in both outcomes.
func (u *Uploader) UploadBatch(ctx context.Context, user types.User, docs []types.Document, w io.Writer) ([]string, error) {
	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		key := u.Key(user, doc)
		if err := u.store.Put(ctx, key, doc.MIMEType, doc.Data); err != nil {
			return keys, fmt.Errorf("uploading %s: %w", doc.Name, err)
		}
		keys = append(keys, key)
		fmt.Fprintf(w, "uploaded: %s -> %s/%s\n", doc.Name, u.store.Bucket(), key)
	}
	return keys, nil
}
