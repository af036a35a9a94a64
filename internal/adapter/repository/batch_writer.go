package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"sproutswap/pkg/errors"
)

// defaultBatchLimit stays well below Firestore's 500-operation hard cap so a
// batch never fails on size alone.
const defaultBatchLimit = 450

// BatchWriter queues document writes and commits them in chunks. Callers just
// enqueue; the writer flushes transparently whenever the running batch would
// exceed the limit, and Finalize commits the remainder.
type BatchWriter struct {
	client *firestore.Client
	batch  *firestore.WriteBatch
	count  int
	limit  int
}

func NewBatchWriter(client *firestore.Client) *BatchWriter {
	return &BatchWriter{
		client: client,
		batch:  client.Batch(),
		limit:  defaultBatchLimit,
	}
}

func (w *BatchWriter) Set(ctx context.Context, ref *firestore.DocumentRef, data interface{}, opts ...firestore.SetOption) error {
	w.batch.Set(ref, data, opts...)
	return w.added(ctx)
}

func (w *BatchWriter) Update(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	w.batch.Update(ref, updates)
	return w.added(ctx)
}

func (w *BatchWriter) Delete(ctx context.Context, ref *firestore.DocumentRef) error {
	w.batch.Delete(ref)
	return w.added(ctx)
}

// Finalize commits whatever is still queued. The writer is reusable afterwards.
func (w *BatchWriter) Finalize(ctx context.Context) error {
	if w.count == 0 {
		return nil
	}
	return w.flush(ctx)
}

func (w *BatchWriter) added(ctx context.Context) error {
	w.count++
	if w.count >= w.limit {
		return w.flush(ctx)
	}
	return nil
}

func (w *BatchWriter) flush(ctx context.Context) error {
	if _, err := w.batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to commit write batch", err)
	}
	w.batch = w.client.Batch()
	w.count = 0
	return nil
}
