package blobstore

import (
	"context"
	"errors"
	"testing"

	"bloodcorner/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	got, err := store.Get(ctx, "donors")
	if err != nil {
		t.Fatalf("Get before Put: %v", err)
	}
	if got != nil {
		t.Fatalf("Get before Put = %q, want nil", got)
	}

	if err := store.Put(ctx, "donors", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err = store.Get(ctx, "donors")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("Get = %q", got)
	}

	// A second Put fully replaces the first.
	if err := store.Put(ctx, "donors", []byte(`[]`)); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, _ = store.Get(ctx, "donors")
	if string(got) != `[]` {
		t.Fatalf("Get after replace = %q", got)
	}
}

func TestFileStoreQuota(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 32)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "donors", []byte("0123456789")); err != nil {
		t.Fatalf("Put within quota: %v", err)
	}

	err = store.Put(ctx, "posts", make([]byte, 64))
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("Put over quota = %v, want ErrQuotaExceeded", err)
	}

	// The failed write must not disturb existing data.
	got, err := store.Get(ctx, "donors")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "0123456789" {
		t.Fatalf("Get after failed Put = %q", got)
	}
	if got, _ := store.Get(ctx, "posts"); got != nil {
		t.Fatalf("posts key unexpectedly written: %q", got)
	}
}

func TestFileStoreQuotaFailedPutKeepsOldValue(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 32)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "donors", []byte("old")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "donors", make([]byte, 64)); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("oversized replace = %v, want ErrQuotaExceeded", err)
	}
	got, _ := store.Get(ctx, "donors")
	if string(got) != "old" {
		t.Fatalf("Get after failed replace = %q, want old", got)
	}
}

func TestFileStoreReplaceOnlyChargesNewSize(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 16)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "donors", make([]byte, 12)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Rewriting the same key with 14 bytes fits: the old 12 bytes are
	// being replaced, not kept.
	if err := store.Put(ctx, "donors", make([]byte, 14)); err != nil {
		t.Fatalf("replace within quota = %v", err)
	}
}

func TestFileStoreRejectsBadKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		if err := store.Put(ctx, key, []byte("x")); err == nil {
			t.Fatalf("Put(%q) succeeded, want error", key)
		}
	}
}
