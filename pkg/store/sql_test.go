package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-bread/pkg/model"
)

func sqlStore(t *testing.T) *SQL {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "bread.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQL(db, authorDescriptor(t))
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestSQL_CRUDRoundTrip(t *testing.T) {
	store := sqlStore(t)
	ctx := context.Background()

	pk, err := store.Create(ctx, model.Record{"name": "Ada", "genre": "science"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := store.Get(ctx, pk)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec["name"] != "Ada" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if err := store.Update(ctx, pk, model.Record{"genre": "mathematics"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rec, _ = store.Get(ctx, pk)
	if rec["genre"] != "mathematics" {
		t.Fatalf("update not applied: %+v", rec)
	}

	if err := store.Delete(ctx, pk); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, pk); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQL_ListPagingAndFilters(t *testing.T) {
	store := sqlStore(t)
	ctx := context.Background()

	for _, rec := range []model.Record{
		{"id": "1", "name": "Ada", "genre": "science"},
		{"id": "2", "name": "Mary", "genre": "fiction"},
		{"id": "3", "name": "Jane", "genre": "fiction"},
	} {
		if _, err := store.Create(ctx, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	page, err := store.List(ctx, Query{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Records) != 2 {
		t.Fatalf("unexpected page: total=%d len=%d", page.Total, len(page.Records))
	}

	page, err = store.List(ctx, Query{Filters: map[string]string{"genre": "fiction"}, OrderBy: "-name"})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if page.Total != 2 || page.Records[0]["name"] != "Mary" {
		t.Fatalf("unexpected filtered page: %+v", page)
	}

	// Unknown order fields fall back to primary key order.
	if _, err := store.List(ctx, Query{OrderBy: "nope"}); err != nil {
		t.Fatalf("list with unknown order: %v", err)
	}
}

func TestSQL_UpdateMissingRecord(t *testing.T) {
	store := sqlStore(t)
	if err := store.Update(context.Background(), "missing", model.Record{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
