package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bread/pkg/model"
)

func authorDescriptor(t *testing.T) *model.Descriptor {
	t.Helper()

	desc, err := model.New("author", model.WithFields(
		model.FieldMeta{Name: "id", Type: model.FieldTypeString, PrimaryKey: true},
		model.FieldMeta{Name: "name", Type: model.FieldTypeString},
		model.FieldMeta{Name: "genre", Type: model.FieldTypeString},
	))
	if err != nil {
		t.Fatalf("build descriptor: %v", err)
	}
	return desc
}

func seededMemory(t *testing.T) *Memory {
	t.Helper()

	mem, err := NewMemory(authorDescriptor(t))
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	return mem.MustSeed(
		model.Record{"id": "1", "name": "Ada", "genre": "science"},
		model.Record{"id": "2", "name": "Mary", "genre": "fiction"},
		model.Record{"id": "3", "name": "Jane", "genre": "fiction"},
	)
}

func TestMemory_ListPreservesInsertionOrder(t *testing.T) {
	mem := seededMemory(t)

	page, err := mem.List(context.Background(), Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Records) != 3 {
		t.Fatalf("unexpected page: total=%d len=%d", page.Total, len(page.Records))
	}

	var names []string
	for _, rec := range page.Records {
		names = append(names, rec["name"].(string))
	}
	if diff := cmp.Diff([]string{"Ada", "Mary", "Jane"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_ListPagingAndFilters(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	page, err := mem.List(ctx, Query{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Records) != 1 || page.Records[0]["name"] != "Mary" {
		t.Fatalf("unexpected page: %+v", page)
	}

	page, err = mem.List(ctx, Query{Filters: map[string]string{"genre": "fiction"}})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("filter should narrow total, got %d", page.Total)
	}

	page, err = mem.List(ctx, Query{OrderBy: "-name"})
	if err != nil {
		t.Fatalf("ordered list: %v", err)
	}
	if page.Records[0]["name"] != "Mary" {
		t.Fatalf("descending order mismatch: %+v", page.Records)
	}
}

func TestMemory_CRUD(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	pk, err := mem.Create(ctx, model.Record{"name": "Charlotte", "genre": "fiction"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pk == "" {
		t.Fatalf("expected generated primary key")
	}

	rec, err := mem.Get(ctx, pk)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec["name"] != "Charlotte" || rec["id"] != pk {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if err := mem.Update(ctx, pk, model.Record{"genre": "gothic"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rec, _ = mem.Get(ctx, pk)
	if rec["genre"] != "gothic" || rec["name"] != "Charlotte" {
		t.Fatalf("partial update mismatch: %+v", rec)
	}

	if err := mem.Delete(ctx, pk); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := mem.Get(ctx, pk); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := mem.Delete(ctx, pk); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestMemory_DuplicatePrimaryKey(t *testing.T) {
	mem := seededMemory(t)
	if _, err := mem.Create(context.Background(), model.Record{"id": "1", "name": "Dup"}); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	rec, _ := mem.Get(ctx, "1")
	rec["name"] = "mutated"

	fresh, _ := mem.Get(ctx, "1")
	if fresh["name"] != "Ada" {
		t.Fatalf("store must not expose internal records, got %+v", fresh)
	}
}
