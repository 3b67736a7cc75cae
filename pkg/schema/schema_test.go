package schema

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bread/pkg/model"
)

const bookDocument = `
openapi: 3.0.3
info:
  title: Library
  version: 1.0.0
paths: {}
components:
  schemas:
    book:
      type: object
      required: [title]
      properties:
        id:
          type: string
          title: ID
        title:
          type: string
          title: Title
          maxLength: 120
        year:
          type: integer
          minimum: 1400
        in_print:
          type: boolean
        genre:
          type: string
          enum: [fiction, nonfiction]
`

func TestFromOpenAPI(t *testing.T) {
	desc, err := FromOpenAPI(context.Background(), []byte(bookDocument), "book")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	if desc.Name() != "book" || desc.PluralName() != "books" {
		t.Fatalf("unexpected naming: %q/%q", desc.Name(), desc.PluralName())
	}

	var names []string
	for _, field := range desc.Fields() {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"genre", "id", "in_print", "title", "year"}, names); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	pk, ok := desc.PrimaryKeyField()
	if !ok || pk.Name != "id" {
		t.Fatalf("expected id primary key, got %+v %v", pk, ok)
	}

	title, _ := desc.Field("title")
	if !title.Required || title.VerboseName != "Title" || title.MaxLength == nil || *title.MaxLength != 120 {
		t.Fatalf("title metadata mismatch: %+v", title)
	}

	year, _ := desc.Field("year")
	if year.Type != model.FieldTypeInteger || year.Minimum == nil || *year.Minimum != 1400 {
		t.Fatalf("year metadata mismatch: %+v", year)
	}

	genre, _ := desc.Field("genre")
	if len(genre.Enum) != 2 {
		t.Fatalf("enum not carried over: %+v", genre)
	}

	inPrint, _ := desc.Field("in_print")
	if inPrint.Type != model.FieldTypeBoolean {
		t.Fatalf("boolean type mismatch: %+v", inPrint)
	}
}

func TestFromOpenAPI_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := FromOpenAPI(ctx, nil, "book"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := FromOpenAPI(ctx, []byte(bookDocument), "missing"); err == nil {
		t.Fatalf("expected error for unknown component")
	}
}
