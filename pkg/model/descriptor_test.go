package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_DefaultsAndNaming(t *testing.T) {
	desc, err := New("Author", WithFields(
		FieldMeta{Name: "id", VerboseName: "ID", Type: FieldTypeInteger, PrimaryKey: true},
		FieldMeta{Name: "full_name", Type: FieldTypeString},
	))
	if err != nil {
		t.Fatalf("new descriptor: %v", err)
	}

	if desc.Name() != "author" {
		t.Fatalf("expected lowercased name, got %q", desc.Name())
	}
	if desc.PluralName() != "authors" {
		t.Fatalf("expected default plural, got %q", desc.PluralName())
	}
	if desc.AppLabel() != "author" {
		t.Fatalf("expected app label fallback, got %q", desc.AppLabel())
	}
	if desc.VerboseName() != "Author" {
		t.Fatalf("expected humanized verbose name, got %q", desc.VerboseName())
	}
	if desc.VerbosePluralName() != "Authors" {
		t.Fatalf("expected humanized plural, got %q", desc.VerbosePluralName())
	}
}

func TestNew_MapBackedAttributes(t *testing.T) {
	desc, err := New("book", WithFields(
		FieldMeta{Name: "id", Type: FieldTypeInteger, PrimaryKey: true},
		FieldMeta{Name: "title", Type: FieldTypeString},
	))
	if err != nil {
		t.Fatalf("new descriptor: %v", err)
	}

	getter, ok := desc.Attribute("title")
	if !ok {
		t.Fatalf("expected map-backed attribute for declared field")
	}
	if got := getter(Record{"title": "Frankenstein"}); got != "Frankenstein" {
		t.Fatalf("unexpected attribute value: %v", got)
	}
	if got := getter(42); got != nil {
		t.Fatalf("non-map record should read as nil, got %v", got)
	}
}

func TestNew_MemberCollisions(t *testing.T) {
	_, err := New("book",
		WithAttribute("x", func(any) any { return nil }),
		WithMethod("x", func(any) (any, error) { return nil, nil }),
	)
	if err == nil {
		t.Fatalf("expected error registering attribute and method under one name")
	}

	_, err = New("book", WithFields(
		FieldMeta{Name: "id"},
		FieldMeta{Name: "id"},
	))
	if err == nil {
		t.Fatalf("expected error for duplicate field declaration")
	}
}

func TestFieldVerboseName(t *testing.T) {
	desc, err := New("author", WithFields(
		FieldMeta{Name: "id", VerboseName: "ID"},
		FieldMeta{Name: "birth_year"},
	))
	if err != nil {
		t.Fatalf("new descriptor: %v", err)
	}

	if got, ok := desc.FieldVerboseName("id"); !ok || got != "ID" {
		t.Fatalf("explicit verbose name not honored: %q %v", got, ok)
	}
	if got, ok := desc.FieldVerboseName("birth_year"); !ok || got != "Birth Year" {
		t.Fatalf("derived verbose name mismatch: %q %v", got, ok)
	}
	if _, ok := desc.FieldVerboseName("nope"); ok {
		t.Fatalf("lookup should fail for undeclared field")
	}
}

func TestDescriptorOf_Struct(t *testing.T) {
	type Author struct {
		ID        int    `bread:"id,pk"`
		FullName  string `json:"full_name"`
		BirthYear int
		hidden    string
	}

	desc, err := DescriptorOf("author", Author{})
	if err != nil {
		t.Fatalf("descriptor of struct: %v", err)
	}

	var names []string
	for _, field := range desc.Fields() {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"id", "full_name", "birth_year"}, names); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	pk, ok := desc.PrimaryKeyField()
	if !ok || pk.Name != "id" {
		t.Fatalf("expected id as primary key, got %+v %v", pk, ok)
	}

	rec := &Author{ID: 9, FullName: "Mary Shelley", BirthYear: 1797, hidden: "x"}
	getter, ok := desc.Attribute("full_name")
	if !ok {
		t.Fatalf("expected struct-backed attribute")
	}
	if got := getter(rec); got != "Mary Shelley" {
		t.Fatalf("unexpected struct attribute value: %v", got)
	}
	if desc.HasMember("hidden") {
		t.Fatalf("unexported fields must not be registered")
	}

	if field, _ := desc.Field("birth_year"); field.Type != FieldTypeInteger {
		t.Fatalf("expected integer type for birth_year, got %q", field.Type)
	}
}
