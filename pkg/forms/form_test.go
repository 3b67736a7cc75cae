package forms

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bread/pkg/model"
)

func bookDescriptor(t *testing.T) *model.Descriptor {
	t.Helper()

	maxLen := 10
	minYear := 1400.0
	desc, err := model.New("book", model.WithFields(
		model.FieldMeta{Name: "id", Type: model.FieldTypeString, PrimaryKey: true},
		model.FieldMeta{Name: "title", VerboseName: "Title", Type: model.FieldTypeString, Required: true, MaxLength: &maxLen},
		model.FieldMeta{Name: "year", Type: model.FieldTypeInteger, Minimum: &minYear},
		model.FieldMeta{Name: "in_print", Type: model.FieldTypeBoolean},
		model.FieldMeta{Name: "genre", Type: model.FieldTypeString, Enum: []any{"fiction", "nonfiction"}},
	))
	if err != nil {
		t.Fatalf("build descriptor: %v", err)
	}
	return desc
}

func TestNew_ExcludesPrimaryKeyByDefault(t *testing.T) {
	form, err := New(bookDescriptor(t))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	var names []string
	for _, field := range form.Fields() {
		names = append(names, field.Name)
	}
	want := []string{"title", "year", "in_print", "genre"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field selection mismatch (-want +got):\n%s", diff)
	}

	title, _ := form.Field("title")
	if title.Label != "Title" {
		t.Fatalf("labels should come from field metadata, got %q", title.Label)
	}
}

func TestNew_FieldSubsetAndExclude(t *testing.T) {
	form, err := New(bookDescriptor(t), WithFields("year", "title"), WithExclude("year"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	fields := form.Fields()
	if len(fields) != 1 || fields[0].Name != "title" {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	if _, err := New(bookDescriptor(t), WithFields("nope")); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestBindValuesAndValidate(t *testing.T) {
	form, err := New(bookDescriptor(t))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	form.BindValues(url.Values{
		"title":    {"Frankenstein"},
		"year":     {"1818"},
		"in_print": {"on"},
		"genre":    {"fiction"},
	})
	if !form.Validate() {
		t.Fatalf("expected valid form, errors: %v", form.ErrorMap())
	}

	got := form.CleanedData()
	want := model.Record{
		"title":    "Frankenstein",
		"year":     int64(1818),
		"in_print": true,
		"genre":    "fiction",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	form, err := New(bookDescriptor(t))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	form.BindValues(url.Values{
		"title": {"much too long a title"},
		"year":  {"1200"},
		"genre": {"poetry"},
	})
	if form.Validate() {
		t.Fatalf("expected invalid form")
	}

	errs := form.ErrorMap()
	for _, name := range []string{"title", "year", "genre"} {
		if len(errs[name]) == 0 {
			t.Errorf("expected error for field %q, got %v", name, errs)
		}
	}
}

func TestValidate_RequiredAndParseErrors(t *testing.T) {
	form, err := New(bookDescriptor(t))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	form.BindValues(url.Values{"year": {"not-a-number"}})
	if form.Validate() {
		t.Fatalf("expected invalid form")
	}
	errs := form.ErrorMap()
	if len(errs["title"]) == 0 {
		t.Fatalf("missing required title should error: %v", errs)
	}
	if len(errs["year"]) == 0 {
		t.Fatalf("unparseable year should error: %v", errs)
	}
}

func TestBindValues_UncheckedBooleanIsFalse(t *testing.T) {
	form, err := New(bookDescriptor(t))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	form.BindValues(url.Values{"title": {"Emma"}})
	field, _ := form.Field("in_print")
	if field.Value != false {
		t.Fatalf("absent checkbox should bind false, got %v", field.Value)
	}
}

func TestBindRecord(t *testing.T) {
	form, err := New(bookDescriptor(t))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	form.BindRecord(model.Record{"title": "Emma", "year": 1815})
	title, _ := form.Field("title")
	if title.Value != "Emma" {
		t.Fatalf("record value not bound: %v", title.Value)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput(`<script>alert(1)</script>Emma`); got != "Emma" {
		t.Fatalf("markup should be stripped, got %q", got)
	}
	if got := SanitizeInput("  plain  "); got != "plain" {
		t.Fatalf("plain input should be trimmed, got %q", got)
	}
}

func TestBindValues_SanitizesStrings(t *testing.T) {
	form, err := New(bookDescriptor(t))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	form.BindValues(url.Values{"title": {"<b>Emma</b>"}})
	title, _ := form.Field("title")
	if title.Value != "Emma" {
		t.Fatalf("string input should be sanitized, got %v", title.Value)
	}
}
