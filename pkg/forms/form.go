package forms

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-bread/pkg/model"
)

// Field is one renderable form control: declared metadata plus the bound
// value and any validation errors from the last bind.
type Field struct {
	Name     string
	Label    string
	Type     model.FieldType
	Required bool
	Enum     []any
	Value    any
	Errors   []string
}

// Form is a descriptor-derived form: a handy container for a record's data
// that templates can iterate to display or edit it without a hand-written
// template per model.
type Form struct {
	desc   *model.Descriptor
	fields []Field
	index  map[string]int

	// Errors collects form-level messages that do not belong to a single
	// field.
	Errors []string
}

// Option customises form construction.
type Option func(*config)

type config struct {
	fields  []string
	exclude []string
}

// WithFields restricts the form to the named declared fields, in the given
// order.
func WithFields(names ...string) Option {
	return func(cfg *config) {
		cfg.fields = append(cfg.fields, names...)
	}
}

// WithExclude removes the named fields from the generated form.
func WithExclude(names ...string) Option {
	return func(cfg *config) {
		cfg.exclude = append(cfg.exclude, names...)
	}
}

// New generates a form from the descriptor's declared fields, honoring any
// field subset options. Primary keys are excluded by default; include them
// explicitly via WithFields if needed.
func New(desc *model.Descriptor, options ...Option) (*Form, error) {
	if desc == nil {
		return nil, fmt.Errorf("forms: descriptor is required")
	}

	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	excluded := make(map[string]struct{}, len(cfg.exclude))
	for _, name := range cfg.exclude {
		excluded[name] = struct{}{}
	}

	var selected []model.FieldMeta
	if len(cfg.fields) > 0 {
		for _, name := range cfg.fields {
			meta, ok := desc.Field(name)
			if !ok {
				return nil, fmt.Errorf("forms: unknown field %q for %s", name, desc.Name())
			}
			if _, skip := excluded[name]; skip {
				continue
			}
			selected = append(selected, meta)
		}
	} else {
		for _, meta := range desc.Fields() {
			if meta.PrimaryKey {
				continue
			}
			if _, skip := excluded[meta.Name]; skip {
				continue
			}
			selected = append(selected, meta)
		}
	}

	form := &Form{
		desc:  desc,
		index: make(map[string]int, len(selected)),
	}
	for _, meta := range selected {
		label, _ := desc.FieldVerboseName(meta.Name)
		form.index[meta.Name] = len(form.fields)
		form.fields = append(form.fields, Field{
			Name:     meta.Name,
			Label:    label,
			Type:     meta.Type,
			Required: meta.Required,
			Enum:     append([]any(nil), meta.Enum...),
		})
	}
	return form, nil
}

// Fields returns the form fields in declaration order.
func (f *Form) Fields() []Field {
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Field returns the named form field.
func (f *Form) Field(name string) (Field, bool) {
	idx, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.fields[idx], true
}

// BindRecord populates field values from a stored record, typically to
// display or edit an existing instance.
func (f *Form) BindRecord(rec model.Record) {
	for i := range f.fields {
		if value, ok := rec[f.fields[i].Name]; ok {
			f.fields[i].Value = value
		}
		f.fields[i].Errors = nil
	}
	f.Errors = nil
}

// BindValues parses submitted form values into typed field values. Parse
// failures surface as field errors; call Validate afterwards for the
// declarative constraints.
func (f *Form) BindValues(values url.Values) {
	f.Errors = nil
	for i := range f.fields {
		field := &f.fields[i]
		field.Errors = nil

		if _, present := values[field.Name]; !present {
			if field.Type == model.FieldTypeBoolean {
				// Unchecked checkboxes are absent from the payload.
				field.Value = false
			} else {
				field.Value = nil
			}
			continue
		}

		raw := strings.TrimSpace(values.Get(field.Name))
		value, err := parseValue(field.Type, raw)
		if err != nil {
			field.Value = raw
			field.Errors = append(field.Errors, err.Error())
			continue
		}
		field.Value = value
	}
}

func parseValue(kind model.FieldType, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	switch kind {
	case model.FieldTypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("enter a whole number")
		}
		return n, nil
	case model.FieldTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("enter a number")
		}
		return n, nil
	case model.FieldTypeBoolean:
		switch strings.ToLower(raw) {
		case "true", "on", "1", "yes":
			return true, nil
		case "false", "off", "0", "no":
			return false, nil
		default:
			return nil, fmt.Errorf("enter a yes/no value")
		}
	default:
		return SanitizeInput(raw), nil
	}
}

// Validate applies declared constraints to the bound values and reports
// whether the form is valid. Field errors accumulate on the fields.
func (f *Form) Validate() bool {
	valid := true
	for i := range f.fields {
		field := &f.fields[i]
		meta, _ := f.desc.Field(field.Name)

		if len(field.Errors) > 0 {
			valid = false
			continue
		}
		if field.Value == nil {
			if field.Required {
				field.Errors = append(field.Errors, "this field is required")
				valid = false
			}
			continue
		}
		if errs := validateValue(meta, field.Value); len(errs) > 0 {
			field.Errors = append(field.Errors, errs...)
			valid = false
		}
	}
	return valid
}

func validateValue(meta model.FieldMeta, value any) []string {
	var errs []string

	if len(meta.Enum) > 0 {
		matched := false
		for _, allowed := range meta.Enum {
			if fmt.Sprint(allowed) == fmt.Sprint(value) {
				matched = true
				break
			}
		}
		if !matched {
			errs = append(errs, fmt.Sprintf("%v is not one of the allowed choices", value))
		}
	}

	if number, ok := asFloat(value); ok {
		if meta.Minimum != nil && number < *meta.Minimum {
			errs = append(errs, fmt.Sprintf("must be at least %v", *meta.Minimum))
		}
		if meta.Maximum != nil && number > *meta.Maximum {
			errs = append(errs, fmt.Sprintf("must be at most %v", *meta.Maximum))
		}
	}

	if text, ok := value.(string); ok {
		if meta.MaxLength != nil && len(text) > *meta.MaxLength {
			errs = append(errs, fmt.Sprintf("must be %d characters or fewer", *meta.MaxLength))
		}
		if meta.Pattern != "" {
			re, err := regexp.Compile(meta.Pattern)
			if err == nil && !re.MatchString(text) {
				errs = append(errs, "does not match the expected format")
			}
		}
	}

	return errs
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

// CleanedData returns the bound, validated values keyed by field name.
// Fields that were never bound are omitted.
func (f *Form) CleanedData() model.Record {
	out := make(model.Record, len(f.fields))
	for _, field := range f.fields {
		if field.Value != nil {
			out[field.Name] = field.Value
		}
	}
	return out
}

// ErrorMap returns field errors keyed by field name plus form-level errors
// under the empty key. Empty when the form is valid.
func (f *Form) ErrorMap() map[string][]string {
	out := make(map[string][]string)
	for _, field := range f.fields {
		if len(field.Errors) > 0 {
			out[field.Name] = append([]string(nil), field.Errors...)
		}
	}
	if len(f.Errors) > 0 {
		out[""] = append([]string(nil), f.Errors...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
