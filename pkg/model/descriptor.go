package model

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Descriptor is the registered description of a record type: its naming, the
// ordered field metadata used for labels and forms, and a member table
// mapping names to accessors. The member table is what view-layer resolution
// probes instead of reflecting over record instances.
type Descriptor struct {
	name          string
	plural        string
	appLabel      string
	verboseName   string
	verbosePlural string

	fields     []FieldMeta
	fieldIndex map[string]int
	attributes map[string]Getter
	methods    map[string]Method
}

// Option customises a Descriptor during construction.
type Option func(*Descriptor) error

// WithAppLabel sets the application label used in permission and template
// names. Defaults to the descriptor name.
func WithAppLabel(label string) Option {
	return func(d *Descriptor) error {
		d.appLabel = strings.TrimSpace(label)
		return nil
	}
}

// WithPlural overrides the plural name. Defaults to name + "s".
func WithPlural(plural string) Option {
	return func(d *Descriptor) error {
		d.plural = strings.TrimSpace(plural)
		return nil
	}
}

// WithVerboseName overrides the human-readable singular name.
func WithVerboseName(name string) Option {
	return func(d *Descriptor) error {
		d.verboseName = strings.TrimSpace(name)
		return nil
	}
}

// WithVerbosePlural overrides the human-readable plural name.
func WithVerbosePlural(name string) Option {
	return func(d *Descriptor) error {
		d.verbosePlural = strings.TrimSpace(name)
		return nil
	}
}

// WithFields declares record fields in display order. Each declared field
// gains a map-backed attribute getter unless one is registered explicitly.
func WithFields(fields ...FieldMeta) Option {
	return func(d *Descriptor) error {
		for _, field := range fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				return fmt.Errorf("model: field name is required")
			}
			if _, exists := d.fieldIndex[name]; exists {
				return fmt.Errorf("model: field %q declared twice", name)
			}
			field.Name = name
			d.fieldIndex[name] = len(d.fields)
			d.fields = append(d.fields, field)
		}
		return nil
	}
}

// WithAttribute registers a plain attribute accessor under name, replacing
// any map-backed default for that field.
func WithAttribute(name string, getter Getter) Option {
	return func(d *Descriptor) error {
		name = strings.TrimSpace(name)
		if name == "" || getter == nil {
			return fmt.Errorf("model: attribute name and getter are required")
		}
		if _, exists := d.methods[name]; exists {
			return fmt.Errorf("model: member %q already registered as a method", name)
		}
		d.attributes[name] = getter
		return nil
	}
}

// WithMethod registers a zero-argument method accessor under name.
func WithMethod(name string, method Method) Option {
	return func(d *Descriptor) error {
		name = strings.TrimSpace(name)
		if name == "" || method == nil {
			return fmt.Errorf("model: method name and body are required")
		}
		if _, exists := d.attributes[name]; exists {
			return fmt.Errorf("model: member %q already registered as an attribute", name)
		}
		d.methods[name] = method
		return nil
	}
}

// New constructs a Descriptor for the given lowercased record name.
func New(name string, options ...Option) (*Descriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("model: descriptor name is required")
	}

	d := &Descriptor{
		name:       strings.ToLower(name),
		fieldIndex: make(map[string]int),
		attributes: make(map[string]Getter),
		methods:    make(map[string]Method),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if d.plural == "" {
		d.plural = d.name + "s"
	}
	if d.appLabel == "" {
		d.appLabel = d.name
	}
	if d.verboseName == "" {
		d.verboseName = DefaultLabeler(d.name)
	}
	if d.verbosePlural == "" {
		d.verbosePlural = DefaultLabeler(d.plural)
	}

	// Every declared field is reachable as a plain attribute. Explicit
	// registrations win over the map-backed default.
	for _, field := range d.fields {
		if _, exists := d.attributes[field.Name]; exists {
			continue
		}
		if _, exists := d.methods[field.Name]; exists {
			continue
		}
		d.attributes[field.Name] = mapGetter(field.Name)
	}

	return d, nil
}

// MustNew panics on construction failure. Useful for package-level wiring.
func MustNew(name string, options ...Option) *Descriptor {
	d, err := New(name, options...)
	if err != nil {
		panic(err)
	}
	return d
}

func mapGetter(name string) Getter {
	return func(rec any) any {
		if m, ok := rec.(map[string]any); ok {
			return m[name]
		}
		return nil
	}
}

// Name returns the lowercased record name.
func (d *Descriptor) Name() string { return d.name }

// PluralName returns the plural record name used in routes.
func (d *Descriptor) PluralName() string { return d.plural }

// AppLabel returns the application label for permission/template naming.
func (d *Descriptor) AppLabel() string { return d.appLabel }

// VerboseName returns the human-readable singular name.
func (d *Descriptor) VerboseName() string { return d.verboseName }

// VerbosePluralName returns the human-readable plural name.
func (d *Descriptor) VerbosePluralName() string { return d.verbosePlural }

// Fields returns the declared fields in declaration order.
func (d *Descriptor) Fields() []FieldMeta {
	out := make([]FieldMeta, len(d.fields))
	copy(out, d.fields)
	return out
}

// Field looks up metadata for a declared field.
func (d *Descriptor) Field(name string) (FieldMeta, bool) {
	idx, ok := d.fieldIndex[name]
	if !ok {
		return FieldMeta{}, false
	}
	return d.fields[idx], true
}

// PrimaryKeyField returns the declared primary key, falling back to a field
// named "id" when none is flagged.
func (d *Descriptor) PrimaryKeyField() (FieldMeta, bool) {
	for _, field := range d.fields {
		if field.PrimaryKey {
			return field, true
		}
	}
	return d.Field("id")
}

// Attribute returns the registered plain attribute accessor for name.
func (d *Descriptor) Attribute(name string) (Getter, bool) {
	getter, ok := d.attributes[name]
	return getter, ok
}

// Method returns the registered zero-argument method accessor for name.
func (d *Descriptor) Method(name string) (Method, bool) {
	method, ok := d.methods[name]
	return method, ok
}

// HasMember reports whether name is reachable as an attribute or method.
func (d *Descriptor) HasMember(name string) bool {
	if _, ok := d.attributes[name]; ok {
		return true
	}
	_, ok := d.methods[name]
	return ok
}

// FieldVerboseName resolves the human-readable label for a declared field.
// The second return is false when no such field exists.
func (d *Descriptor) FieldVerboseName(name string) (string, bool) {
	field, ok := d.Field(name)
	if !ok {
		return "", false
	}
	if field.VerboseName != "" {
		return field.VerboseName, true
	}
	return DefaultLabeler(field.Name), true
}

// DescriptorOf builds a Descriptor from a struct prototype. Field names come
// from the `bread` tag, then the `json` tag, then the snake_cased Go name.
// Accessors capture the struct layout at registration time so resolution
// never reflects over instances. A `bread:"...,pk"` tag flag marks the
// primary key; `required` marks required fields; a field named "id" is the
// primary key by default.
func DescriptorOf(name string, prototype any, options ...Option) (*Descriptor, error) {
	rt := reflect.TypeOf(prototype)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: prototype for %q must be a struct, got %T", name, prototype)
	}

	var fields []FieldMeta
	accessors := make(map[string]Getter)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fieldName, flags := parseBreadTag(sf)
		if fieldName == "-" {
			continue
		}

		meta := FieldMeta{
			Name:       fieldName,
			Type:       fieldTypeOf(sf.Type),
			PrimaryKey: flags["pk"] || fieldName == "id",
			Required:   flags["required"],
		}
		fields = append(fields, meta)

		index := sf.Index
		accessors[fieldName] = func(rec any) any {
			rv := reflect.ValueOf(rec)
			for rv.Kind() == reflect.Pointer {
				if rv.IsNil() {
					return nil
				}
				rv = rv.Elem()
			}
			if rv.Kind() != reflect.Struct || rv.Type() != rt {
				return nil
			}
			return rv.FieldByIndex(index).Interface()
		}
	}

	opts := []Option{WithFields(fields...)}
	for fieldName, getter := range accessors {
		opts = append(opts, WithAttribute(fieldName, getter))
	}
	opts = append(opts, options...)

	return New(name, opts...)
}

func parseBreadTag(sf reflect.StructField) (string, map[string]bool) {
	flags := make(map[string]bool)

	tag := sf.Tag.Get("bread")
	if tag == "" {
		if jsonTag := sf.Tag.Get("json"); jsonTag != "" {
			name := strings.Split(jsonTag, ",")[0]
			if name != "" {
				return name, flags
			}
		}
		return snakeCase(sf.Name), flags
	}

	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		name = snakeCase(sf.Name)
	}
	for _, part := range parts[1:] {
		flags[strings.TrimSpace(part)] = true
	}
	return name, flags
}

func fieldTypeOf(rt reflect.Type) FieldType {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	switch rt.Kind() {
	case reflect.Bool:
		return FieldTypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FieldTypeInteger
	case reflect.Float32, reflect.Float64:
		return FieldTypeNumber
	default:
		return FieldTypeString
	}
}

func snakeCase(name string) string {
	var (
		out  strings.Builder
		prev rune
	)
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			out.WriteRune('_')
		}
		out.WriteRune(r)
		prev = r
	}
	return strings.ToLower(out.String())
}
