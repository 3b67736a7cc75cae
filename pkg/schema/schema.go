// Package schema builds record descriptors from OpenAPI documents so
// existing API definitions can drive the generated views without a second,
// hand-maintained field list.
package schema

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-bread/pkg/model"
)

const primaryKeyExtension = "x-primary-key"

// Option forwards descriptor options to the generated descriptor, letting
// callers override naming or attach methods.
type Option = model.Option

// FromOpenAPI parses raw OpenAPI content and maps the named component schema
// onto a record descriptor. Property titles become verbose names; required,
// enum, bounds, and length constraints carry over to field metadata. A
// property named "id" or flagged with x-primary-key becomes the primary key.
func FromOpenAPI(ctx context.Context, raw []byte, component string, options ...Option) (*model.Descriptor, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("schema: document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}

	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("schema: document declares no component schemas")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: component %q not found", component)
	}

	fields, err := fieldsFromSchema(ref.Value)
	if err != nil {
		return nil, fmt.Errorf("schema: component %q: %w", component, err)
	}

	opts := append([]Option{model.WithFields(fields...)}, options...)
	desc, err := model.New(component, opts...)
	if err != nil {
		return nil, fmt.Errorf("schema: build descriptor for %q: %w", component, err)
	}
	return desc, nil
}

func fieldsFromSchema(src *openapi3.Schema) ([]model.FieldMeta, error) {
	if len(src.Properties) == 0 {
		return nil, fmt.Errorf("schema has no properties")
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.FieldMeta, 0, len(names))
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value

		meta := model.FieldMeta{
			Name:        name,
			VerboseName: prop.Title,
			Type:        fieldType(prop.Type),
			PrimaryKey:  name == "id" || extensionFlag(prop.Extensions, primaryKeyExtension),
		}
		if _, ok := required[name]; ok {
			meta.Required = true
		}
		if len(prop.Enum) > 0 {
			meta.Enum = append([]any(nil), prop.Enum...)
		}
		if prop.Min != nil {
			value := *prop.Min
			meta.Minimum = &value
		}
		if prop.Max != nil {
			value := *prop.Max
			meta.Maximum = &value
		}
		if prop.MaxLength != nil {
			value := int(*prop.MaxLength)
			meta.MaxLength = &value
		}
		meta.Pattern = prop.Pattern

		fields = append(fields, meta)
	}
	return fields, nil
}

func fieldType(types *openapi3.Types) model.FieldType {
	if types == nil {
		return model.FieldTypeString
	}
	for _, kind := range types.Slice() {
		switch kind {
		case "integer":
			return model.FieldTypeInteger
		case "number":
			return model.FieldTypeNumber
		case "boolean":
			return model.FieldTypeBoolean
		case "string":
			return model.FieldTypeString
		}
	}
	return model.FieldTypeString
}

func extensionFlag(extensions map[string]any, key string) bool {
	if len(extensions) == 0 {
		return false
	}
	switch v := extensions[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
