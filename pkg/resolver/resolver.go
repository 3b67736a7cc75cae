package resolver

import (
	"fmt"

	"github.com/goliatone/go-bread/pkg/model"
)

// FieldSpec pairs an optional display label with an evaluator. An empty
// label asks for derivation from the descriptor's field metadata, which is
// only possible when the evaluator names a declared field (attribute or
// method modes).
type FieldSpec struct {
	Label string
	Eval  any
}

// ResolvedField is one output row of a resolution pass.
type ResolvedField struct {
	Label string
	Value any
}

type boundSpec struct {
	label string
	eval  Evaluator
}

// Resolver turns a static field spec list into (label, value) rows for a
// record and its render context. Classification and label derivation happen
// once, at construction; Resolve itself is a pure pass over the bound specs.
type Resolver struct {
	desc  *model.Descriptor
	specs []boundSpec
}

// New classifies and validates specs against desc. It fails with a
// *ConfigurationError when a label must be derived but the referenced name
// has no field metadata, or when a spec whose evaluator can never derive a
// label (literal, context function, opaque) omits an explicit one.
func New(desc *model.Descriptor, specs []FieldSpec) (*Resolver, error) {
	if desc == nil {
		return nil, fmt.Errorf("resolver: descriptor is required")
	}

	bound := make([]boundSpec, 0, len(specs))
	for i, spec := range specs {
		eval := Classify(spec.Eval, desc)
		label := spec.Label
		if label == "" {
			derived, err := deriveLabel(i, spec, eval, desc)
			if err != nil {
				return nil, err
			}
			label = derived
		}
		bound = append(bound, boundSpec{label: label, eval: eval})
	}

	return &Resolver{desc: desc, specs: bound}, nil
}

func deriveLabel(index int, spec FieldSpec, eval Evaluator, desc *model.Descriptor) (string, error) {
	var name string
	switch v := eval.(type) {
	case AttributeRef:
		name = v.Name
	case MethodRef:
		name = v.Name
	default:
		return "", &ConfigurationError{
			Index:     index,
			Evaluator: spec.Eval,
			Reason:    "label is required when the evaluator does not name a record member",
		}
	}

	label, ok := desc.FieldVerboseName(name)
	if !ok {
		return "", &ConfigurationError{
			Index:     index,
			Evaluator: spec.Eval,
			Reason:    fmt.Sprintf("cannot derive label: %q has no field metadata", name),
		}
	}
	return label, nil
}

// Len returns the number of bound field specs.
func (r *Resolver) Len() int { return len(r.specs) }

// Labels returns the bound labels in declaration order. Useful for table
// headers, which need the labels without resolving any record.
func (r *Resolver) Labels() []string {
	out := make([]string, len(r.specs))
	for i, spec := range r.specs {
		out[i] = spec.label
	}
	return out
}

// Resolve produces one ResolvedField per spec, in declaration order. Errors
// from method or context-function evaluators propagate unmodified; there is
// no retry and no suppression.
func (r *Resolver) Resolve(rec any, ctx Context) ([]ResolvedField, error) {
	out := make([]ResolvedField, 0, len(r.specs))
	for _, spec := range r.specs {
		value, err := r.evaluate(spec.eval, rec, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, ResolvedField{Label: spec.label, Value: value})
	}
	return out, nil
}

func (r *Resolver) evaluate(eval Evaluator, rec any, ctx Context) (any, error) {
	switch v := eval.(type) {
	case AttributeRef:
		getter, ok := r.desc.Attribute(v.Name)
		if !ok {
			return nil, fmt.Errorf("resolver: attribute %q no longer registered", v.Name)
		}
		return getter(rec), nil
	case MethodRef:
		method, ok := r.desc.Method(v.Name)
		if !ok {
			return nil, fmt.Errorf("resolver: method %q no longer registered", v.Name)
		}
		return method(rec)
	case Literal:
		return v.Value, nil
	case ContextFn:
		return v.Fn(ctx)
	case Opaque:
		return fmt.Sprint(v.Value), nil
	default:
		return nil, fmt.Errorf("resolver: unknown evaluator variant %T", eval)
	}
}
