package resolver

import (
	"github.com/goliatone/go-bread/pkg/model"
)

// Context is the render context handed to context functions. The record under
// resolution is reachable under ObjectKey.
type Context map[string]any

// ObjectKey is the well-known context key holding the record instance.
const ObjectKey = "object"

// ContextFunc is a context-aware evaluator: it receives the full render
// context and computes a display value. Errors propagate unmodified.
type ContextFunc func(Context) (any, error)

// SimpleContextFunc is accepted as a convenience for evaluators that cannot
// fail.
type SimpleContextFunc func(Context) any

// Evaluator is the tagged-variant form of a field spec evaluator. Exactly one
// variant applies to any spec; Classify picks it by capability probe against
// the descriptor member table, in strict priority order.
type Evaluator interface {
	evaluator()
}

// AttributeRef resolves to the current value of a plain record attribute.
type AttributeRef struct{ Name string }

// MethodRef resolves to the result of invoking a zero-argument record method.
type MethodRef struct{ Name string }

// Literal resolves to the string itself, unchanged.
type Literal struct{ Value string }

// ContextFn resolves to the result of invoking a callable with the render
// context.
type ContextFn struct{ Fn ContextFunc }

// Opaque resolves to the string representation of an arbitrary value.
type Opaque struct{ Value any }

func (AttributeRef) evaluator() {}
func (MethodRef) evaluator()    {}
func (Literal) evaluator()      {}
func (ContextFn) evaluator()    {}
func (Opaque) evaluator()       {}

// Classify probes desc's member table and assigns raw to exactly one
// evaluator variant:
//
//  1. a string naming a registered plain attribute -> AttributeRef
//  2. a string naming a registered zero-argument method -> MethodRef
//  3. any other string -> Literal
//  4. a non-string callable taking the render context -> ContextFn
//  5. anything else -> Opaque
//
// A string is tested against modes 1 and 2 by the callability of the
// registered member, not by naming convention, so the same name can point at
// either transparently. An already-tagged Evaluator passes through
// unchanged, so callers can skip the probe and force a variant, a literal
// that collides with a member name in particular.
func Classify(raw any, desc *model.Descriptor) Evaluator {
	switch v := raw.(type) {
	case Evaluator:
		return v
	case string:
		if desc != nil {
			if _, ok := desc.Attribute(v); ok {
				return AttributeRef{Name: v}
			}
			if _, ok := desc.Method(v); ok {
				return MethodRef{Name: v}
			}
		}
		return Literal{Value: v}
	case ContextFunc:
		return ContextFn{Fn: v}
	case func(Context) (any, error):
		return ContextFn{Fn: v}
	case SimpleContextFunc:
		return ContextFn{Fn: liftContextFunc(v)}
	case func(Context) any:
		return ContextFn{Fn: liftContextFunc(v)}
	default:
		return Opaque{Value: raw}
	}
}

func liftContextFunc(fn func(Context) any) ContextFunc {
	return func(ctx Context) (any, error) {
		return fn(ctx), nil
	}
}
