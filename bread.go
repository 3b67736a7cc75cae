// Package bread generates Browse, Read, Edit, Add, and Delete views for
// record types described by a descriptor, gated by per-view permissions.
// The root package re-exports the pieces most callers wire together; the
// subpackages under pkg/ hold the implementations.
package bread

import (
	"net/http"

	"github.com/goliatone/go-bread/pkg/auth"
	"github.com/goliatone/go-bread/pkg/model"
	"github.com/goliatone/go-bread/pkg/resolver"
	"github.com/goliatone/go-bread/pkg/store"
	"github.com/goliatone/go-bread/pkg/views"
)

// Bread bundles the five generated views for one record type.
type Bread = views.Bread

// Option customises view construction.
type Option = views.Option

// Config carries deployment-wide view defaults.
type Config = views.Config

// Route is one mounted view endpoint.
type Route = views.Route

// FieldSpec pairs an optional display label with an evaluator for browse
// columns and read fields.
type FieldSpec = resolver.FieldSpec

// Descriptor is the registered description of a record type.
type Descriptor = model.Descriptor

// Record is the map shape records travel in.
type Record = model.Record

// FieldMeta is the declared metadata for one record field.
type FieldMeta = model.FieldMeta

// New builds the views for one record type. See views.New.
func New(desc *Descriptor, records store.Store, authorizer auth.Authorizer, options ...Option) (*Bread, error) {
	return views.New(desc, records, authorizer, options...)
}

// NewDescriptor constructs a record descriptor.
func NewDescriptor(name string, options ...model.Option) (*Descriptor, error) {
	return model.New(name, options...)
}

// DescriptorOf builds a descriptor from a struct prototype.
func DescriptorOf(name string, prototype any, options ...model.Option) (*Descriptor, error) {
	return model.DescriptorOf(name, prototype, options...)
}

// Mount registers every Bread's routes on mux under base. It is a small
// convenience over calling RegisterRoutes per record type.
func Mount(mux views.Mux, base string, breads ...*Bread) ([]Route, error) {
	var out []Route
	for _, b := range breads {
		routes, err := b.RegisterRoutes(mux, base)
		if err != nil {
			return nil, err
		}
		out = append(out, routes...)
	}
	return out, nil
}

var _ views.Mux = (*http.ServeMux)(nil)
