// Package views generates permission-gated Browse, Read, Edit, Add, and
// Delete HTTP views from a record descriptor, a store, and an authorizer.
// One Bread value per record type replaces five hand-written handlers plus
// their routes, templates, and permission plumbing.
package views

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-bread/pkg/auth"
	"github.com/goliatone/go-bread/pkg/forms"
	"github.com/goliatone/go-bread/pkg/model"
	"github.com/goliatone/go-bread/pkg/render"
	"github.com/goliatone/go-bread/pkg/render/gotemplate"
	"github.com/goliatone/go-bread/pkg/resolver"
	"github.com/goliatone/go-bread/pkg/store"
)

// Bread bundles the five generated views for one record type. Construction
// validates everything that can be validated statically: view letters,
// column and read-field specs, form field names, and, when the authorizer
// exposes a catalog, the existence of every required permission.
type Bread struct {
	desc       *model.Descriptor
	records    store.Store
	authorizer auth.Authorizer
	identities auth.IdentityProvider
	engine     render.TemplateRenderer
	cfg        Config

	views     string
	namespace string

	columns        []resolver.FieldSpec
	columnResolver *resolver.Resolver
	readFields     []resolver.FieldSpec
	readResolver   *resolver.Resolver

	formFields  []string
	formExclude []string

	filterFields []string
	pageSize     int

	themeCfg *theme.RendererConfig

	routes map[string]Route
}

// Option customises a Bread during construction.
type Option func(*settings)

type settings struct {
	cfg          *Config
	views        string
	namespace    string
	engine       render.TemplateRenderer
	identities   auth.IdentityProvider
	columns      []resolver.FieldSpec
	readFields   []resolver.FieldSpec
	formFields   []string
	formExclude  []string
	filterFields []string
	pageSize     int

	themeCfg      *theme.RendererConfig
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
}

// WithConfig supplies deployment-wide defaults. Unset fields fall back to
// DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		withDefaults := cfg.withDefaults()
		s.cfg = &withDefaults
	}
}

// WithViews restricts which views are generated. The string is any subset of
// the letters "BREAD"; order and case do not matter.
func WithViews(views string) Option {
	return func(s *settings) {
		s.views = strings.ToUpper(strings.TrimSpace(views))
	}
}

// WithNamespace prefixes route names with "<namespace>:".
func WithNamespace(namespace string) Option {
	return func(s *settings) {
		s.namespace = strings.TrimSpace(namespace)
	}
}

// WithEngine overrides the template engine. The default renders the bundled
// generic templates through the pongo2-backed engine.
func WithEngine(engine render.TemplateRenderer) Option {
	return func(s *settings) {
		s.engine = engine
	}
}

// WithIdentityProvider overrides how the request identity is extracted.
// Defaults to reading the X-Remote-User header.
func WithIdentityProvider(provider auth.IdentityProvider) Option {
	return func(s *settings) {
		s.identities = provider
	}
}

// WithColumns declares the browse table columns. Each spec is classified and
// label-checked at construction; without this option every declared field
// becomes a column.
func WithColumns(specs ...resolver.FieldSpec) Option {
	return func(s *settings) {
		s.columns = append(s.columns, specs...)
	}
}

// WithReadFields switches the read view to a label/value listing driven by
// the given specs instead of the record form.
func WithReadFields(specs ...resolver.FieldSpec) Option {
	return func(s *settings) {
		s.readFields = append(s.readFields, specs...)
	}
}

// WithFormFields restricts the edit and add forms to the named fields.
func WithFormFields(names ...string) Option {
	return func(s *settings) {
		s.formFields = append(s.formFields, names...)
	}
}

// WithFormExclude removes fields from the edit and add forms.
func WithFormExclude(names ...string) Option {
	return func(s *settings) {
		s.formExclude = append(s.formExclude, names...)
	}
}

// WithFilterFields enables equality filtering on the browse view for the
// named declared fields, driven by query parameters of the same name.
func WithFilterFields(names ...string) Option {
	return func(s *settings) {
		s.filterFields = append(s.filterFields, names...)
	}
}

// WithPageSize enables browse pagination, overriding Config.PageSize.
func WithPageSize(size int) Option {
	return func(s *settings) {
		s.pageSize = size
	}
}

// WithTheme resolves the named theme through the selector at construction
// and exposes it to templates as the "theme" context value.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(s *settings) {
		s.themeSelector = selector
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithThemeConfig supplies an already-resolved theme.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(s *settings) {
		s.themeCfg = cfg
	}
}

// New builds the views for one record type. It returns an error, never a
// half-configured Bread, when any part of the configuration cannot work:
// unknown view letters, column specs that cannot derive a label, form or
// filter fields that are not declared, or missing permissions.
func New(desc *model.Descriptor, records store.Store, authorizer auth.Authorizer, options ...Option) (*Bread, error) {
	if desc == nil {
		return nil, fmt.Errorf("views: descriptor is required")
	}
	if records == nil {
		return nil, fmt.Errorf("views: store is required")
	}
	if authorizer == nil {
		return nil, fmt.Errorf("views: authorizer is required")
	}

	s := settings{views: allViews, pageSize: -1}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}

	cfg := DefaultConfig()
	if s.cfg != nil {
		cfg = *s.cfg
	}

	b := &Bread{
		desc:         desc,
		records:      records,
		authorizer:   authorizer,
		identities:   s.identities,
		engine:       s.engine,
		cfg:          cfg,
		views:        s.views,
		namespace:    s.namespace,
		columns:      s.columns,
		readFields:   s.readFields,
		formFields:   s.formFields,
		formExclude:  s.formExclude,
		filterFields: s.filterFields,
		pageSize:     s.pageSize,
		themeCfg:     s.themeCfg,
	}

	if b.views == "" {
		b.views = allViews
	}
	for _, letter := range b.views {
		if !strings.ContainsRune(allViews, letter) {
			return nil, fmt.Errorf("views: %q is not one of the view letters %q", string(letter), allViews)
		}
	}

	if b.identities == nil {
		b.identities = auth.HeaderIdentityProvider{}
	}
	if b.engine == nil {
		engine, err := defaultEngine()
		if err != nil {
			return nil, err
		}
		b.engine = engine
	}
	if b.pageSize < 0 {
		b.pageSize = cfg.PageSize
	}

	if len(b.columns) == 0 {
		for _, field := range desc.Fields() {
			b.columns = append(b.columns, resolver.FieldSpec{Eval: field.Name})
		}
	}
	columnResolver, err := resolver.New(desc, b.columns)
	if err != nil {
		return nil, fmt.Errorf("views: browse columns for %s: %w", desc.Name(), err)
	}
	b.columnResolver = columnResolver

	if len(b.readFields) > 0 {
		readResolver, err := resolver.New(desc, b.readFields)
		if err != nil {
			return nil, fmt.Errorf("views: read fields for %s: %w", desc.Name(), err)
		}
		b.readResolver = readResolver
	}

	// Building a throwaway form surfaces unknown form field names now
	// instead of on the first edit request.
	if _, err := b.newForm(); err != nil {
		return nil, err
	}

	for _, name := range b.filterFields {
		if _, ok := desc.Field(name); !ok {
			return nil, fmt.Errorf("views: filter field %q is not declared on %s", name, desc.Name())
		}
	}

	if s.themeSelector != nil {
		resolved, err := render.ResolveTheme(s.themeSelector, s.themeName, s.themeVariant, nil)
		if err != nil {
			return nil, fmt.Errorf("views: %w", err)
		}
		b.themeCfg = resolved
	}

	if catalog, ok := authorizer.(auth.Catalog); ok {
		for _, def := range viewDefs {
			if !b.enabled(def.letter) {
				continue
			}
			permission := b.permission(def.action)
			if !catalog.KnownPermission(permission) {
				return nil, fmt.Errorf("views: permission %q is not defined", permission)
			}
		}
	}

	return b, nil
}

// Descriptor returns the record descriptor the views were built for.
func (b *Bread) Descriptor() *model.Descriptor { return b.desc }

// Views returns the enabled view letters.
func (b *Bread) Views() string { return b.views }

func (b *Bread) enabled(letter byte) bool {
	return strings.IndexByte(b.views, letter) >= 0
}

func (b *Bread) permission(action string) string {
	return auth.FullPermissionName(b.desc.AppLabel(), action, b.desc.Name())
}

func (b *Bread) newForm() (*forms.Form, error) {
	var opts []forms.Option
	if len(b.formFields) > 0 {
		opts = append(opts, forms.WithFields(b.formFields...))
	}
	if len(b.formExclude) > 0 {
		opts = append(opts, forms.WithExclude(b.formExclude...))
	}
	form, err := forms.New(b.desc, opts...)
	if err != nil {
		return nil, fmt.Errorf("views: build form for %s: %w", b.desc.Name(), err)
	}
	return form, nil
}

func defaultEngine() (render.TemplateRenderer, error) {
	files, err := Templates()
	if err != nil {
		return nil, err
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		return nil, fmt.Errorf("views: build default engine: %w", err)
	}
	return engine, nil
}
