package views

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Mux is the subset of *http.ServeMux that route registration needs, so the
// views can mount on any router that speaks Go 1.22 patterns.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Route is one mounted view endpoint. Path may contain the {pk} placeholder.
type Route struct {
	Name    string
	Methods []string
	Path    string
}

// URLName returns the route name for a view: browse_<plural> for browse,
// <view>_<name> for the rest, prefixed with the namespace when one is set.
func (b *Bread) URLName(view string) string {
	def := defFor(view)
	name := def.name + "_" + b.desc.Name()
	if def.name == "browse" {
		name = "browse_" + b.desc.PluralName()
	}
	if b.namespace != "" {
		return b.namespace + ":" + name
	}
	return name
}

// RegisterRoutes mounts the enabled views on mux under base (usually "").
// Browse lives at <base>/<plural>/, add at add/, and the per-record views at
// {pk}/, {pk}/edit/, and {pk}/delete/. Every pattern is method-qualified and
// anchored, so the mux rejects stray methods and deeper paths on its own.
func (b *Bread) RegisterRoutes(mux Mux, base string) ([]Route, error) {
	if mux == nil {
		return nil, fmt.Errorf("views: mux is required")
	}

	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = ""
	}
	root := base + "/" + b.desc.PluralName() + "/"

	mounts := []struct {
		def     viewDef
		path    string
		methods []string
		handler http.Handler
	}{
		{defFor("browse"), root, []string{http.MethodGet}, b.handleBrowse()},
		{defFor("read"), root + "{pk}/", []string{http.MethodGet}, b.handleRead()},
		{defFor("edit"), root + "{pk}/edit/", []string{http.MethodGet, http.MethodPost}, b.handleEdit()},
		{defFor("add"), root + "add/", []string{http.MethodGet, http.MethodPost}, b.handleAdd()},
		{defFor("delete"), root + "{pk}/delete/", []string{http.MethodGet, http.MethodPost}, b.handleDelete()},
	}

	b.routes = make(map[string]Route, len(mounts))
	var out []Route
	for _, m := range mounts {
		if !b.enabled(m.def.letter) {
			continue
		}
		route := Route{Name: b.URLName(m.def.name), Methods: m.methods, Path: m.path}
		for _, method := range m.methods {
			mux.Handle(method+" "+m.path+"{$}", m.handler)
		}
		b.routes[m.def.name] = route
		out = append(out, route)
	}
	return out, nil
}

// Routes returns the registered routes. Empty before RegisterRoutes.
func (b *Bread) Routes() []Route {
	out := make([]Route, 0, len(b.routes))
	for _, def := range viewDefs {
		if route, ok := b.routes[def.name]; ok {
			out = append(out, route)
		}
	}
	return out
}

// Reverse resolves a route name, qualified or not, to a concrete path. Views
// whose path carries a {pk} placeholder require the primary key argument.
func (b *Bread) Reverse(name string, pk ...string) (string, error) {
	for _, route := range b.routes {
		short := route.Name
		if b.namespace != "" {
			short = strings.TrimPrefix(short, b.namespace+":")
		}
		if route.Name != name && short != name {
			continue
		}
		path := route.Path
		if strings.Contains(path, "{pk}") {
			if len(pk) == 0 || pk[0] == "" {
				return "", fmt.Errorf("views: route %q requires a primary key", name)
			}
			path = strings.Replace(path, "{pk}", url.PathEscape(pk[0]), 1)
		}
		return path, nil
	}
	return "", fmt.Errorf("views: no route named %q", name)
}

// routePath returns a view's mounted path, falling back to the conventional
// unprefixed layout when RegisterRoutes has not run yet.
func (b *Bread) routePath(view string) string {
	if route, ok := b.routes[view]; ok {
		return route.Path
	}
	root := "/" + b.desc.PluralName() + "/"
	switch view {
	case "browse":
		return root
	case "read":
		return root + "{pk}/"
	case "edit":
		return root + "{pk}/edit/"
	case "add":
		return root + "add/"
	case "delete":
		return root + "{pk}/delete/"
	default:
		return root
	}
}

// recordPath fills a per-record view path with the escaped primary key.
func (b *Bread) recordPath(view, pk string) string {
	return strings.Replace(b.routePath(view), "{pk}", url.PathEscape(pk), 1)
}
