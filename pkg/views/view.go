package views

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-bread/pkg/auth"
	"github.com/goliatone/go-bread/pkg/render"
)

const allViews = "BREAD"

// viewDef ties a view letter to its permission action and template names.
// Edit and add share the edit template; delete uses the conventional
// confirm_delete suffix for the model-specific override.
type viewDef struct {
	letter      byte
	name        string
	action      string
	modelSuffix string
	generic     string
}

var viewDefs = []viewDef{
	{'B', "browse", "browse", "browse", "bread/browse"},
	{'R', "read", "read", "read", "bread/read"},
	{'E', "edit", "change", "edit", "bread/edit"},
	{'A', "add", "add", "edit", "bread/edit"},
	{'D', "delete", "delete", "confirm_delete", "bread/delete"},
}

func defFor(name string) viewDef {
	for _, def := range viewDefs {
		if def.name == name {
			return def
		}
	}
	panic(fmt.Sprintf("views: unknown view %q", name))
}

// authorize runs the shared gate: unauthenticated requests are redirected to
// the login URL with the original URL in "next"; authenticated requests
// without the view's permission get a 403. The identity is returned only
// when the request may proceed.
func (b *Bread) authorize(w http.ResponseWriter, r *http.Request, action string) (auth.Identity, bool) {
	id := b.identities.Identity(r)
	if id == nil || !id.Authenticated() {
		target := b.cfg.LoginURL + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusFound)
		return nil, false
	}

	allowed, err := b.authorizer.HasPermission(id.Subject(), b.permission(action))
	if err != nil {
		http.Error(w, "permission check failed", http.StatusInternalServerError)
		return nil, false
	}
	if !allowed {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return id, true
}

// baseContext assembles the values every view template receives.
func (b *Bread) baseContext(id auth.Identity) map[string]any {
	data := map[string]any{
		"bread": map[string]any{
			"name":        b.desc.Name(),
			"plural_name": b.desc.PluralName(),
			"app_label":   b.desc.AppLabel(),
			"namespace":   b.namespace,
		},
		"verbose_name":        b.desc.VerboseName(),
		"verbose_name_plural": b.desc.VerbosePluralName(),
		"base_template":       b.cfg.DefaultBaseTemplate,
		"user":                id.Subject(),
		"browse_url":          b.routePath("browse"),
	}

	for _, def := range viewDefs {
		allowed := false
		if b.enabled(def.letter) {
			allowed, _ = b.authorizer.HasPermission(id.Subject(), b.permission(def.action))
		}
		data["may_"+def.name] = allowed
	}

	if b.themeCfg != nil {
		data["theme"] = render.BuildThemeContext(b.themeCfg)
	}
	return data
}

// templateNames returns the candidate template names for a view, most
// specific first. A configured name pattern replaces the conventional list.
func (b *Bread) templateNames(def viewDef) []string {
	if pattern := b.cfg.DefaultTemplateNamePattern; pattern != "" {
		name := strings.NewReplacer(
			"{app_label}", b.desc.AppLabel(),
			"{model}", b.desc.Name(),
			"{view}", def.name,
		).Replace(pattern)
		return []string{name}
	}
	return []string{
		fmt.Sprintf("%s/%s_%s", b.desc.AppLabel(), b.desc.Name(), def.modelSuffix),
		def.generic,
	}
}

// renderView tries each candidate template in order, so a deployment can
// drop in a model-specific template without touching the generic one.
func (b *Bread) renderView(w http.ResponseWriter, def viewDef, status int, data map[string]any) {
	var lastErr error
	for _, name := range b.templateNames(def) {
		html, err := b.engine.RenderTemplate(name, data)
		if err != nil {
			lastErr = err
			continue
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, html)
		return
	}
	http.Error(w, fmt.Sprintf("render %s view: %v", def.name, lastErr), http.StatusInternalServerError)
}

// urlWithPage rebuilds the request URL with a different page parameter,
// preserving filters and any other query parameters.
func urlWithPage(r *http.Request, page int) string {
	query := r.URL.Query()
	query.Set("page", fmt.Sprint(page))
	return r.URL.Path + "?" + query.Encode()
}
