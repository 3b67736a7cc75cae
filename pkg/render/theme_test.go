package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

type stubSelector struct {
	selection *theme.Selection
	calls     []struct{ name, variant string }
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, struct{ name, variant string }{name, variant})
	return s.selection, nil
}

func TestResolveTheme(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456"},
		},
	}}

	cfg, err := ResolveTheme(selector, "acme", "dark", map[string]string{"layout.base": "base.html"})
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected renderer config")
	}
	if len(selector.calls) != 1 || selector.calls[0].name != "acme" {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("selection not propagated: %+v", cfg)
	}
	if cfg.Partials["layout.base"] != "base.html" {
		t.Fatalf("fallback partials not applied: %+v", cfg.Partials)
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens: %+v", cfg.CSSVars)
	}
}

func TestResolveTheme_NilSelector(t *testing.T) {
	cfg, err := ResolveTheme(nil, "acme", "", nil)
	if err != nil || cfg != nil {
		t.Fatalf("nil selector should resolve to nil config, got %v %v", cfg, err)
	}
}

func TestBuildThemeContext(t *testing.T) {
	got := BuildThemeContext(&theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens:  map[string]string{"brand": "#123456"},
		CSSVars: map[string]string{"--brand": "#123456", "--accent": "#fff"},
	})

	want := ThemeContext{
		Name:         "acme",
		Variant:      "dark",
		Tokens:       map[string]string{"brand": "#123456"},
		CSSVars:      map[string]string{"--brand": "#123456", "--accent": "#fff"},
		CSSVarsStyle: "--accent: #fff; --brand: #123456;",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("theme context mismatch (-want +got):\n%s", diff)
	}

	if empty := BuildThemeContext(nil); empty.Name != "" || empty.CSSVarsStyle != "" {
		t.Fatalf("nil config should produce zero context, got %+v", empty)
	}
}
