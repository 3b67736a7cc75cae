package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

func TestFullPermissionName(t *testing.T) {
	if got := FullPermissionName("library", "browse", "Book"); got != "library.browse_book" {
		t.Fatalf("unexpected permission name: %q", got)
	}
}

func TestSplitPermissionName(t *testing.T) {
	appLabel, action, modelName, ok := SplitPermissionName("library.change_book")
	if !ok || appLabel != "library" || action != "change" || modelName != "book" {
		t.Fatalf("unexpected split: %q %q %q %v", appLabel, action, modelName, ok)
	}
	for _, malformed := range []string{"", "library", "library.", ".change_book", "library.changebook"} {
		if _, _, _, ok := SplitPermissionName(malformed); ok {
			t.Fatalf("expected split to fail for %q", malformed)
		}
	}
}

func TestStatic(t *testing.T) {
	authz := NewStatic().
		Define("library.browse_book").
		Grant("alice", "library.read_book")

	if ok, err := authz.HasPermission("alice", "library.read_book"); err != nil || !ok {
		t.Fatalf("expected grant to hold: %v %v", ok, err)
	}
	if ok, _ := authz.HasPermission("alice", "library.browse_book"); ok {
		t.Fatalf("define must not grant")
	}
	if ok, _ := authz.HasPermission("bob", "library.read_book"); ok {
		t.Fatalf("unknown subject must not pass")
	}
	if !authz.KnownPermission("library.browse_book") || !authz.KnownPermission("library.read_book") {
		t.Fatalf("catalog should know defined and granted permissions")
	}
	if authz.KnownPermission("library.delete_book") {
		t.Fatalf("catalog should not invent permissions")
	}
}

func TestHeaderIdentityProvider(t *testing.T) {
	provider := HeaderIdentityProvider{}

	req := httptest.NewRequest("GET", "/", nil)
	if id := provider.Identity(req); id.Authenticated() {
		t.Fatalf("missing header should be anonymous")
	}

	req.Header.Set("X-Remote-User", "alice")
	id := provider.Identity(req)
	if !id.Authenticated() || id.Subject() != "alice" {
		t.Fatalf("unexpected identity: %v %q", id.Authenticated(), id.Subject())
	}
}

const casbinModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

func TestCasbinAuthorizer(t *testing.T) {
	m, err := casbinmodel.NewModelFromString(casbinModelText)
	if err != nil {
		t.Fatalf("casbin model: %v", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("casbin enforcer: %v", err)
	}
	if _, err := enforcer.AddPolicy("alice", "library/book", "change"); err != nil {
		t.Fatalf("add policy: %v", err)
	}

	authz, err := NewCasbinAuthorizer(enforcer)
	if err != nil {
		t.Fatalf("new authorizer: %v", err)
	}

	if ok, err := authz.HasPermission("alice", "library.change_book"); err != nil || !ok {
		t.Fatalf("expected policy to allow: %v %v", ok, err)
	}
	if ok, _ := authz.HasPermission("alice", "library.delete_book"); ok {
		t.Fatalf("expected missing policy to deny")
	}
	if _, err := authz.HasPermission("alice", "garbage"); err == nil {
		t.Fatalf("expected malformed permission error")
	}
}
