package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// Identity is the authenticated-user abstraction the view layer consumes.
type Identity interface {
	// Authenticated reports whether this identity represents a logged-in
	// subject. Anonymous requests yield an unauthenticated identity, never a
	// nil one.
	Authenticated() bool
	// Subject is the stable identifier permission checks key on.
	Subject() string
}

// IdentityProvider extracts the request identity. Implementations typically
// wrap a session or token layer.
type IdentityProvider interface {
	Identity(r *http.Request) Identity
}

// Authorizer answers permission checks for a subject. Permission names use
// the full "<applabel>.<action>_<model>" form.
type Authorizer interface {
	HasPermission(subject, permission string) (bool, error)
}

// Catalog is optionally implemented by authorizers that can enumerate the
// permissions they know about. The view layer uses it at construction time
// to fail loudly when a required permission was never defined.
type Catalog interface {
	KnownPermission(permission string) bool
}

// FullPermissionName builds "<applabel>.<action>_<model>".
func FullPermissionName(appLabel, action, modelName string) string {
	return fmt.Sprintf("%s.%s_%s", appLabel, action, strings.ToLower(modelName))
}

// SplitPermissionName splits a full permission name into its app label,
// action, and model parts. The second return is false for malformed names.
func SplitPermissionName(permission string) (appLabel, action, modelName string, ok bool) {
	appLabel, rest, found := strings.Cut(permission, ".")
	if !found || appLabel == "" || rest == "" {
		return "", "", "", false
	}
	action, modelName, found = strings.Cut(rest, "_")
	if !found || action == "" || modelName == "" {
		return "", "", "", false
	}
	return appLabel, action, modelName, true
}

type identity struct {
	subject       string
	authenticated bool
}

func (i identity) Authenticated() bool { return i.authenticated }
func (i identity) Subject() string     { return i.subject }

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity { return identity{} }

// Subject returns an authenticated identity for the given subject id.
func Subject(id string) Identity {
	id = strings.TrimSpace(id)
	return identity{subject: id, authenticated: id != ""}
}

// HeaderIdentityProvider reads the subject from a request header. It is the
// simplest provider for services that terminate authentication upstream.
type HeaderIdentityProvider struct {
	// Header defaults to "X-Remote-User".
	Header string
}

func (p HeaderIdentityProvider) Identity(r *http.Request) Identity {
	header := p.Header
	if header == "" {
		header = "X-Remote-User"
	}
	if r == nil {
		return Anonymous()
	}
	return Subject(r.Header.Get(header))
}
