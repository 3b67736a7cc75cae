package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

// CasbinAuthorizer adapts a casbin enforcer to the Authorizer contract.
// Requests are enforced as (subject, object, action) where the object is
// "<applabel>/<model>" and the action is the short permission name, so a
// policy line like
//
//	p, role:editor, library/book, change
//
// grants the "library.change_book" permission.
type CasbinAuthorizer struct {
	enforcer *casbin.Enforcer
}

var _ Authorizer = (*CasbinAuthorizer)(nil)

// NewCasbinAuthorizer wraps an already-configured enforcer.
func NewCasbinAuthorizer(enforcer *casbin.Enforcer) (*CasbinAuthorizer, error) {
	if enforcer == nil {
		return nil, fmt.Errorf("auth: casbin enforcer is required")
	}
	return &CasbinAuthorizer{enforcer: enforcer}, nil
}

// NewCasbinAuthorizerFromFiles builds an enforcer from a casbin model file
// and a CSV policy file.
func NewCasbinAuthorizerFromFiles(modelPath, policyPath string) (*CasbinAuthorizer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, fmt.Errorf("auth: build casbin enforcer: %w", err)
	}
	enforcer.SetAdapter(fileadapter.NewAdapter(policyPath))
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("auth: load casbin policy: %w", err)
	}
	return &CasbinAuthorizer{enforcer: enforcer}, nil
}

// HasPermission implements Authorizer.
func (a *CasbinAuthorizer) HasPermission(subject, permission string) (bool, error) {
	appLabel, action, modelName, ok := SplitPermissionName(permission)
	if !ok {
		return false, fmt.Errorf("auth: malformed permission name %q", permission)
	}
	allowed, err := a.enforcer.Enforce(subject, appLabel+"/"+modelName, action)
	if err != nil {
		return false, fmt.Errorf("auth: enforce %q for %q: %w", permission, subject, err)
	}
	return allowed, nil
}
