package auth

import "sync"

// Static is an in-memory authorizer: a subject-to-permissions table plus the
// catalog of every permission it has ever been told about. Suitable for
// tests, examples, and small deployments.
type Static struct {
	mu     sync.RWMutex
	grants map[string]map[string]struct{}
	known  map[string]struct{}
}

var (
	_ Authorizer = (*Static)(nil)
	_ Catalog    = (*Static)(nil)
)

// NewStatic constructs an empty Static authorizer.
func NewStatic() *Static {
	return &Static{
		grants: make(map[string]map[string]struct{}),
		known:  make(map[string]struct{}),
	}
}

// Define registers permissions in the catalog without granting them.
func (s *Static) Define(permissions ...string) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, perm := range permissions {
		s.known[perm] = struct{}{}
	}
	return s
}

// Grant gives subject the listed permissions, defining them as a side
// effect.
func (s *Static) Grant(subject string, permissions ...string) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()

	grants, ok := s.grants[subject]
	if !ok {
		grants = make(map[string]struct{})
		s.grants[subject] = grants
	}
	for _, perm := range permissions {
		grants[perm] = struct{}{}
		s.known[perm] = struct{}{}
	}
	return s
}

// HasPermission implements Authorizer.
func (s *Static) HasPermission(subject, permission string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grants, ok := s.grants[subject]
	if !ok {
		return false, nil
	}
	_, ok = grants[permission]
	return ok, nil
}

// KnownPermission implements Catalog.
func (s *Static) KnownPermission(permission string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.known[permission]
	return ok
}
