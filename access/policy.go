// Package access enforces the capability checks of the administrative and
// consumer API boundaries: only the designated administrator may mutate the
// configuration registry, and only users holding a grant may verify
// reports. The checks live here, at the boundary, so the core registry and
// engine stay policy-free.
package access

import (
	"errors"
	"fmt"
	"sync"

	"github.com/donlabs/feedverify/model/feed"
)

// UnauthorizedError indicates a caller invoking an operation their
// identity does not permit.
type UnauthorizedError struct {
	Caller    feed.Identity
	Operation string
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("identity %q is not authorized to %s", e.Caller, e.Operation)
}

func IsUnauthorizedError(err error) bool {
	var errUnauthorized UnauthorizedError
	return errors.As(err, &errUnauthorized)
}

// Policy knows the administrator identity and the set of granted
// consumers.
type Policy struct {
	mu     sync.RWMutex
	admin  feed.Identity
	grants map[feed.Identity]struct{}
}

func NewPolicy(admin feed.Identity) *Policy {
	return &Policy{
		admin:  admin,
		grants: make(map[feed.Identity]struct{}),
	}
}

// Grant permits the given users to call the consumer API.
func (p *Policy) Grant(users ...feed.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, user := range users {
		p.grants[user] = struct{}{}
	}
}

// Revoke withdraws the consumer grant of the given users.
func (p *Policy) Revoke(users ...feed.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, user := range users {
		delete(p.grants, user)
	}
}

// AuthorizeAdmin checks that the caller is the designated administrator.
func (p *Policy) AuthorizeAdmin(caller feed.Identity, operation string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if caller != p.admin {
		return UnauthorizedError{Caller: caller, Operation: operation}
	}
	return nil
}

// AuthorizeConsumer checks that the caller holds a consumer grant.
func (p *Policy) AuthorizeConsumer(caller feed.Identity, operation string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.grants[caller]; !ok {
		return UnauthorizedError{Caller: caller, Operation: operation}
	}
	return nil
}
