// Package session holds per-process session state.
package session

import (
	"sync"

	"quacker/internal/domain"
)

// UserContext holds at most one current user.
type UserContext struct {
	mu      sync.RWMutex
	current *domain.User
}

// NewUserContext creates a holder with no current user.
func NewUserContext() *UserContext {
	return &UserContext{}
}

// SetCurrent replaces the current user.
func (u *UserContext) SetCurrent(user domain.User) {
	u.mu.Lock()
	u.current = &user
	u.mu.Unlock()
}

// Current returns the current user and true, or false if none was set.
func (u *UserContext) Current() (domain.User, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.current == nil {
		return domain.User{}, false
	}
	return *u.current, true
}
