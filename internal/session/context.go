package session

import (
	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/models"
)

// Context is the session state handed explicitly to UI handlers instead of
// being looked up from a global. The zero value is anonymous.
type Context struct {
	user *models.User
}

// NewContext wraps u; a nil u gives an anonymous Context.
func NewContext(u *models.User) Context {
	if u == nil {
		return Context{}
	}
	cp := *u
	return Context{user: &cp}
}

func (c Context) LoggedIn() bool {
	return c.user != nil
}

// User returns a copy of the current user, or nil when anonymous.
func (c Context) User() *models.User {
	if c.user == nil {
		return nil
	}
	cp := *c.user
	return &cp
}

// RequireUser returns the current user or common.ErrNotLoggedIn.
func (c Context) RequireUser() (models.User, error) {
	if c.user == nil {
		return models.User{}, common.ErrNotLoggedIn
	}
	return *c.user, nil
}
