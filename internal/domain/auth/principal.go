package auth

import (
	"context"
	"errors"
)

// Role is the authenticated caller's role as carried in the access token.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleTeamLeader Role = "Team Leader"
	RoleHR         Role = "HR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeamLeader, RoleHR:
		return true
	}
	return false
}

// Principal is the resolved identity of the caller. For team leaders ID is
// the employee id; for admin and HR it is the configured emp id.
type Principal struct {
	Role Role
	ID   string
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.ID == "" {
		return Principal{}, ErrMissingPrincipal
	}
	return p, nil
}

var ErrMissingPrincipal = errors.New("no authenticated principal in context")
