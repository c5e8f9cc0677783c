package auth

import (
	"context"
)

type AuthService interface {
	LoginAdmin(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginHR(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginTeamLeader(ctx context.Context, req LoginRequest) (TokenResponse, error)
}
