package jwt

import (
	"fmt"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(principal auth.Principal) (token string, expiresAt int64, err error)
	PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("parse access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(principal auth.Principal) (token string, expiresAt int64, err error) {
	if !principal.Role.Valid() || principal.ID == "" {
		return "", 0, auth.ErrInvalidToken
	}

	issuedAt := j.now()
	expiresAt = issuedAt.Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"sub":  principal.ID,
		"role": string(principal.Role),
		"type": tokenTypeAccess,
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt,
	}

	_, token, err = j.tokenAuth.Encode(claims)
	return token, expiresAt, err
}

// PrincipalFromClaims rebuilds the principal from verified access token claims.
func (j *JWTService) PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != tokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	principal := auth.Principal{Role: auth.Role(role), ID: sub}
	if principal.ID == "" || !principal.Role.Valid() {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return principal, nil
}
