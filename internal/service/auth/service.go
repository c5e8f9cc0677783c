package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/attendance-marker/attendance-backend-go/internal/config"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	credentials config.CredentialsConfig
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service, credentials config.CredentialsConfig) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		credentials:        credentials,
	}
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	if !fixedAccountMatches(a.credentials.AdminEmpID, a.credentials.AdminPasswordHash, req) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return a.issue(auth.Principal{Role: auth.RoleAdmin, ID: a.credentials.AdminEmpID})
}

// LoginHR implements auth.AuthService.
func (a *AuthServiceImpl) LoginHR(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	if !fixedAccountMatches(a.credentials.HREmpID, a.credentials.HRPasswordHash, req) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return a.issue(auth.Principal{Role: auth.RoleHR, ID: a.credentials.HREmpID})
}

// LoginTeamLeader implements auth.AuthService.
func (a *AuthServiceImpl) LoginTeamLeader(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByCode(ctx, req.EmpID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	if !emp.IsTeamLeader() {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.TLPasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issue(auth.Principal{Role: auth.RoleTeamLeader, ID: emp.ID})
}

func (a *AuthServiceImpl) issue(principal auth.Principal) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(principal)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        principal.Role,
	}, nil
}

func fixedAccountMatches(empID, passwordHash string, req auth.LoginRequest) bool {
	if empID == "" || passwordHash == "" {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(empID), []byte(req.EmpID)) == 1
	// Always run bcrypt so a wrong emp id costs the same as a wrong password.
	pwErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password))
	return idOK && pwErr == nil
}
