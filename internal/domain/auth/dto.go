package auth

import "github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"

type LoginRequest struct {
	EmpID    string `json:"emp_id"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmpID) {
		errs = append(errs, validator.ValidationError{
			Field:   "emp_id",
			Message: "emp_id is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	Role        Role   `json:"role"`
}
