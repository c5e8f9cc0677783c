package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrTeamLeaderNotFound   = errors.New("team leader not found")
	ErrInvalidPIN           = errors.New("invalid PIN")
	ErrNotTeamLeader        = errors.New("employee is not a team leader")
	ErrClassificationLocked = errors.New("employee type cannot be changed after registration")
)
