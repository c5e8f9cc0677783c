package lop

import "errors"

var (
	ErrLOPAlreadyMarked   = errors.New("LOP already marked for this employee on this date")
	ErrInvalidMarkingDate = errors.New("marking date must be in YYYY-MM-DD format")
	ErrLOPRecordNotFound  = errors.New("LOP record not found")
)
