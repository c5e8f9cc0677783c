package leave

import "errors"

var (
	ErrLeaveNotFound              = errors.New("leave application not found")
	ErrAlreadyReviewed            = errors.New("leave application has already been reviewed")
	ErrTeamLeaderApprovalRequired = errors.New("HR can only review leaves approved by the team leader")
	ErrUnauthorized               = errors.New("not authorized to act on this leave application")
	ErrInvalidAction              = errors.New("action must be Approved or Rejected")
	ErrInvalidDateRange           = errors.New("start date must not be after end date")
	ErrStatusConflict             = errors.New("leave status changed concurrently")
)
