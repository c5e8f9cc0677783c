package leave

import "time"

// Action is an approver's decision.
type Action string

const (
	ActionApprove Action = "Approved"
	ActionReject  Action = "Rejected"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionApprove, ActionReject:
		return Action(s), nil
	}
	return "", ErrInvalidAction
}

// StatusChange is a guarded status write. It applies only while the stored
// statuses still equal ExpectTL and ExpectHR, so a stale read cannot win.
type StatusChange struct {
	ExpectTL  Status
	ExpectHR  Status
	TLStatus  Status
	HRStatus  Status
	DecidedAt time.Time
}

// CompletesApproval reports whether this write is the one that first makes
// both sides Approved.
func (c StatusChange) CompletesApproval() bool {
	wasApproved := c.ExpectTL == StatusApproved && c.ExpectHR == StatusApproved
	return !wasApproved && c.TLStatus == StatusApproved && c.HRStatus == StatusApproved
}

// Rejects reports whether this write moves the leave into a rejected state.
func (c StatusChange) Rejects() bool {
	return c.TLStatus == StatusRejected || c.HRStatus == StatusRejected
}

// ApplyTo returns l with the change applied.
func (c StatusChange) ApplyTo(l LeaveApplication) LeaveApplication {
	l.TLStatus = c.TLStatus
	l.HRStatus = c.HRStatus
	at := c.DecidedAt
	l.ApprovedAt = &at
	return l
}

// TeamLeaderDecision validates a team leader action against l.
// Only the assigned team leader may act, and only while the TL side is Pending.
// A rejection is terminal for both sides.
func TeamLeaderDecision(l LeaveApplication, teamLeaderID string, action Action, at time.Time) (StatusChange, error) {
	if l.TeamLeaderID != teamLeaderID {
		return StatusChange{}, ErrUnauthorized
	}
	if l.TLStatus != StatusPending {
		return StatusChange{}, ErrAlreadyReviewed
	}

	change := StatusChange{
		ExpectTL:  l.TLStatus,
		ExpectHR:  l.HRStatus,
		TLStatus:  StatusApproved,
		HRStatus:  l.HRStatus,
		DecidedAt: at,
	}
	if action == ActionReject {
		change.TLStatus = StatusRejected
		change.HRStatus = StatusRejected
	}
	return change, nil
}

// HRDecision validates an HR action against l. HR acts once, after the team
// leader has approved.
func HRDecision(l LeaveApplication, action Action, at time.Time) (StatusChange, error) {
	if l.HRStatus != StatusPending {
		return StatusChange{}, ErrAlreadyReviewed
	}
	if l.TLStatus != StatusApproved {
		return StatusChange{}, ErrTeamLeaderApprovalRequired
	}

	change := StatusChange{
		ExpectTL:  l.TLStatus,
		ExpectHR:  l.HRStatus,
		TLStatus:  l.TLStatus,
		HRStatus:  StatusApproved,
		DecidedAt: at,
	}
	if action == ActionReject {
		change.HRStatus = StatusRejected
	}
	return change, nil
}
