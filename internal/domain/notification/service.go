package notification

import "context"

// Notifier delivers one HTML message. It reports success and never returns an
// error; callers log the outcome and carry on.
type Notifier interface {
	Notify(ctx context.Context, to, subject, htmlBody string) bool
}

type Service interface {
	LeaveDecided(ctx context.Context, d LeaveDecision) bool
	OTPIssued(ctx context.Context, m OTPMessage) bool
}
