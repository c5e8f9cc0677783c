package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/notification"
)

// Renderer produces an HTML body from a named template.
type Renderer interface {
	Render(name string, data any) (string, error)
}

type service struct {
	notifier notification.Notifier
	renderer Renderer
}

func NewNotificationService(notifier notification.Notifier, renderer Renderer) notification.Service {
	return &service{notifier: notifier, renderer: renderer}
}

func (s *service) LeaveDecided(ctx context.Context, d notification.LeaveDecision) bool {
	if d.EmployeeEmail == "" {
		slog.Warn("Leave decision not sent, employee has no email", "employee", d.EmployeeName)
		return false
	}

	body, err := s.renderer.Render("leave_decision.html", d)
	if err != nil {
		slog.Error("Leave decision render error", "error", err)
		return false
	}

	subject := fmt.Sprintf("Leave %s", d.Decision)
	ok := s.notifier.Notify(ctx, d.EmployeeEmail, subject, body)
	if !ok {
		slog.Warn("Leave decision notification failed", "to", d.EmployeeEmail, "decision", d.Decision)
	}
	return ok
}

func (s *service) OTPIssued(ctx context.Context, m notification.OTPMessage) bool {
	body, err := s.renderer.Render("otp.html", m)
	if err != nil {
		slog.Error("OTP render error", "error", err)
		return false
	}
	return s.notifier.Notify(ctx, m.EmployeeEmail, "Your attendance verification code", body)
}
