package cron

import (
	"context"
	"log/slog"
	"time"
)

// ExpiringStore is implemented by stores holding short-lived codes.
type ExpiringStore interface {
	PurgeExpired() int
}

// OTPJobs sweeps expired attendance OTPs.
type OTPJobs struct {
	store ExpiringStore
}

func NewOTPJobs(store ExpiringStore) *OTPJobs {
	return &OTPJobs{store: store}
}

func (j *OTPJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_otps", time.Minute, j.PurgeExpired)
}

func (j *OTPJobs) PurgeExpired(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if removed := j.store.PurgeExpired(); removed > 0 {
		slog.Info("Cron: purged expired OTPs", "count", removed)
	}
	return nil
}
