package events

import (
	"context"
	"time"

	"seatflow/pkg/logger"
)

// ExpiryJob deactivates events whose expiration date has passed and that
// opted into auto deactivation
type ExpiryJob struct {
	service  Service
	interval time.Duration
	done     chan struct{}
}

func NewExpiryJob(service Service, interval time.Duration) *ExpiryJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ExpiryJob{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs one sweep immediately and then one per interval
func (j *ExpiryJob) Start(ctx context.Context) {
	logger.GetDefault().Info("starting event expiry job", "interval", j.interval.String())
	go j.run(ctx)
}

func (j *ExpiryJob) Stop() {
	close(j.done)
	logger.GetDefault().Info("event expiry job stopped")
}

func (j *ExpiryJob) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep(ctx)
	for {
		select {
		case <-ticker.C:
			j.sweep(ctx)
		case <-j.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (j *ExpiryJob) sweep(ctx context.Context) {
	n, err := j.service.DeactivateExpired(ctx)
	if err != nil {
		logger.GetDefault().WithError(err).Error("event expiry sweep failed")
		return
	}
	if n > 0 {
		logger.GetDefault().Info("deactivated expired events", "count", n)
	}
}
