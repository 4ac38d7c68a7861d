package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"egg-hunt-api/internal/events"
)

// RefreshJob periodically publishes REFRESH hints on every change stream.
// Change delivery is at-least-once but not guaranteed, so an observer that
// missed a notification catches up on the next tick instead of staying
// stale forever.
type RefreshJob struct {
	publisher events.Publisher
	logger    *zap.Logger
}

// NewRefreshJob creates a new RefreshJob instance
func NewRefreshJob(publisher events.Publisher, logger *zap.Logger) *RefreshJob {
	return &RefreshJob{
		publisher: publisher,
		logger:    logger,
	}
}

// Run publishes one refresh hint per table
func (j *RefreshJob) Run() {
	ctx := context.Background()
	now := time.Now().UTC()

	for _, table := range []string{events.TableSecretCodes, events.TableFoundRecords} {
		j.publisher.Publish(ctx, events.ChangeEvent{
			Table:  table,
			Action: events.ActionRefresh,
			At:     now,
		})
	}

	j.logger.Debug("Published refresh hints")
}
