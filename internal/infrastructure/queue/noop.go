package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
)

// NoopEnqueuer stands in when Redis/Asynq is not configured. Divergences are
// logged so an operator can reconcile by hand.
type NoopEnqueuer struct {
	log zerolog.Logger
}

func NewNoopEnqueuer(log zerolog.Logger) *NoopEnqueuer {
	return &NoopEnqueuer{log: log}
}

func (q *NoopEnqueuer) EnqueueReconcileProjectTotal(ctx context.Context, projectID string) error {
	q.log.Warn().Str("project_id", projectID).Msg("reconciliation requested but no queue configured")
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
