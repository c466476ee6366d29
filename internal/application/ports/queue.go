package ports

import "context"

// TaskEnqueuer enqueues async tasks (aggregate reconciliation).
type TaskEnqueuer interface {
	// EnqueueReconcileProjectTotal schedules a recomputation of the
	// project's total_working_time from its work logs.
	EnqueueReconcileProjectTotal(ctx context.Context, projectID string) error
}
