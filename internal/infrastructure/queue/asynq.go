package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
)

const (
	// TypeReconcileProjectTotal recomputes a project's total_working_time
	// from its work logs after a diverged aggregate write.
	TypeReconcileProjectTotal = "aggregate:reconcile_project_total"
)

type reconcilePayload struct {
	ProjectID string `json:"project_id"`
}

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueReconcileProjectTotal(ctx context.Context, projectID string) error {
	payload, _ := json.Marshal(reconcilePayload{ProjectID: projectID})
	task := asynq.NewTask(TypeReconcileProjectTotal, payload)
	_, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	if err != nil {
		q.log.Warn().Err(err).Str("project_id", projectID).Msg("enqueue reconciliation failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
