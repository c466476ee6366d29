package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
)

// Worker runs Asynq task handlers. The reconciliation handler restores the
// invariant that a project's total_working_time equals the sum of its work
// logs' minutes, whichever direction the divergence went.
type Worker struct {
	srv      *asynq.Server
	mux      *asynq.ServeMux
	logs     ports.WorkLogRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, logs ports.WorkLogRepository, projects ports.ProjectRepository, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, logs: logs, projects: projects, log: log}
	mux.HandleFunc(TypeReconcileProjectTotal, w.handleReconcileProjectTotal)
	return w
}

func (w *Worker) handleReconcileProjectTotal(ctx context.Context, t *asynq.Task) error {
	var p reconcilePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("reconcile task payload invalid")
		return err
	}
	minutes, err := w.logs.SumActualMinutesByProject(ctx, p.ProjectID)
	if err != nil {
		return err
	}
	if err := w.projects.SetTotalWorkingTime(ctx, p.ProjectID, minutes*60); err != nil {
		return err
	}
	w.log.Info().
		Str("project_id", p.ProjectID).
		Int64("total_seconds", minutes*60).
		Msg("project total reconciled")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
