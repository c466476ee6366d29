package worklog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type CreateInput struct {
	ProjectID         string
	StartTime         time.Time
	EndTime           *time.Time
	BreakTime         *int
	ActualWorkMinutes *int
	Memo              string
}

type Create struct {
	logs     ports.WorkLogRepository
	projects ports.ProjectRepository
	queue    ports.TaskEnqueuer
	log      zerolog.Logger
}

func NewCreate(logs ports.WorkLogRepository, projects ports.ProjectRepository, queue ports.TaskEnqueuer, log zerolog.Logger) *Create {
	return &Create{logs: logs, projects: projects, queue: queue, log: log}
}

// Execute inserts a work log and adds its minutes to the owning project's
// total_working_time. The project is checked first so a bad project id never
// leaves an orphaned work log; after that the insert and the counter $inc run
// concurrently, with no ordering guarantee between the two writes. If one
// write lands and the other fails, a reconciliation task recomputes the
// counter from the work_logs collection.
func (uc *Create) Execute(ctx context.Context, input CreateInput) (string, error) {
	projectID, err := bson.ObjectIDFromHex(input.ProjectID)
	if err != nil {
		return "", domerrors.ErrProjectNotFound
	}
	project, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", domerrors.ErrProjectNotFound
	}

	now := time.Now()
	entry := &domain.WorkLog{
		ProjectID:         projectID,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		BreakTime:         input.BreakTime,
		ActualWorkMinutes: input.ActualWorkMinutes,
		Memo:              input.Memo,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := entry.Validate(now); err != nil {
		return "", err
	}

	deltaSeconds := int64(entry.Minutes()) * 60

	insertCh := make(chan error, 1)
	incCh := make(chan error, 1)
	var id string
	go func() {
		var err error
		id, err = uc.logs.Create(ctx, entry)
		insertCh <- err
	}()
	go func() {
		incCh <- uc.projects.IncrementTotalWorkingTime(ctx, input.ProjectID, deltaSeconds)
	}()
	insertErr := <-insertCh
	incErr := <-incCh

	if insertErr == nil && incErr == nil {
		return id, nil
	}
	// One write may have landed without the other; the reconciler recomputes
	// the counter from the work logs in either direction.
	uc.reconcile(ctx, input.ProjectID, insertErr, incErr)
	if insertErr != nil {
		return "", insertErr
	}
	return id, nil
}

func (uc *Create) reconcile(ctx context.Context, projectID string, insertErr, incErr error) {
	uc.log.Warn().
		Str("project_id", projectID).
		AnErr("insert_err", insertErr).
		AnErr("inc_err", incErr).
		Msg("work log write and aggregate update diverged; scheduling reconciliation")
	if err := uc.queue.EnqueueReconcileProjectTotal(ctx, projectID); err != nil {
		uc.log.Error().Err(err).Str("project_id", projectID).Msg("enqueue reconciliation failed")
	}
}
