package worklog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type UpdateInput struct {
	ProjectID         string
	StartTime         time.Time
	EndTime           *time.Time
	BreakTime         *int
	ActualWorkMinutes *int
	Memo              string
}

type Update struct {
	logs     ports.WorkLogRepository
	projects ports.ProjectRepository
	queue    ports.TaskEnqueuer
	log      zerolog.Logger
}

func NewUpdate(logs ports.WorkLogRepository, projects ports.ProjectRepository, queue ports.TaskEnqueuer, log zerolog.Logger) *Update {
	return &Update{logs: logs, projects: projects, queue: queue, log: log}
}

// Execute rewrites a work log and corrects the project counter by the
// difference between the old and new minutes, so editing an entry's hours
// never double-counts time. The document update and the counter $inc run
// concurrently; a divergence schedules reconciliation, same as create.
func (uc *Update) Execute(ctx context.Context, id string, input UpdateInput) (bool, error) {
	entry, err := uc.logs.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, domerrors.ErrWorkLogNotFound
	}

	projectID, err := bson.ObjectIDFromHex(input.ProjectID)
	if err != nil {
		return false, domerrors.ErrProjectNotFound
	}
	project, err := uc.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return false, err
	}
	if project == nil {
		return false, domerrors.ErrProjectNotFound
	}

	oldMinutes := entry.Minutes()
	oldProjectID := entry.ProjectID.Hex()
	now := time.Now()
	entry.ProjectID = projectID
	entry.StartTime = input.StartTime
	entry.EndTime = input.EndTime
	entry.BreakTime = input.BreakTime
	entry.ActualWorkMinutes = input.ActualWorkMinutes
	entry.Memo = input.Memo
	entry.UpdatedAt = now
	if err := entry.Validate(now); err != nil {
		return false, err
	}

	// Counter corrections: same project gets the difference; a re-pointed
	// entry subtracts from the old project and adds to the new one.
	deltas := map[string]int64{}
	if oldProjectID == input.ProjectID {
		deltas[input.ProjectID] = int64(entry.Minutes()-oldMinutes) * 60
	} else {
		deltas[oldProjectID] = -int64(oldMinutes) * 60
		deltas[input.ProjectID] = int64(entry.Minutes()) * 60
	}

	updateCh := make(chan error, 1)
	incCh := make(chan error, 1)
	go func() {
		updateCh <- uc.logs.Update(ctx, entry)
	}()
	go func() {
		for pid, delta := range deltas {
			if delta == 0 {
				continue
			}
			if err := uc.projects.IncrementTotalWorkingTime(ctx, pid, delta); err != nil {
				incCh <- err
				return
			}
		}
		incCh <- nil
	}()
	updateErr := <-updateCh
	incErr := <-incCh

	if updateErr == nil && incErr == nil {
		return true, nil
	}
	for pid := range deltas {
		uc.reconcileUpdate(ctx, pid, updateErr, incErr)
	}
	if updateErr != nil {
		return false, updateErr
	}
	return true, nil
}

func (uc *Update) reconcileUpdate(ctx context.Context, projectID string, updateErr, incErr error) {
	uc.log.Warn().
		Str("project_id", projectID).
		AnErr("update_err", updateErr).
		AnErr("inc_err", incErr).
		Msg("work log update and aggregate update diverged; scheduling reconciliation")
	if err := uc.queue.EnqueueReconcileProjectTotal(ctx, projectID); err != nil {
		uc.log.Error().Err(err).Str("project_id", projectID).Msg("enqueue reconciliation failed")
	}
}
