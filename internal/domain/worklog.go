package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

// MaxMemoLength bounds the free-text memo on a work log.
const MaxMemoLength = 1000

// WorkLog is a single time entry. EndTime absent means the entry is still in
// progress. ActualWorkMinutes feeds the owning project's aggregate counter.
type WorkLog struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID         bson.ObjectID `bson:"project_id" json:"project_id"`
	StartTime         time.Time     `bson:"start_time" json:"start_time"`
	EndTime           *time.Time    `bson:"end_time,omitempty" json:"end_time,omitempty"`
	BreakTime         *int          `bson:"break_time,omitempty" json:"break_time,omitempty"`
	ActualWorkMinutes *int          `bson:"actual_work_minutes,omitempty" json:"actual_work_minutes,omitempty"`
	Memo              string        `bson:"memo,omitempty" json:"memo,omitempty"`
	CreatedAt         time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `bson:"updated_at" json:"updated_at"`
}

// Minutes returns ActualWorkMinutes with absent treated as 0.
func (w *WorkLog) Minutes() int {
	if w.ActualWorkMinutes == nil {
		return 0
	}
	return *w.ActualWorkMinutes
}

// Validate checks the time-ordering invariants against now.
func (w *WorkLog) Validate(now time.Time) error {
	if w.StartTime.After(now) {
		return fmt.Errorf("%w: start_time must not be in the future", domerrors.ErrInvalidWorkLog)
	}
	if w.EndTime != nil {
		if !w.EndTime.After(w.StartTime) {
			return fmt.Errorf("%w: end_time must be after start_time", domerrors.ErrInvalidWorkLog)
		}
		if w.EndTime.After(now) {
			return fmt.Errorf("%w: end_time must not be in the future", domerrors.ErrInvalidWorkLog)
		}
	}
	if w.ActualWorkMinutes != nil && *w.ActualWorkMinutes < 0 {
		return fmt.Errorf("%w: actual_work_minutes must not be negative", domerrors.ErrInvalidWorkLog)
	}
	if w.BreakTime != nil && *w.BreakTime < 0 {
		return fmt.Errorf("%w: break_time must not be negative", domerrors.ErrInvalidWorkLog)
	}
	if len(w.Memo) > MaxMemoLength {
		return fmt.Errorf("%w: memo exceeds %d characters", domerrors.ErrInvalidWorkLog, MaxMemoLength)
	}
	return nil
}
