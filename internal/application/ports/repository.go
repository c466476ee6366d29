package ports

import (
	"context"
	"time"

	"github.com/riii111/DevTrackr-sub000/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil)
// when no document matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// TokenStore defines storage for issued access/refresh token pairs, keyed by
// their own bearer values.
type TokenStore interface {
	Create(ctx context.Context, token *domain.AuthToken) error
	GetByAccessToken(ctx context.Context, accessToken string) (*domain.AuthToken, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.AuthToken, error)
	// UpdateAccessToken replaces the access token value and its expiry on an
	// existing row, leaving the refresh token and its expiry untouched.
	UpdateAccessToken(ctx context.Context, id string, accessToken string, expiresAt time.Time) error
	// DeleteByAccessToken removes the row matching accessToken and reports
	// whether a row was deleted.
	DeleteByAccessToken(ctx context.Context, accessToken string) (bool, error)
}

// ProjectRepository defines persistence for projects, including the
// aggregate-counter writes used by the work-log aggregator.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// IncrementTotalWorkingTime atomically adds deltaSeconds (may be
	// negative) to the project's total_working_time.
	IncrementTotalWorkingTime(ctx context.Context, id string, deltaSeconds int64) error
	// SetTotalWorkingTime overwrites the counter; used only by the
	// reconciliation worker.
	SetTotalWorkingTime(ctx context.Context, id string, seconds int64) error
}

// WorkLogRepository defines persistence for work-log entries.
type WorkLogRepository interface {
	Create(ctx context.Context, log *domain.WorkLog) (string, error)
	GetByID(ctx context.Context, id string) (*domain.WorkLog, error)
	Update(ctx context.Context, log *domain.WorkLog) error
	// SumActualMinutesByProject returns the sum of actual_work_minutes over
	// all work logs referencing the project; used by the reconciliation
	// worker to recompute the aggregate counter.
	SumActualMinutesByProject(ctx context.Context, projectID string) (int64, error)
}
