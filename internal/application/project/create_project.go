package project

import (
	"context"
	"fmt"
	"time"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type CreateInput struct {
	Title     string
	Status    domain.ProjectStatus
	CompanyID string
	HourlyPay *int
}

type Create struct {
	projects ports.ProjectRepository
}

func NewCreate(projects ports.ProjectRepository) *Create {
	return &Create{projects: projects}
}

// Execute creates a project with a zeroed aggregate counter. The counter is
// owned by the work-log aggregator from then on; no client value is accepted.
func (uc *Create) Execute(ctx context.Context, input CreateInput) (*domain.Project, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domerrors.ErrInvalidProject)
	}
	status := input.Status
	if status == "" {
		status = domain.ProjectStatusPlanning
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domerrors.ErrInvalidProject, input.Status)
	}
	if input.HourlyPay != nil && *input.HourlyPay < 0 {
		return nil, fmt.Errorf("%w: hourly_pay must not be negative", domerrors.ErrInvalidProject)
	}
	now := time.Now()
	p := &domain.Project{
		Title:            input.Title,
		Status:           status,
		CompanyID:        input.CompanyID,
		HourlyPay:        input.HourlyPay,
		TotalWorkingTime: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
