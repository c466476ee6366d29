package project

import (
	"context"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type Get struct {
	projects ports.ProjectRepository
}

func NewGet(projects ports.ProjectRepository) *Get {
	return &Get{projects: projects}
}

func (uc *Get) Execute(ctx context.Context, id string) (*domain.Project, error) {
	p, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	return p, nil
}
