package worklog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/riii111/DevTrackr-sub000/internal/domain"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	incErr   error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*domain.Project{}}
}

func (r *fakeProjectRepo) addProject() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &domain.Project{
		ID:        bson.NewObjectID(),
		Title:     "client work",
		Status:    domain.ProjectStatusInProgress,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.projects[p.ID.Hex()] = p
	return p.ID.Hex()
}

func (r *fakeProjectRepo) total(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.projects[id].TotalWorkingTime
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID.IsZero() {
		project.ID = bson.NewObjectID()
	}
	r.projects[project.ID.Hex()] = project
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.projects[id], nil
}

func (r *fakeProjectRepo) IncrementTotalWorkingTime(_ context.Context, id string, deltaSeconds int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incErr != nil {
		return r.incErr
	}
	p, ok := r.projects[id]
	if !ok {
		return domerrors.ErrProjectNotFound
	}
	p.TotalWorkingTime += deltaSeconds
	return nil
}

func (r *fakeProjectRepo) SetTotalWorkingTime(_ context.Context, id string, seconds int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return domerrors.ErrProjectNotFound
	}
	p.TotalWorkingTime = seconds
	return nil
}

type fakeWorkLogRepo struct {
	mu        sync.Mutex
	logs      map[string]*domain.WorkLog
	createErr error
}

func newFakeWorkLogRepo() *fakeWorkLogRepo {
	return &fakeWorkLogRepo{logs: map[string]*domain.WorkLog{}}
}

func (r *fakeWorkLogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

func (r *fakeWorkLogRepo) Create(_ context.Context, log *domain.WorkLog) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	log.ID = bson.NewObjectID()
	cp := *log
	r.logs[log.ID.Hex()] = &cp
	return log.ID.Hex(), nil
}

func (r *fakeWorkLogRepo) GetByID(_ context.Context, id string) (*domain.WorkLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.logs[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeWorkLogRepo) Update(_ context.Context, log *domain.WorkLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[log.ID.Hex()]; !ok {
		return domerrors.ErrWorkLogNotFound
	}
	cp := *log
	r.logs[log.ID.Hex()] = &cp
	return nil
}

func (r *fakeWorkLogRepo) SumActualMinutesByProject(_ context.Context, projectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, l := range r.logs {
		if l.ProjectID.Hex() == projectID {
			sum += int64(l.Minutes())
		}
	}
	return sum, nil
}

type recordingEnqueuer struct {
	mu       sync.Mutex
	projects []string
}

func (e *recordingEnqueuer) EnqueueReconcileProjectTotal(_ context.Context, projectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.projects = append(e.projects, projectID)
	return nil
}

func (e *recordingEnqueuer) calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.projects...)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func validInput(projectID string, minutes int) CreateInput {
	start := time.Now().Add(-2 * time.Hour)
	return CreateInput{
		ProjectID:         projectID,
		StartTime:         start,
		EndTime:           timePtr(start.Add(time.Hour)),
		BreakTime:         intPtr(0),
		ActualWorkMinutes: intPtr(minutes),
	}
}

func TestCreateAggregatesMinutesIntoSeconds(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	queue := &recordingEnqueuer{}
	projectID := projects.addProject()
	uc := NewCreate(logs, projects, queue, zerolog.Nop())

	for _, minutes := range []int{30, 45, 15} {
		if _, err := uc.Execute(context.Background(), validInput(projectID, minutes)); err != nil {
			t.Fatalf("create %d minutes: %v", minutes, err)
		}
	}

	if got := projects.total(projectID); got != 5400 {
		t.Fatalf("total_working_time = %d, want 5400", got)
	}
	if len(queue.calls()) != 0 {
		t.Fatalf("no reconciliation should be scheduled on the happy path")
	}
}

func TestCreateNilMinutesCountsAsZero(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	projectID := projects.addProject()
	uc := NewCreate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())

	input := validInput(projectID, 0)
	input.ActualWorkMinutes = nil
	id, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatalf("expected inserted id")
	}
	if got := projects.total(projectID); got != 0 {
		t.Fatalf("total_working_time = %d, want 0", got)
	}
}

func TestCreateMissingProjectLeavesNoOrphan(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	uc := NewCreate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())

	for _, projectID := range []string{
		bson.NewObjectID().Hex(), // well-formed but unknown
		"not-a-hex-id",
	} {
		if _, err := uc.Execute(context.Background(), validInput(projectID, 30)); !errors.Is(err, domerrors.ErrProjectNotFound) {
			t.Fatalf("project %q: expected ErrProjectNotFound, got %v", projectID, err)
		}
	}
	if logs.count() != 0 {
		t.Fatalf("no work log may be inserted when the project check fails")
	}
}

func TestCreateRejectsInvalidTimes(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	projectID := projects.addProject()
	uc := NewCreate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())

	now := time.Now()
	cases := map[string]CreateInput{
		"future start": {
			ProjectID: projectID,
			StartTime: now.Add(time.Hour),
		},
		"end before start": {
			ProjectID: projectID,
			StartTime: now.Add(-time.Hour),
			EndTime:   timePtr(now.Add(-2 * time.Hour)),
		},
		"future end": {
			ProjectID: projectID,
			StartTime: now.Add(-time.Hour),
			EndTime:   timePtr(now.Add(time.Hour)),
		},
		"negative minutes": {
			ProjectID:         projectID,
			StartTime:         now.Add(-time.Hour),
			ActualWorkMinutes: intPtr(-5),
		},
	}
	for name, input := range cases {
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domerrors.ErrInvalidWorkLog) {
			t.Fatalf("%s: expected ErrInvalidWorkLog, got %v", name, err)
		}
	}
	if logs.count() != 0 {
		t.Fatalf("invalid entries must not be inserted")
	}
	if got := projects.total(projectID); got != 0 {
		t.Fatalf("invalid entries must not move the counter, got %d", got)
	}
}

func TestCreateSchedulesReconcileWhenCounterWriteFails(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	queue := &recordingEnqueuer{}
	projectID := projects.addProject()
	projects.incErr = errors.New("write conflict")
	uc := NewCreate(logs, projects, queue, zerolog.Nop())

	id, err := uc.Execute(context.Background(), validInput(projectID, 30))
	if err != nil {
		t.Fatalf("insert succeeded, so create should not fail: %v", err)
	}
	if id == "" {
		t.Fatalf("expected inserted id")
	}
	calls := queue.calls()
	if len(calls) != 1 || calls[0] != projectID {
		t.Fatalf("expected one reconciliation for %s, got %v", projectID, calls)
	}
}

func TestCreateSchedulesReconcileWhenInsertFails(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	queue := &recordingEnqueuer{}
	projectID := projects.addProject()
	logs.createErr = errors.New("insert failed")
	uc := NewCreate(logs, projects, queue, zerolog.Nop())

	if _, err := uc.Execute(context.Background(), validInput(projectID, 30)); err == nil {
		t.Fatalf("expected the insert error to surface")
	}
	if len(queue.calls()) != 1 {
		t.Fatalf("expected one reconciliation, got %v", queue.calls())
	}
}

func TestUpdateCorrectsAggregateBySameProjectDelta(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	projectID := projects.addProject()
	create := NewCreate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())
	id, err := create.Execute(context.Background(), validInput(projectID, 30))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := NewUpdate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())
	in := validInput(projectID, 45)
	ok, err := update.Execute(context.Background(), id, UpdateInput(in))
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	// 30min counted once, corrected to 45min: 2700 seconds, not 4500.
	if got := projects.total(projectID); got != 2700 {
		t.Fatalf("total_working_time = %d, want 2700", got)
	}
}

func TestUpdateMovesTimeBetweenProjects(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	oldProject := projects.addProject()
	newProject := projects.addProject()
	create := NewCreate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())
	id, err := create.Execute(context.Background(), validInput(oldProject, 60))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := NewUpdate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())
	in := validInput(newProject, 60)
	if ok, err := update.Execute(context.Background(), id, UpdateInput(in)); err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if got := projects.total(oldProject); got != 0 {
		t.Fatalf("old project total = %d, want 0", got)
	}
	if got := projects.total(newProject); got != 3600 {
		t.Fatalf("new project total = %d, want 3600", got)
	}
}

func TestUpdateMissingWorkLog(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	projectID := projects.addProject()
	update := NewUpdate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())

	in := validInput(projectID, 30)
	if _, err := update.Execute(context.Background(), bson.NewObjectID().Hex(), UpdateInput(in)); !errors.Is(err, domerrors.ErrWorkLogNotFound) {
		t.Fatalf("expected ErrWorkLogNotFound, got %v", err)
	}
}

func TestUpdateMissingTargetProject(t *testing.T) {
	projects := newFakeProjectRepo()
	logs := newFakeWorkLogRepo()
	projectID := projects.addProject()
	create := NewCreate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())
	id, err := create.Execute(context.Background(), validInput(projectID, 30))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := NewUpdate(logs, projects, &recordingEnqueuer{}, zerolog.Nop())
	in := validInput(bson.NewObjectID().Hex(), 30)
	if _, err := update.Execute(context.Background(), id, UpdateInput(in)); !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	// Re-pointing to a missing project must leave the original counter alone.
	if got := projects.total(projectID); got != 1800 {
		t.Fatalf("total_working_time = %d, want 1800", got)
	}
}
