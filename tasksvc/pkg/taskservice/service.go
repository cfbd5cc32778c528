package taskservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/nagomiya/todokit/authsvc"
	"github.com/nagomiya/todokit/tasksvc"
)

// Service operates on tasks belonging to the authenticated identity. The
// identity comes from the authorization gate, never from request payloads.
type Service interface {
	CreateTask(ctx context.Context, id authsvc.Identity, name, comment string, done bool) (tasksvc.Task, error)
	Tasks(ctx context.Context, id authsvc.Identity, skip, limit int) ([]tasksvc.Task, error)
	Task(ctx context.Context, id authsvc.Identity, taskID uint64) (tasksvc.Task, error)
	UpdateTask(ctx context.Context, id authsvc.Identity, task tasksvc.Task) (tasksvc.Task, error)
	DeleteTask(ctx context.Context, id authsvc.Identity, taskID uint64) error
}

func New(t tasksvc.TaskRepository, logger log.Logger, counter metrics.Counter, latency metrics.Histogram) Service {
	var svc Service
	{
		svc = NewBasicService(t)
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(counter, latency)(svc)
	}
	return svc
}

type basicService struct {
	tasks tasksvc.TaskRepository
}

func NewBasicService(t tasksvc.TaskRepository) Service {
	return basicService{tasks: t}
}

const defaultListLimit = 100

func (s basicService) CreateTask(_ context.Context, id authsvc.Identity, name, comment string, done bool) (tasksvc.Task, error) {
	if name == "" || id.ID == 0 {
		return tasksvc.Task{}, tasksvc.ErrInvalidArgument
	}
	return s.tasks.Create(name, comment, done, id.ID)
}

func (s basicService) Tasks(_ context.Context, id authsvc.Identity, skip, limit int) ([]tasksvc.Task, error) {
	if id.ID == 0 {
		return nil, tasksvc.ErrInvalidArgument
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.tasks.FindAll(id.ID, skip, limit)
}

func (s basicService) Task(_ context.Context, id authsvc.Identity, taskID uint64) (tasksvc.Task, error) {
	if id.ID == 0 || taskID == 0 {
		return tasksvc.Task{}, tasksvc.ErrInvalidArgument
	}
	return s.tasks.Find(id.ID, taskID)
}

func (s basicService) UpdateTask(_ context.Context, id authsvc.Identity, task tasksvc.Task) (tasksvc.Task, error) {
	if id.ID == 0 || task.ID == 0 || task.Name == "" {
		return tasksvc.Task{}, tasksvc.ErrInvalidArgument
	}
	task.OwnerID = id.ID
	return s.tasks.Update(task)
}

func (s basicService) DeleteTask(_ context.Context, id authsvc.Identity, taskID uint64) error {
	if id.ID == 0 || taskID == 0 {
		return tasksvc.ErrInvalidArgument
	}
	return s.tasks.Delete(id.ID, taskID)
}
