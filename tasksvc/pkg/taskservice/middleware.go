package taskservice

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/nagomiya/todokit/authsvc"
	"github.com/nagomiya/todokit/tasksvc"
)

type Middleware func(Service) Service

func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) CreateTask(ctx context.Context, id authsvc.Identity, name, comment string, done bool) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "CreateTask",
			"owner_id", id.ID,
			"name", name,
			"done", done,
			"err", err,
		)
	}()
	return mw.next.CreateTask(ctx, id, name, comment, done)
}

func (mw loggingMiddleware) Tasks(ctx context.Context, id authsvc.Identity, skip, limit int) (t []tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "Tasks",
			"owner_id", id.ID,
			"skip", skip,
			"limit", limit,
			"err", err,
		)
	}()
	return mw.next.Tasks(ctx, id, skip, limit)
}

func (mw loggingMiddleware) Task(ctx context.Context, id authsvc.Identity, taskID uint64) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "Task",
			"owner_id", id.ID,
			"task_id", taskID,
			"err", err,
		)
	}()
	return mw.next.Task(ctx, id, taskID)
}

func (mw loggingMiddleware) UpdateTask(ctx context.Context, id authsvc.Identity, task tasksvc.Task) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "UpdateTask",
			"owner_id", id.ID,
			"task_id", task.ID,
			"name", task.Name,
			"done", task.Done,
			"err", err,
		)
	}()
	return mw.next.UpdateTask(ctx, id, task)
}

func (mw loggingMiddleware) DeleteTask(ctx context.Context, id authsvc.Identity, taskID uint64) (err error) {
	defer func() {
		mw.logger.Log(
			"method", "DeleteTask",
			"owner_id", id.ID,
			"task_id", taskID,
			"err", err,
		)
	}()
	return mw.next.DeleteTask(ctx, id, taskID)
}

func InstrumentingMiddleware(counter metrics.Counter, latency metrics.Histogram) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{counter, latency, next}
	}
}

type instrumentingMiddleware struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	next           Service
}

func (mw instrumentingMiddleware) CreateTask(ctx context.Context, id authsvc.Identity, name, comment string, done bool) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "create_task").Add(1)
		mw.requestLatency.With("method", "create_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.CreateTask(ctx, id, name, comment, done)
}

func (mw instrumentingMiddleware) Tasks(ctx context.Context, id authsvc.Identity, skip, limit int) (t []tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "tasks").Add(1)
		mw.requestLatency.With("method", "tasks").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Tasks(ctx, id, skip, limit)
}

func (mw instrumentingMiddleware) Task(ctx context.Context, id authsvc.Identity, taskID uint64) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "task").Add(1)
		mw.requestLatency.With("method", "task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Task(ctx, id, taskID)
}

func (mw instrumentingMiddleware) UpdateTask(ctx context.Context, id authsvc.Identity, task tasksvc.Task) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "update_task").Add(1)
		mw.requestLatency.With("method", "update_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.UpdateTask(ctx, id, task)
}

func (mw instrumentingMiddleware) DeleteTask(ctx context.Context, id authsvc.Identity, taskID uint64) (err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "delete_task").Add(1)
		mw.requestLatency.With("method", "delete_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.DeleteTask(ctx, id, taskID)
}
