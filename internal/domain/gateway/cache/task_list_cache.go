package cache

import (
	"context"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/model"
)

// TaskListEntry is the result of a cache read. On a miss, Version must be
// passed to Set so that a list read before a concurrent write is never
// served after it.
type TaskListEntry struct {
	Tasks   []entity.Task
	Version int64
	Hit     bool
}

// TaskListCache holds the assembled task list between writes.
type TaskListCache interface {
	Get(ctx context.Context) (TaskListEntry, error)
	// Set stores tasks for version. It has no visible effect once
	// Invalidate has moved past version.
	Set(ctx context.Context, version int64, tasks []entity.Task) error
	Invalidate(ctx context.Context) error
	Health(ctx context.Context) model.ComponentHealthStatus
}

// NoopTaskListCache always misses.
type NoopTaskListCache struct{}

var _ TaskListCache = NoopTaskListCache{}

func (NoopTaskListCache) Get(context.Context) (TaskListEntry, error) {
	return TaskListEntry{}, nil
}

func (NoopTaskListCache) Set(context.Context, int64, []entity.Task) error {
	return nil
}

func (NoopTaskListCache) Invalidate(context.Context) error {
	return nil
}

func (NoopTaskListCache) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentDisabled("cache disabled")
}
