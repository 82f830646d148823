package cache

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/model"
	"taskboard/pkg/redis"
)

const (
	TaskListVersionKey = "taskboard:tasks:version"
	taskListKeyPrefix  = "taskboard:tasks:list:"
	healthCheckTimeout = 2 * time.Second
)

// TaskListKey is where the list computed at version is stored.
func TaskListKey(version int64) string {
	return fmt.Sprintf("%s%d", taskListKeyPrefix, version)
}

// RedisTaskListCache keys the list by a version counter that every write
// increments. Readers only look at the current version, so a list filled
// from rows read before a write lands under a key nobody reads again and
// expires with its TTL.
type RedisTaskListCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ TaskListCache = (*RedisTaskListCache)(nil)

func NewRedisTaskListCache(client *redis.Client, ttl time.Duration) *RedisTaskListCache {
	return &RedisTaskListCache{client: client, ttl: ttl}
}

func (cache *RedisTaskListCache) Get(ctx context.Context) (TaskListEntry, error) {
	version, err := cache.client.GetInt64(ctx, TaskListVersionKey)
	if err != nil {
		return TaskListEntry{}, err
	}

	var tasks []entity.Task
	found, err := cache.client.GetJSON(ctx, TaskListKey(version), &tasks)
	if err != nil {
		return TaskListEntry{}, err
	}
	return TaskListEntry{Tasks: tasks, Version: version, Hit: found}, nil
}

func (cache *RedisTaskListCache) Set(ctx context.Context, version int64, tasks []entity.Task) error {
	return cache.client.SetJSON(ctx, TaskListKey(version), tasks, cache.ttl)
}

func (cache *RedisTaskListCache) Invalidate(ctx context.Context) error {
	version, err := cache.client.Incr(ctx, TaskListVersionKey)
	if err != nil {
		return err
	}
	return cache.client.Delete(ctx, TaskListKey(version-1))
}

func (cache *RedisTaskListCache) Health(ctx context.Context) model.ComponentHealthStatus {
	check := cache.client.Health(ctx, healthCheckTimeout)
	if check.Status == redis.StatusUp {
		return model.ComponentUp(check.Details)
	}
	return model.ComponentHealthStatus{Status: model.StatusDown, Details: check.Details}
}
