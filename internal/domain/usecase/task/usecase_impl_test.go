package task

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/gateway/cache"
	"taskboard/internal/domain/model"
	"taskboard/pkg/redis"
	"taskboard/pkg/util/dateutils"
)

// pause stops the next FindAll after it has read its rows, until resume is closed
type pause struct {
	reached chan struct{}
	resume  chan struct{}
}

type fakeGateway struct {
	tasks     []entity.Task
	subTasks  []entity.SubTask
	nextID    uint
	findCalls int
	err       error
	pause     *pause
}

func (f *fakeGateway) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeGateway) FindAll(context.Context) ([]entity.Task, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	tasks := append([]entity.Task{}, f.tasks...)
	if p := f.pause; p != nil {
		f.pause = nil
		close(p.reached)
		<-p.resume
	}
	return tasks, nil
}

func (f *fakeGateway) FindOverdue(_ context.Context, before time.Time) ([]entity.Task, error) {
	var out []entity.Task
	for _, task := range f.tasks {
		if task.Deadline != nil && task.Deadline.Before(before) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeGateway) Create(_ context.Context, task entity.Task) (*entity.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task.ID = f.id()
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeGateway) CreateSubTask(_ context.Context, sub entity.SubTask) (*entity.SubTask, error) {
	for _, task := range f.tasks {
		if task.ID == sub.ParentID {
			sub.ID = f.id()
			f.subTasks = append(f.subTasks, sub)
			return &sub, nil
		}
	}
	return nil, model.ErrTaskNotFound
}

func (f *fakeGateway) DeleteByID(_ context.Context, id uint) (bool, error) {
	for i, task := range f.tasks {
		if task.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGateway) DeleteSubTaskByID(_ context.Context, id uint) (*entity.SubTask, error) {
	for i, sub := range f.subTasks {
		if sub.ID == id {
			f.subTasks = append(f.subTasks[:i], f.subTasks[i+1:]...)
			return &sub, nil
		}
	}
	return nil, nil
}

type fakeCache struct {
	tasks       []entity.Task
	present     bool
	version     int64
	invalidated int
	err         error
}

func (f *fakeCache) Get(context.Context) (cache.TaskListEntry, error) {
	if f.err != nil {
		return cache.TaskListEntry{}, f.err
	}
	return cache.TaskListEntry{Tasks: f.tasks, Version: f.version, Hit: f.present}, nil
}

func (f *fakeCache) Set(_ context.Context, version int64, tasks []entity.Task) error {
	if f.err != nil {
		return f.err
	}
	if version == f.version {
		f.tasks, f.present = tasks, true
	}
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidated++
	f.version++
	f.tasks, f.present = nil, false
	return f.err
}

func (f *fakeCache) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentUp(nil)
}

type fakeEvents struct {
	published []model.TaskEvent
	err       error
}

func (f *fakeEvents) Publish(_ context.Context, event model.TaskEvent) error {
	f.published = append(f.published, event)
	return f.err
}

var fixedNow = time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

func newTestUseCase() (*taskUseCase, *fakeGateway, *fakeCache, *fakeEvents) {
	gateway, listCache, events := &fakeGateway{}, &fakeCache{}, &fakeEvents{}
	uc := NewTaskUseCase(gateway, listCache, events).(*taskUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc, gateway, listCache, events
}

func TestListTasksUsesCacheAfterFirstRead(t *testing.T) {
	uc, gateway, _, _ := newTestUseCase()
	ctx := context.Background()
	gateway.tasks = []entity.Task{{ID: 1, Content: "A"}}

	for i := 0; i < 3; i++ {
		tasks, err := uc.ListTasks(ctx)
		if err != nil || len(tasks) != 1 {
			t.Fatalf("ListTasks = %v, %v", tasks, err)
		}
	}
	if gateway.findCalls != 1 {
		t.Errorf("expected one database read, got %d", gateway.findCalls)
	}
}

func TestListTasksFallsBackWhenCacheFails(t *testing.T) {
	uc, gateway, listCache, _ := newTestUseCase()
	listCache.err = errors.New("connection refused")
	gateway.tasks = []entity.Task{{ID: 1, Content: "A"}}

	tasks, err := uc.ListTasks(context.Background())
	if err != nil || len(tasks) != 1 {
		t.Fatalf("ListTasks = %v, %v; want the database result", tasks, err)
	}
}

func TestListTasksReturnsDatabaseError(t *testing.T) {
	uc, gateway, _, _ := newTestUseCase()
	gateway.err = errors.New("db down")

	if _, err := uc.ListTasks(context.Background()); err == nil {
		t.Fatal("expected the database error to be returned")
	}
}

func TestCreateTaskIgnoresBlank(t *testing.T) {
	uc, gateway, listCache, events := newTestUseCase()

	created, err := uc.CreateTask(context.Background(), model.TaskInput{})
	if err != nil || created != nil {
		t.Fatalf("CreateTask = %v, %v; want nil, nil", created, err)
	}
	if len(gateway.tasks) != 0 || listCache.invalidated != 0 || len(events.published) != 0 {
		t.Error("expected a blank submission to have no effect")
	}
}

func TestCreateTaskInvalidatesAndPublishes(t *testing.T) {
	uc, _, listCache, events := newTestUseCase()
	deadline, _ := dateutils.ParseDate("2024-05-01")

	created, err := uc.CreateTask(context.Background(), model.TaskInput{Content: "A", Deadline: deadline})
	if err != nil || created == nil {
		t.Fatalf("CreateTask = %v, %v", created, err)
	}
	if listCache.invalidated != 1 {
		t.Errorf("expected the cache to be invalidated once, got %d", listCache.invalidated)
	}
	if len(events.published) != 1 {
		t.Fatalf("expected one event, got %d", len(events.published))
	}
	event := events.published[0]
	if event.Type != model.TaskCreated || event.TaskID != created.ID || event.Deadline != "2024-05-01" {
		t.Errorf("unexpected event %+v", event)
	}
	if !event.OccurredAt.Equal(fixedNow) {
		t.Errorf("expected event time %v, got %v", fixedNow, event.OccurredAt)
	}
}

func TestCreateTaskSurvivesPublishFailure(t *testing.T) {
	uc, gateway, _, events := newTestUseCase()
	events.err = errors.New("queue unavailable")

	if _, err := uc.CreateTask(context.Background(), model.TaskInput{Content: "A"}); err != nil {
		t.Fatalf("expected publish failures to be swallowed, got %v", err)
	}
	if len(gateway.tasks) != 1 {
		t.Error("expected the task to be stored")
	}
}

func TestCreateSubTaskForMissingTask(t *testing.T) {
	uc, _, _, events := newTestUseCase()

	_, err := uc.CreateSubTask(context.Background(), 42, model.TaskInput{Content: "S"})
	if !errors.Is(err, model.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if len(events.published) != 0 {
		t.Error("expected no event for a rejected subtask")
	}
}

func TestCreateSubTaskIgnoresBlankEvenForMissingTask(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	created, err := uc.CreateSubTask(context.Background(), 42, model.TaskInput{})
	if err != nil || created != nil {
		t.Fatalf("CreateSubTask = %v, %v; want nil, nil", created, err)
	}
}

func TestCreateAndDeleteSubTask(t *testing.T) {
	uc, _, _, events := newTestUseCase()
	ctx := context.Background()
	task, _ := uc.CreateTask(ctx, model.TaskInput{Content: "T"})

	sub, err := uc.CreateSubTask(ctx, task.ID, model.TaskInput{Content: "S"})
	if err != nil || sub == nil || sub.ParentID != task.ID {
		t.Fatalf("CreateSubTask = %+v, %v", sub, err)
	}
	if err := uc.DeleteSubTask(ctx, sub.ID); err != nil {
		t.Fatalf("DeleteSubTask returned error: %v", err)
	}

	want := []model.TaskEventType{model.TaskCreated, model.SubTaskCreated, model.SubTaskDeleted}
	if len(events.published) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events.published))
	}
	for i, eventType := range want {
		if events.published[i].Type != eventType {
			t.Errorf("event %d: expected %s, got %s", i, eventType, events.published[i].Type)
		}
	}
	if last := events.published[2]; last.TaskID != task.ID || last.SubTaskID != sub.ID {
		t.Errorf("unexpected subtask delete event %+v", last)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	uc, _, listCache, events := newTestUseCase()
	ctx := context.Background()

	if err := uc.DeleteTask(ctx, 7); err != nil {
		t.Errorf("DeleteTask returned error: %v", err)
	}
	if err := uc.DeleteSubTask(ctx, 7); err != nil {
		t.Errorf("DeleteSubTask returned error: %v", err)
	}
	if listCache.invalidated != 0 || len(events.published) != 0 {
		t.Error("expected no side effects for missing ids")
	}
}

func TestDeleteTaskPublishes(t *testing.T) {
	uc, gateway, listCache, events := newTestUseCase()
	ctx := context.Background()
	task, _ := uc.CreateTask(ctx, model.TaskInput{Content: "T"})

	if err := uc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask returned error: %v", err)
	}
	if len(gateway.tasks) != 0 {
		t.Error("expected the task to be removed")
	}
	if listCache.invalidated != 2 {
		t.Errorf("expected two invalidations, got %d", listCache.invalidated)
	}
	if last := events.published[len(events.published)-1]; last.Type != model.TaskDeleted || last.TaskID != task.ID {
		t.Errorf("unexpected delete event %+v", last)
	}
}

func TestFindOverdueComparesAgainstStartOfDay(t *testing.T) {
	uc, gateway, _, _ := newTestUseCase()
	yesterday, _ := dateutils.ParseDate("2024-02-29")
	today, _ := dateutils.ParseDate("2024-03-01")
	gateway.tasks = []entity.Task{
		{ID: 1, Content: "yesterday", Deadline: yesterday},
		{ID: 2, Content: "today", Deadline: today},
		{ID: 3, Content: "never"},
	}

	overdue, err := uc.FindOverdue(context.Background(), fixedNow)
	if err != nil {
		t.Fatalf("FindOverdue returned error: %v", err)
	}
	if len(overdue) != 1 || overdue[0].Content != "yesterday" {
		t.Errorf("expected only yesterday's task, got %+v", overdue)
	}
}

func TestNewTaskUseCaseDefaultsOptionalGateways(t *testing.T) {
	uc := NewTaskUseCase(&fakeGateway{}, nil, nil)

	if _, err := uc.CreateTask(context.Background(), model.TaskInput{Content: "A"}); err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if _, err := uc.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
}

func newRedisCache(t *testing.T) *cache.RedisTaskListCache {
	t.Helper()
	mr := miniredis.RunT(t)
	port, _ := strconv.Atoi(mr.Port())
	client, err := redis.NewClient(redis.NewRedisConfig().WithHost(mr.Host()).WithPort(port))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisTaskListCache(client, time.Minute)
}

func TestListTasksDoesNotCacheRowsReadBeforeConcurrentWrite(t *testing.T) {
	for name, listCache := range map[string]cache.TaskListCache{
		"fake":  &fakeCache{},
		"redis": newRedisCache(t),
	} {
		t.Run(name, func(t *testing.T) {
			gateway := &fakeGateway{}
			uc := NewTaskUseCase(gateway, listCache, nil)
			ctx := context.Background()

			p := &pause{reached: make(chan struct{}), resume: make(chan struct{})}
			gateway.pause = p

			done := make(chan error)
			go func() {
				_, err := uc.ListTasks(ctx)
				done <- err
			}()

			<-p.reached
			if _, err := uc.CreateTask(ctx, model.TaskInput{Content: "new"}); err != nil {
				t.Fatalf("CreateTask returned error: %v", err)
			}
			close(p.resume)
			if err := <-done; err != nil {
				t.Fatalf("ListTasks returned error: %v", err)
			}

			tasks, err := uc.ListTasks(ctx)
			if err != nil {
				t.Fatalf("ListTasks returned error: %v", err)
			}
			if len(tasks) != 1 || tasks[0].Content != "new" {
				t.Errorf("expected the created task to be listed, got %+v", tasks)
			}
		})
	}
}
