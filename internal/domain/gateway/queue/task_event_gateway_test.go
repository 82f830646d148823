package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/model"
)

type recordingSender struct {
	queue      string
	body       any
	attributes map[string]string
	err        error
}

func (s *recordingSender) SendMessage(_ context.Context, queueName string, body any, attributes map[string]string) (string, error) {
	s.queue, s.body, s.attributes = queueName, body, attributes
	return "id", s.err
}

func TestSenderTaskEventGatewayPublish(t *testing.T) {
	sender := &recordingSender{}
	gateway := NewSenderTaskEventGateway(sender, "task-events")
	event := model.NewTaskCreatedEvent(entity.Task{ID: 1, Content: "T"}, time.Now())

	if err := gateway.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if sender.queue != "task-events" {
		t.Errorf("expected queue task-events, got %q", sender.queue)
	}
	if got, ok := sender.body.(model.TaskEvent); !ok || got.ID != event.ID {
		t.Errorf("expected the event as body, got %#v", sender.body)
	}
	if sender.attributes["eventType"] != "task.created" {
		t.Errorf("expected eventType attribute, got %v", sender.attributes)
	}
}

func TestSenderTaskEventGatewayPropagatesErrors(t *testing.T) {
	failure := errors.New("queue down")
	gateway := NewSenderTaskEventGateway(&recordingSender{err: failure}, "q")

	if err := gateway.Publish(context.Background(), model.NewTaskDeletedEvent(1, time.Now())); !errors.Is(err, failure) {
		t.Errorf("expected queue error, got %v", err)
	}
}
