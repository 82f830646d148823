package queue

import (
	"context"

	"taskboard/internal/domain/model"
)

const eventTypeAttribute = "eventType"

type TaskEventGateway interface {
	Publish(ctx context.Context, event model.TaskEvent) error
}

// SenderTaskEventGateway publishes task events to a single queue.
type SenderTaskEventGateway struct {
	sender    Sender
	queueName string
}

var _ TaskEventGateway = (*SenderTaskEventGateway)(nil)

func NewSenderTaskEventGateway(sender Sender, queueName string) *SenderTaskEventGateway {
	return &SenderTaskEventGateway{sender: sender, queueName: queueName}
}

func (gateway *SenderTaskEventGateway) Publish(ctx context.Context, event model.TaskEvent) error {
	_, err := gateway.sender.SendMessage(ctx, gateway.queueName, event, map[string]string{
		eventTypeAttribute: string(event.Type),
	})
	return err
}

// NoopTaskEventGateway drops every event.
type NoopTaskEventGateway struct{}

var _ TaskEventGateway = NoopTaskEventGateway{}

func (NoopTaskEventGateway) Publish(context.Context, model.TaskEvent) error {
	return nil
}
