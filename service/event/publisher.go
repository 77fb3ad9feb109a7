package event

import (
	"context"

	"github.com/viant/fairsched/internal/clock"
	"github.com/viant/fairsched/internal/idgen"
	"github.com/viant/fairsched/service/messaging"
)

// Publisher stamps events with an id, boot id and time and hands them to a queue.
type Publisher struct {
	queue  messaging.Queue[Event]
	bootID string
}

// NewPublisher creates a publisher; a nil queue makes Publish a no-op.
func NewPublisher(queue messaging.Queue[Event], bootID string) *Publisher {
	return &Publisher{queue: queue, bootID: bootID}
}

// Publish sends the event to the queue.
func (p *Publisher) Publish(ctx context.Context, event *Event) error {
	if p == nil || p.queue == nil || event == nil {
		return nil
	}
	event.ID = idgen.New()
	event.BootID = p.bootID
	event.CreatedAt = clock.Now()
	return p.queue.Publish(ctx, event)
}

// Consume retrieves and acknowledges the next event.
func (p *Publisher) Consume(ctx context.Context) (*Event, error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
