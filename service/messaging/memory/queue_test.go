package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fairsched/service/messaging"
)

type TestPayload struct {
	PID  int
	Kind string
}

func TestQueue(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	payload := TestPayload{PID: 2, Kind: "forked"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 2
	queue := NewQueue[TestPayload](config)
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &TestPayload{PID: 3, Kind: "exited"}))

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 3, message.T().PID)
		assert.NoError(t, message.Nack(fmt.Errorf("attempt %d", attempt)))
	}

	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueueDropWhenFull(t *testing.T) {
	queue := NewQueue[TestPayload](Config{QueueBuffer: 2, DropWhenFull: true})
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &TestPayload{PID: 1}))
	assert.NoError(t, queue.Publish(ctx, &TestPayload{PID: 2}))
	err := queue.Publish(ctx, &TestPayload{PID: 3})
	assert.True(t, errors.Is(err, messaging.ErrQueueFull))

	drained := queue.Drain()
	assert.Len(t, drained, 2)
	assert.Equal(t, 1, drained[0].PID)
	assert.Equal(t, 2, drained[1].PID)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueCancelledContext(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, queue.Publish(ctx, &TestPayload{PID: 1}))
	_, err := queue.Consume(ctx)
	assert.Error(t, err)
}

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue[TestPayload](Config{QueueBuffer: 100})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			assert.NoError(t, queue.Publish(ctx, &TestPayload{PID: pid}))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, queue.Size())
	assert.Len(t, queue.Drain(), 20)
}
