package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Listener consumes events in the background and passes them to a handler.
type Listener struct {
	publisher *Publisher
	handler   func(*Event)
	logger    *slog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
	mux       sync.Mutex
}

// NewListener creates a listener; logger may be nil.
func NewListener(publisher *Publisher, handler func(*Event), logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		publisher: publisher,
		handler:   handler,
		logger:    logger,
	}
}

// Start launches the consume loop; it returns immediately.
func (l *Listener) Start(ctx context.Context) {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				l.logger.Error("event consume failed", "error", err)
				continue
			}
			if event != nil {
				l.handler(event)
			}
		}
	}()
}

// Stop terminates the consume loop and waits for it to exit.
func (l *Listener) Stop() {
	l.mux.Lock()
	cancel, done := l.cancel, l.done
	l.cancel = nil
	l.mux.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
