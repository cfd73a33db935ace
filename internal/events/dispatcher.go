package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
	// Wait blocks until every handler started by Publish has returned.
	Wait()
}

type registry struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
}

func (r *registry) Subscribe(eventType EventType, handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[eventType] = append(r.listeners[eventType], handler)
}

func (r *registry) handlersFor(eventType EventType) []EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]EventHandler{}, r.listeners[eventType]...)
}

func stamp(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
}

// inMemoryDispatcher runs handlers synchronously on the publisher's goroutine.
type inMemoryDispatcher struct {
	registry
	logger *zap.Logger
}

// NewInMemoryDispatcher creates a synchronous dispatcher.
func NewInMemoryDispatcher(logger *zap.Logger) Dispatcher {
	return &inMemoryDispatcher{
		registry: registry{listeners: make(map[EventType][]EventHandler)},
		logger:   logger,
	}
}

// Publish synchronously invokes handlers; handler errors are logged, never returned.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	stamp(&event)
	for _, handler := range d.handlersFor(event.Type) {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return nil
}

func (d *inMemoryDispatcher) Wait() {}

// asyncDispatcher detaches every handler into its own goroutine.
type asyncDispatcher struct {
	registry
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewAsyncDispatcher creates a dispatcher whose Publish returns immediately. Handlers run with
// a context detached from the publisher's cancellation; failures are only logged.
func NewAsyncDispatcher(logger *zap.Logger) Dispatcher {
	return &asyncDispatcher{
		registry: registry{listeners: make(map[EventType][]EventHandler)},
		logger:   logger,
	}
}

func (d *asyncDispatcher) Publish(ctx context.Context, event Event) error {
	stamp(&event)
	detached := context.WithoutCancel(ctx)
	for _, handler := range d.handlersFor(event.Type) {
		d.wg.Add(1)
		go func(h EventHandler) {
			defer d.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("event handler panicked",
						zap.String("event_type", string(event.Type)),
						zap.Any("panic", r))
				}
			}()
			if err := h(detached, event); err != nil {
				d.logger.Warn("event handler failed",
					zap.String("event_type", string(event.Type)),
					zap.String("event_id", event.ID),
					zap.Error(err))
			}
		}(handler)
	}
	return nil
}

func (d *asyncDispatcher) Wait() {
	d.wg.Wait()
}
