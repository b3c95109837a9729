// Package notification fans lifecycle events out to registered handlers.
// Hosts use it to drive e-mails, webhooks or projections off the engine's
// event queue without touching the save path.
package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/viant/reqflow/service/coordinator"
	"github.com/viant/reqflow/service/messaging"
)

// Handler processes a single lifecycle event.  A returned error nacks the
// message so the queue redelivers it.
type Handler func(ctx context.Context, event *coordinator.Event) error

// Dispatcher consumes the lifecycle queue and invokes handlers matching the
// event topic.  Handlers registered under the empty topic receive every
// event.
type Dispatcher struct {
	queue  messaging.Queue[coordinator.Event]
	logger *zap.Logger

	mux      sync.RWMutex
	handlers map[string][]Handler

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a dispatcher over the supplied queue.
func New(queue messaging.Queue[coordinator.Event], options ...Option) *Dispatcher {
	ret := &Dispatcher{
		queue:    queue,
		logger:   zap.NewNop(),
		handlers: make(map[string][]Handler),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Subscribe registers a handler for a topic.  Pass an empty topic to
// receive all events.  Subscribe may be called before or after Start.
func (d *Dispatcher) Subscribe(topic string, handler Handler) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.handlers[topic] = append(d.handlers[topic], handler)
}

// Start launches the consumer goroutine.  It returns immediately; use Stop
// to terminate consumption.  Calling Start on a running dispatcher is a
// no-op.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mux.Lock()
	defer d.mux.Unlock()
	if d.cancel != nil {
		return
	}
	var consumeCtx context.Context
	consumeCtx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	go d.consume(consumeCtx)
}

// Stop terminates the consumer goroutine and waits for it to drain.  After
// Stop the dispatcher may be started again.
func (d *Dispatcher) Stop() {
	d.mux.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mux.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (d *Dispatcher) consume(ctx context.Context) {
	defer close(d.done)
	for {
		message, err := d.queue.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			d.logger.Warn("failed to consume lifecycle event", zap.Error(err))
			continue
		}
		d.dispatch(ctx, message)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, message messaging.Message[coordinator.Event]) {
	event := message.T()
	d.mux.RLock()
	handlers := append([]Handler(nil), d.handlers[""]...)
	handlers = append(handlers, d.handlers[event.Topic]...)
	d.mux.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("lifecycle event handler failed",
				zap.String("topic", event.Topic), zap.Error(err))
			_ = message.Nack(err)
			return
		}
	}
	_ = message.Ack()
}
