// Package memory implements an in-process queue backing the engine's
// lifecycle event stream.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/viant/reqflow/service/messaging"
)

// Config for the memory queue.
type Config struct {
	// QueueBuffer bounds the number of unconsumed messages.
	QueueBuffer int

	// MaxRetries caps how many times a nacked message is redelivered.
	MaxRetries int
}

// DefaultConfig returns a standard configuration for the memory queue.
func DefaultConfig() Config {
	return Config{QueueBuffer: 100, MaxRetries: 3}
}

// Message implements messaging.Message for the in-memory queue.
type Message[T any] struct {
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errors.New("message already processed")
	}
	m.processed = true
	return nil
}

// Nack redelivers the message until the retry limit is reached.
func (m *Message[T]) Nack(error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errors.New("message already processed")
	}
	m.processed = true
	if m.retryCount >= m.queue.config.MaxRetries {
		return nil
	}
	redelivery := &Message[T]{payload: m.payload, queue: m.queue, retryCount: m.retryCount + 1}
	select {
	case m.queue.messages <- redelivery:
	default: // queue full, drop the redelivery
	}
	return nil
}

// Queue implements an in-memory messaging.Queue.
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
}

var _ messaging.Queue[any] = (*Queue[any])(nil)

// NewQueue creates a new in-memory queue.
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a message to the queue.  A full queue drops the oldest
// pending message rather than blocking the publisher: lifecycle events are
// advisory and the engine must never stall a save on a slow consumer.
func (q *Queue[T]) Publish(_ context.Context, t *T) error {
	if t == nil {
		return errors.New("nil payload")
	}
	message := &Message[T]{payload: *t, queue: q}
	for {
		select {
		case q.messages <- message:
			return nil
		default:
			select {
			case <-q.messages: // evict oldest
			default:
			}
		}
	}
}

// Consume retrieves a single message, blocking until one is available or
// ctx is done.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case message := <-q.messages:
		return message, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
