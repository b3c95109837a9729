package notification

import "go.uber.org/zap"

// Option customises a dispatcher.
type Option func(d *Dispatcher)

// WithLogger sets the logger used to report consumption and handler
// failures.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}
