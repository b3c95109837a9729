package coordinator

import (
	"go.uber.org/zap"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/model/definition"
	"github.com/viant/reqflow/service/dao"
	"github.com/viant/reqflow/service/directory"
	"github.com/viant/reqflow/service/messaging"
	"github.com/viant/reqflow/service/sequence"
)

// Option customises the coordinator.
type Option func(*Service)

// WithRegistry replaces the built-in workflow definition registry.
func WithRegistry(registry *definition.Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// WithRequestDAO sets the storage collaborator.
func WithRequestDAO(requestDAO dao.Service[string, model.Request]) Option {
	return func(s *Service) { s.requestDAO = requestDAO }
}

// WithDirectory sets the role directory used to resolve actor roles.  When
// unset, actors are trusted as supplied by the caller.
func WithDirectory(service directory.Service) Option {
	return func(s *Service) { s.directory = service }
}

// WithSequencer replaces the sequence-number allocator.
func WithSequencer(service sequence.Service) Option {
	return func(s *Service) { s.sequencer = service }
}

// WithEventQueue sets the queue lifecycle events are published on.
func WithEventQueue(queue messaging.Queue[Event]) Option {
	return func(s *Service) { s.events = queue }
}

// WithLogger sets the structured logger; integrity violations are reported
// at error level.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}
